package storage

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SlotError reports where a stored slot breaks the slot schema.
type SlotError struct {
	Path    string
	Message string
}

func (e *SlotError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid slot at %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("invalid slot: %s", e.Message)
}

// validateSlot checks a decoded JSON value against the slot schema and
// returns the first leaf failure as a *SlotError.
func validateSlot(raw interface{}) error {
	err := slotSchema.Validate(raw)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &SlotError{Message: err.Error()}
	}
	leaf := firstLeaf(ve)
	return &SlotError{Path: instancePath(leaf.InstanceLocation), Message: leaf.Message}
}

// firstLeaf follows the first cause down to an error with no causes.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// instancePath turns a JSON Pointer such as "/0/text" into "[0].text".
func instancePath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		// ~1 is "/" and ~0 is "~"
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}
