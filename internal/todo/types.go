package todo

import (
	"errors"
	"fmt"
)

// Task is a single to-do item.
type Task struct {
	Text       string `json:"text" yaml:"text"`
	IsComplete bool   `json:"isComplete" yaml:"isComplete"`
}

// Toggled returns a copy of t with IsComplete negated.
func (t Task) Toggled() Task {
	t.IsComplete = !t.IsComplete
	return t
}

// Sentinel errors returned by List operations.
var (
	ErrEmptyText       = errors.New("please enter a task")
	ErrDuplicateText   = errors.New("task already exists")
	ErrIndexOutOfRange = errors.New("no task at that position")
)

// ValidationError is returned when Add rejects its input.
type ValidationError struct {
	Text string // Trimmed input that was rejected
	Err  error  // ErrEmptyText or ErrDuplicateText
}

func (e *ValidationError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%s: %q", e.Err, e.Text)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is a rejected Add.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
