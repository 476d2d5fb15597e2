package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/todo"
)

//go:embed slot.schema.json
var slotSchemaJSON string

var slotSchema = jsonschema.MustCompileString("slot.schema.json", slotSchemaJSON)

// Adapter reads and writes the task list in one KV slot.
type Adapter struct {
	kv     KV
	key    string
	logger *log.Logger
}

// NewAdapter returns an adapter for key in kv. A nil logger discards output.
func NewAdapter(kv KV, key string, logger *log.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Adapter{kv: kv, key: key, logger: logger}
}

// Key returns the slot name.
func (a *Adapter) Key() string {
	return a.key
}

// Load reads the slot. A missing slot yields an empty list. An unreadable
// or malformed slot is logged and also yields an empty list.
func (a *Adapter) Load() []todo.Task {
	data, ok, err := a.kv.Get(a.key)
	if err != nil {
		a.logger.Warn("stored tasks unreadable, starting empty", "slot", a.key, "err", err)
		return []todo.Task{}
	}
	if !ok {
		a.logger.Debug("no stored tasks", "slot", a.key)
		return []todo.Task{}
	}

	tasks, err := Decode(data)
	if err != nil {
		a.logger.Warn("stored tasks malformed, starting empty", "slot", a.key, "err", err)
		return []todo.Task{}
	}
	a.logger.Debug("loaded tasks", "slot", a.key, "count", len(tasks))
	return tasks
}

// Save overwrites the slot with the full task list.
func (a *Adapter) Save(tasks []todo.Task) error {
	data, err := Encode(tasks)
	if err != nil {
		return err
	}
	if err := a.kv.Set(a.key, data); err != nil {
		a.logger.Error("saving tasks failed", "slot", a.key, "count", len(tasks), "err", err)
		return err
	}
	a.logger.Debug("saved tasks", "slot", a.key, "count", len(tasks))
	return nil
}

// Encode serializes tasks as a JSON array. A nil list encodes as [].
func Encode(tasks []todo.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// Decode validates data against the slot schema and parses it. A stored
// null decodes as an empty list.
func Decode(data []byte) ([]todo.Task, error) {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("parse tasks: trailing data after JSON value")
	}
	if err := validateSlot(raw); err != nil {
		return nil, err
	}

	tasks := []todo.Task{}
	if raw == nil {
		return tasks, nil
	}
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	return tasks, nil
}
