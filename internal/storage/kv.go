// Package storage persists the task list in a named key-value slot.
package storage

import (
	"fmt"
	"regexp"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DefaultKey is the slot the task list is stored under.
const DefaultKey = "tasks"

// KV is a minimal local key-value store. Each key holds one opaque value.
type KV interface {
	// Get returns the value for key. ok is false when the key has never been set.
	Get(key string) (value []byte, ok bool, err error)
	// Set overwrites the value for key.
	Set(key string, value []byte) error
	Close() error
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKey checks that key can be used as a slot name on every backend.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("invalid slot key %q: use letters, digits, '.', '_' or '-'", key)
	}
	return nil
}

// Open returns the KV backend named by backend rooted at dir.
func Open(backend, dir string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendFile:
		return NewFileKV(dir)
	case BackendSQLite:
		return NewSQLiteKV(SQLitePath(dir))
	default:
		return nil, fmt.Errorf("unknown storage backend %q (want %s or %s)", backend, BackendFile, BackendSQLite)
	}
}
