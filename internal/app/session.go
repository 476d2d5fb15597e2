// Package app wires the task list to its persistence slot.
package app

import (
	"github.com/charmbracelet/log"

	"github.com/nibzard/todolist-go/internal/logging"
	"github.com/nibzard/todolist-go/internal/todo"
)

// Store is the persistence side of a session.
type Store interface {
	Load() []todo.Task
	Save(tasks []todo.Task) error
}

// PersistError reports that a mutation was applied in memory but could not
// be written to the slot.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "save tasks: " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *PersistError) Unwrap() error {
	return e.Err
}

// Session owns the task list for one run of the program. The list is loaded
// once on Start and written back after every successful mutation.
type Session struct {
	list    *todo.List
	store   Store
	logger  *log.Logger
	saveErr error
}

// Start loads the stored tasks and returns a session over them.
func Start(store Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Session{
		list:   todo.New(store.Load()),
		store:  store,
		logger: logger,
	}
	s.list.Subscribe(s.persist)
	s.logger.Debug("session started", "tasks", s.list.Len())
	return s
}

func (s *Session) persist(tasks []todo.Task) {
	if err := s.store.Save(tasks); err != nil {
		s.saveErr = &PersistError{Err: err}
		return
	}
	s.saveErr = nil
}

// apply runs op and reports either its own error or a failed save.
func (s *Session) apply(op func() error) error {
	s.saveErr = nil
	if err := op(); err != nil {
		return err
	}
	return s.saveErr
}

// Add adds a task with text raw.
func (s *Session) Add(raw string) error {
	err := s.apply(func() error { return s.list.Add(raw) })
	if todo.IsValidation(err) {
		s.logger.Info("add rejected", "reason", err)
	}
	return err
}

// AddPending submits the pending input.
func (s *Session) AddPending() error {
	return s.Add(s.list.Pending())
}

// Toggle flips the task at zero-based index i.
func (s *Session) Toggle(i int) error {
	return s.apply(func() error { return s.list.Toggle(i) })
}

// Delete removes the task at zero-based index i.
func (s *Session) Delete(i int) error {
	return s.apply(func() error { return s.list.Delete(i) })
}

// Tasks returns a snapshot of the list.
func (s *Session) Tasks() []todo.Task {
	return s.list.Tasks()
}

// Len returns the number of tasks.
func (s *Session) Len() int {
	return s.list.Len()
}

// Counts returns the number of open and completed tasks.
func (s *Session) Counts() (open, done int) {
	return s.list.Counts()
}

// Pending returns the new-task input.
func (s *Session) Pending() string {
	return s.list.Pending()
}

// SetPending replaces the new-task input.
func (s *Session) SetPending(text string) {
	s.list.SetPending(text)
}
