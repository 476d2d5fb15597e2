package app

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nibzard/todolist-go/internal/storage"
	"github.com/nibzard/todolist-go/internal/todo"
)

type memStore struct {
	tasks   []todo.Task
	saves   int
	saveErr error
}

func (m *memStore) Load() []todo.Task { return m.tasks }

func (m *memStore) Save(tasks []todo.Task) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.tasks = tasks
	return nil
}

func TestSessionPersistsEveryMutation(t *testing.T) {
	store := &memStore{}
	s := Start(store, nil)

	if err := s.Add("a"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Toggle(0); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := s.Add("b"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Delete(0); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if store.saves != 4 {
		t.Errorf("saves = %d, want 4", store.saves)
	}
	want := []todo.Task{{Text: "b"}}
	if !reflect.DeepEqual(store.tasks, want) {
		t.Errorf("stored = %+v, want %+v", store.tasks, want)
	}
}

func TestSessionFailedOperationsDoNotSave(t *testing.T) {
	store := &memStore{tasks: []todo.Task{{Text: "a"}}}
	s := Start(store, nil)

	if err := s.Add("  "); !errors.Is(err, todo.ErrEmptyText) {
		t.Errorf("Add blank: %v", err)
	}
	if err := s.Add("a"); !errors.Is(err, todo.ErrDuplicateText) {
		t.Errorf("Add duplicate: %v", err)
	}
	if err := s.Toggle(3); !errors.Is(err, todo.ErrIndexOutOfRange) {
		t.Errorf("Toggle out of range: %v", err)
	}
	if err := s.Delete(-1); !errors.Is(err, todo.ErrIndexOutOfRange) {
		t.Errorf("Delete out of range: %v", err)
	}
	if store.saves != 0 {
		t.Errorf("saves = %d, want 0", store.saves)
	}
}

func TestSessionWriteFailureKeepsMemory(t *testing.T) {
	store := &memStore{saveErr: errors.New("quota exceeded")}
	s := Start(store, nil)

	err := s.Add("Buy milk")
	var pe *PersistError
	if !errors.As(err, &pe) {
		t.Fatalf("Add error = %v, want *PersistError", err)
	}
	if s.Len() != 1 {
		t.Fatalf("in-memory list lost the task: len = %d", s.Len())
	}

	// A later successful save clears the error.
	store.saveErr = nil
	if err := s.Toggle(0); err != nil {
		t.Fatalf("Toggle after recovery: %v", err)
	}
	want := []todo.Task{{Text: "Buy milk", IsComplete: true}}
	if !reflect.DeepEqual(store.tasks, want) {
		t.Errorf("stored = %+v, want %+v", store.tasks, want)
	}
}

func TestSessionPendingInput(t *testing.T) {
	s := Start(&memStore{}, nil)
	s.SetPending("Walk dog ")
	if err := s.AddPending(); err != nil {
		t.Fatalf("AddPending: %v", err)
	}
	if s.Pending() != "" {
		t.Errorf("pending = %q, want empty", s.Pending())
	}
	if got := s.Tasks(); !reflect.DeepEqual(got, []todo.Task{{Text: "Walk dog"}}) {
		t.Errorf("tasks = %+v", got)
	}
}

func TestSessionScenarioWithReload(t *testing.T) {
	dir := t.TempDir()
	kv, err := storage.Open(storage.BackendFile, dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	s := Start(storage.NewAdapter(kv, storage.DefaultKey, nil), nil)

	if err := s.Add("Buy milk"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add("Buy milk"); !todo.IsValidation(err) {
		t.Fatalf("duplicate add: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
	_ = s.Add("Walk dog")
	_ = s.Toggle(0)
	want := []todo.Task{{Text: "Buy milk", IsComplete: true}, {Text: "Walk dog"}}
	if got := s.Tasks(); !reflect.DeepEqual(got, want) {
		t.Fatalf("after toggle = %+v, want %+v", got, want)
	}
	_ = s.Delete(0)

	kv2, err := storage.Open(storage.BackendFile, dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	reloaded := Start(storage.NewAdapter(kv2, storage.DefaultKey, nil), nil)
	want = []todo.Task{{Text: "Walk dog"}}
	if got := reloaded.Tasks(); !reflect.DeepEqual(got, want) {
		t.Errorf("reloaded = %+v, want %+v", got, want)
	}
}

func TestSessionCounts(t *testing.T) {
	s := Start(&memStore{tasks: []todo.Task{{Text: "a", IsComplete: true}, {Text: "b"}}}, nil)
	open, done := s.Counts()
	if open != 1 || done != 1 {
		t.Errorf("Counts() = %d, %d", open, done)
	}
}
