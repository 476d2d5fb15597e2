package todo

import (
	"fmt"
	"strings"
)

// List is the ordered task sequence and the pending new-task input.
type List struct {
	tasks       []Task
	pending     string
	subscribers []func([]Task)
}

// New returns a list hydrated from a copy of tasks.
func New(tasks []Task) *List {
	l := &List{tasks: make([]Task, len(tasks))}
	copy(l.tasks, tasks)
	return l
}

// Subscribe registers fn to receive a snapshot after every successful mutation.
func (l *List) Subscribe(fn func([]Task)) {
	if fn == nil {
		return
	}
	l.subscribers = append(l.subscribers, fn)
}

// Tasks returns a snapshot of the current sequence.
func (l *List) Tasks() []Task {
	out := make([]Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// Len returns the number of tasks.
func (l *List) Len() int {
	return len(l.tasks)
}

// Counts returns the number of open and completed tasks.
func (l *List) Counts() (open, done int) {
	for _, t := range l.tasks {
		if t.IsComplete {
			done++
		} else {
			open++
		}
	}
	return open, done
}

// Pending returns the not-yet-submitted new-task input.
func (l *List) Pending() string {
	return l.pending
}

// SetPending replaces the pending input. It is not a mutation of the
// sequence and does not notify subscribers.
func (l *List) SetPending(s string) {
	l.pending = s
}

// Add appends a new incomplete task with the trimmed text of raw and clears
// the pending input. Empty or duplicate text is rejected with a
// *ValidationError and nothing changes.
func (l *List) Add(raw string) error {
	// Invalid UTF-8 is replaced the way encoding/json would on save.
	text := strings.ToValidUTF8(strings.TrimSpace(raw), "\uFFFD")
	if text == "" {
		return &ValidationError{Err: ErrEmptyText}
	}
	if l.contains(text) {
		return &ValidationError{Text: text, Err: ErrDuplicateText}
	}

	l.tasks = append(l.tasks, Task{Text: text})
	l.pending = ""
	l.notify()
	return nil
}

// AddPending submits the pending input.
func (l *List) AddPending() error {
	return l.Add(l.pending)
}

// Toggle flips the completion flag of the task at index i.
func (l *List) Toggle(i int) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.tasks[i] = l.tasks[i].Toggled()
	l.notify()
	return nil
}

// Delete removes the task at index i.
func (l *List) Delete(i int) error {
	if err := l.checkIndex(i); err != nil {
		return err
	}
	l.tasks = append(l.tasks[:i:i], l.tasks[i+1:]...)
	l.notify()
	return nil
}

func (l *List) contains(text string) bool {
	for _, t := range l.tasks {
		if t.Text == text {
			return true
		}
	}
	return false
}

func (l *List) checkIndex(i int) error {
	if i < 0 || i >= len(l.tasks) {
		return fmt.Errorf("index %d of %d: %w", i, len(l.tasks), ErrIndexOutOfRange)
	}
	return nil
}

func (l *List) notify() {
	if len(l.subscribers) == 0 {
		return
	}
	for _, fn := range l.subscribers {
		fn(l.Tasks())
	}
}
