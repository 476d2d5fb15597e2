// Package todo holds the in-memory task list.
//
// A List is an ordered sequence of tasks plus the pending-input string that
// backs the "new task" field. The serialized form of a task is:
//
//	{"text": "Buy milk", "isComplete": false}
//
// # Mutations
//
// Only three operations change the sequence:
//
//   - Add: appends a task with trimmed, non-empty, not-yet-present text
//   - Toggle: flips IsComplete of one task in place
//   - Delete: removes one task; later tasks shift down by one
//
// Positions are zero-based. Toggle and Delete on a position outside the
// list return ErrIndexOutOfRange and leave the list untouched.
//
// # Subscribers
//
// Every successful mutation calls the registered subscribers with a
// snapshot of the new sequence. Failed mutations notify nobody.
//
// A List is not safe for concurrent use. It is driven from a single event
// loop.
package todo
