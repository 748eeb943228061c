// Package history implements a linear undo/redo log of full snapshots.
//
// Record truncates everything after the cursor before appending, so a new
// edit after an undo discards the redo branch. Undo and Redo only move the
// cursor and are no-ops at either boundary.
package history

// Log is a linear snapshot log with a cursor. It is not safe for concurrent
// use; callers serialize access.
type Log[T any] struct {
	entries []T
	cursor  int
	limit   int
}

// New returns an empty log. A positive limit caps the number of entries;
// the oldest are dropped first. Zero means unbounded.
func New[T any](limit int) *Log[T] {
	if limit < 0 {
		limit = 0
	}
	return &Log[T]{cursor: -1, limit: limit}
}

// Record appends entry after the cursor and makes it current.
func (l *Log[T]) Record(entry T) {
	l.entries = append(l.entries[:l.cursor+1], entry)
	if l.limit > 0 && len(l.entries) > l.limit {
		drop := len(l.entries) - l.limit
		clear(l.entries[:drop])
		l.entries = l.entries[drop:]
	}
	l.cursor = len(l.entries) - 1
}

// Undo steps back one entry and returns it.
func (l *Log[T]) Undo() (T, bool) {
	if l.cursor <= 0 {
		var zero T
		return zero, false
	}
	l.cursor--
	return l.entries[l.cursor], true
}

// Redo steps forward one entry and returns it.
func (l *Log[T]) Redo() (T, bool) {
	if l.cursor < 0 || l.cursor >= len(l.entries)-1 {
		var zero T
		return zero, false
	}
	l.cursor++
	return l.entries[l.cursor], true
}

// Current returns the entry under the cursor.
func (l *Log[T]) Current() (T, bool) {
	if l.cursor < 0 {
		var zero T
		return zero, false
	}
	return l.entries[l.cursor], true
}

// Reset empties the log.
func (l *Log[T]) Reset() {
	clear(l.entries)
	l.entries = l.entries[:0]
	l.cursor = -1
}

func (l *Log[T]) CanUndo() bool { return l.cursor > 0 }
func (l *Log[T]) CanRedo() bool { return l.cursor >= 0 && l.cursor < len(l.entries)-1 }
func (l *Log[T]) Len() int      { return len(l.entries) }

// Cursor returns the index of the current entry, or -1 when empty.
func (l *Log[T]) Cursor() int { return l.cursor }
