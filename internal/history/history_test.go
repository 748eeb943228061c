package history

import "testing"

func TestEmptyLog(t *testing.T) {
	l := New[int](0)

	if _, ok := l.Undo(); ok {
		t.Error("Undo() on empty log should be a no-op")
	}
	if _, ok := l.Redo(); ok {
		t.Error("Redo() on empty log should be a no-op")
	}
	if _, ok := l.Current(); ok {
		t.Error("Current() on empty log should report false")
	}
	if l.Cursor() != -1 || l.Len() != 0 {
		t.Errorf("empty log cursor=%d len=%d, want -1/0", l.Cursor(), l.Len())
	}
}

func TestRecordUndoRedo(t *testing.T) {
	l := New[string](0)
	l.Record("a")
	l.Record("b")
	l.Record("c")

	if l.Cursor() != 2 {
		t.Fatalf("Cursor() = %d, want 2", l.Cursor())
	}

	got, ok := l.Undo()
	if !ok || got != "b" {
		t.Errorf("Undo() = %q,%v want b,true", got, ok)
	}
	got, ok = l.Undo()
	if !ok || got != "a" {
		t.Errorf("Undo() = %q,%v want a,true", got, ok)
	}
	if _, ok := l.Undo(); ok {
		t.Error("Undo() at first entry should be a no-op")
	}
	if l.Cursor() != 0 {
		t.Errorf("Cursor() after boundary undo = %d, want 0", l.Cursor())
	}

	got, ok = l.Redo()
	if !ok || got != "b" {
		t.Errorf("Redo() = %q,%v want b,true", got, ok)
	}
	got, _ = l.Redo()
	if got != "c" {
		t.Errorf("Redo() = %q, want c", got)
	}
	if _, ok := l.Redo(); ok {
		t.Error("Redo() at last entry should be a no-op")
	}
}

func TestRecordAfterUndoTruncates(t *testing.T) {
	l := New[int](0)
	for i := 1; i <= 4; i++ {
		l.Record(i)
	}
	l.Undo()
	l.Undo()

	l.Record(9)

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 after truncating redo branch", l.Len())
	}
	if l.CanRedo() {
		t.Error("CanRedo() should be false after a new record")
	}
	cur, _ := l.Current()
	if cur != 9 {
		t.Errorf("Current() = %d, want 9", cur)
	}
	prev, _ := l.Undo()
	if prev != 2 {
		t.Errorf("Undo() = %d, want 2", prev)
	}
}

func TestLimitDropsOldest(t *testing.T) {
	l := New[int](3)
	for i := 1; i <= 5; i++ {
		l.Record(i)
	}

	if l.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", l.Len())
	}
	if l.Cursor() != 2 {
		t.Errorf("Cursor() = %d, want 2", l.Cursor())
	}
	l.Undo()
	got, _ := l.Undo()
	if got != 3 {
		t.Errorf("oldest reachable entry = %d, want 3", got)
	}
	if l.CanUndo() {
		t.Error("CanUndo() should be false at the oldest kept entry")
	}
}

func TestCursorInvariant(t *testing.T) {
	l := New[int](0)
	ops := []func(){
		func() { l.Record(1) },
		func() { l.Undo() },
		func() { l.Record(2) },
		func() { l.Redo() },
		func() { l.Record(3) },
		func() { l.Undo() },
		func() { l.Undo() },
		func() { l.Undo() },
		func() { l.Redo() },
	}
	for i, op := range ops {
		op()
		if l.Len() > 0 && (l.Cursor() < 0 || l.Cursor() >= l.Len()) {
			t.Fatalf("step %d: cursor %d out of [0,%d)", i, l.Cursor(), l.Len())
		}
	}
}

func TestReset(t *testing.T) {
	l := New[int](0)
	l.Record(1)
	l.Record(2)
	l.Reset()

	if l.Len() != 0 || l.Cursor() != -1 {
		t.Errorf("Reset() left len=%d cursor=%d", l.Len(), l.Cursor())
	}
}
