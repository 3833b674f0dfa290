package history

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/types"
)

func snap(text string, col int) Snapshot {
	return Snapshot{Text: text, Cursor: types.Position{Col: col}}
}

func TestManager_UndoRedo(t *testing.T) {
	m := NewManager(10)
	m.RecordChange(Change{Before: snap("", 0), After: snap("a", 1)})
	m.RecordChange(Change{Before: snap("a", 1), After: snap("ab", 2)})

	s, ok := m.Undo()
	if !ok || s.Text != "a" {
		t.Fatalf("Undo()=(%q,%v), want (\"a\",true)", s.Text, ok)
	}
	s, ok = m.Redo()
	if !ok || s.Text != "ab" {
		t.Fatalf("Redo()=(%q,%v), want (\"ab\",true)", s.Text, ok)
	}
	if _, ok := m.Redo(); ok {
		t.Fatal("nothing left to redo")
	}
}

func TestManager_RecordDropsRedo(t *testing.T) {
	m := NewManager(10)
	m.RecordChange(Change{Before: snap("", 0), After: snap("a", 1)})
	m.Undo()
	m.RecordChange(Change{Before: snap("", 0), After: snap("z", 1)})
	if m.CanRedo() {
		t.Fatal("new change must drop redo history")
	}
}

func TestManager_TypingMerges(t *testing.T) {
	m := NewManager(10)
	m.RecordChange(Change{Before: snap("", 0), After: snap("h", 1), Typing: true})
	m.RecordChange(Change{Before: snap("h", 1), After: snap("hi", 2), Typing: true})
	s, _ := m.Undo()
	if s.Text != "" {
		t.Fatalf("Undo()=%q, want empty", s.Text)
	}
	if m.CanUndo() {
		t.Fatal("typing run should be a single step")
	}
}

func TestManager_Limit(t *testing.T) {
	m := NewManager(2)
	m.RecordChange(Change{Before: snap("", 0), After: snap("1", 1)})
	m.RecordChange(Change{Before: snap("1", 1), After: snap("12", 2)})
	m.RecordChange(Change{Before: snap("12", 2), After: snap("123", 3)})
	m.Undo()
	s, _ := m.Undo()
	if s.Text != "1" {
		t.Fatalf("oldest reachable=%q, want %q", s.Text, "1")
	}
	if m.CanUndo() {
		t.Fatal("history should be capped at 2")
	}
}
