package note

import (
	"testing"
	"time"
)

func TestDefaultNote(t *testing.T) {
	d := DefaultNote()
	if !d.FileDescription.FileExists {
		t.Fatal("DefaultNote should report FileExists=true")
	}
	if d.Markdown != "" {
		t.Fatalf("Markdown=%q, want empty", d.Markdown)
	}
}

func TestManager_UpdateNotifies(t *testing.T) {
	m := NewManager()
	if _, ok := m.CurrentNote(); ok {
		t.Fatal("new manager should have no note")
	}

	var seen []string
	m.OnChange(func(r Record) { seen = append(seen, r.Markdown) })
	m.UpdateCurrentNote(Record{Markdown: "one"})
	m.UpdateCurrentNote(Record{Markdown: "two"})

	if len(seen) != 2 || seen[1] != "two" {
		t.Fatalf("seen=%v", seen)
	}
	if got := m.Markdown(); got != "two" {
		t.Fatalf("Markdown()=%q, want %q", got, "two")
	}
}

func TestManager_TagsAreCopied(t *testing.T) {
	m := NewManager()
	tags := []string{"a"}
	m.UpdateCurrentNote(Record{FileDescription: FileDescription{Tags: tags}})
	tags[0] = "mutated"

	r, _ := m.CurrentNote()
	if r.FileDescription.Tags[0] != "a" {
		t.Fatalf("Tags=%v, stored record aliased the caller's slice", r.FileDescription.Tags)
	}
}

func TestFromFile(t *testing.T) {
	mod := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	r := FromFile("/notes/groceries.md", "# Shopping\n- milk", mod)
	fd := r.FileDescription
	if fd.FileNameWithoutExtension != "groceries" {
		t.Fatalf("name=%q", fd.FileNameWithoutExtension)
	}
	if fd.Title != "Shopping" {
		t.Fatalf("title=%q", fd.Title)
	}
	if !fd.Modified.Equal(mod) || !fd.FileExists {
		t.Fatalf("fd=%+v", fd)
	}
}

func TestTitleOf_Fallback(t *testing.T) {
	if got := TitleOf("no heading here", "fallback"); got != "fallback" {
		t.Fatalf("TitleOf=%q, want fallback", got)
	}
}
