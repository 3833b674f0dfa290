package tasks

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/plugin"
)

func TestCount(t *testing.T) {
	tests := []struct {
		in   string
		want Progress
	}{
		{"", Progress{}},
		{"# Plan\n\nno tasks here\n", Progress{}},
		{" - [ ] milk\n - [x] eggs\n - [X] bread\n", Progress{Done: 2, Total: 3}},
		{"- [ ] outer\n  - [x] nested\n", Progress{Done: 1, Total: 2}},
		{"```\n- [ ] in code\n```\n", Progress{}},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Fatalf("Count(%q)=%+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestProgressString(t *testing.T) {
	if got := (Progress{}).String(); got != "" {
		t.Fatalf("empty progress=%q, want empty", got)
	}
	if got := (Progress{Done: 1, Total: 4}).String(); got != "[x] 1/4" {
		t.Fatalf("progress=%q, want %q", got, "[x] 1/4")
	}
}

func TestSegmentUpdatesOnBufferChange(t *testing.T) {
	api := plugin.NewFakeAPI("- [ ] a\n")
	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := api.Segment(SegmentName); got != "[x] 0/1" {
		t.Fatalf("segment=%q, want %q", got, "[x] 0/1")
	}
	api.DispatchEvent(event.TypeBufferModified, event.BufferModifiedData{Markdown: "- [x] a\n"})
	if got := api.Segment(SegmentName); got != "[x] 1/1" {
		t.Fatalf("segment=%q, want %q", got, "[x] 1/1")
	}
	api.DispatchEvent(event.TypeBufferModified, event.BufferModifiedData{Markdown: "plain"})
	if got := api.Segment(SegmentName); got != "" {
		t.Fatalf("segment=%q, want removed", got)
	}
}

func TestTaskCommandInsertsCheckboxRow(t *testing.T) {
	api := plugin.NewFakeAPI("")
	p := New()
	p.Initialize(api)

	if err := api.Commands["task"]([]string{"call", "mom"}); err != nil {
		t.Fatalf("task: %v", err)
	}
	if want := " - [ ] call mom\n"; api.Markdown() != want {
		t.Fatalf("markdown=%q, want %q", api.Markdown(), want)
	}
}

func TestTasksCommand(t *testing.T) {
	api := plugin.NewFakeAPI("- [x] a\n- [ ] b\n")
	p := New()
	p.Initialize(api)
	api.Commands["tasks"](nil)
	if len(api.Messages) != 1 || api.Messages[0] != "Tasks: 1 done, 1 open" {
		t.Fatalf("messages=%q", api.Messages)
	}
}
