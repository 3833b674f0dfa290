package wordcount

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/plugin"
)

func TestCount(t *testing.T) {
	tests := []struct {
		in   string
		want Stats
	}{
		{"", Stats{}},
		{"hello", Stats{Lines: 1, Words: 1, Chars: 5}},
		{"# Title\n\n - [ ] buy milk\n", Stats{Lines: 4, Words: 3, Chars: 25}},
		{"héllo wörld", Stats{Lines: 1, Words: 2, Chars: 11}},
	}
	for _, tt := range tests {
		if got := Count(tt.in); got != tt.want {
			t.Fatalf("Count(%q)=%+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSegmentFollowsBuffer(t *testing.T) {
	api := plugin.NewFakeAPI("one two")
	p := New()
	if err := p.Initialize(api); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if got := api.Segment(SegmentName); got != "2w" {
		t.Fatalf("segment=%q, want %q", got, "2w")
	}

	api.DispatchEvent(event.TypeBufferModified, event.BufferModifiedData{Markdown: "one two three"})
	if got := api.Segment(SegmentName); got != "3w" {
		t.Fatalf("segment=%q, want %q", got, "3w")
	}

	p.Shutdown()
	api.DispatchEvent(event.TypeBufferModified, event.BufferModifiedData{Markdown: "x"})
	if got := api.Segment(SegmentName); got != "3w" {
		t.Fatalf("segment changed after shutdown: %q", got)
	}
}

func TestWCCommand(t *testing.T) {
	api := plugin.NewFakeAPI("a b\nc")
	p := New()
	p.Initialize(api)

	cmd, ok := api.Commands["wc"]
	if !ok {
		t.Fatalf("wc command not registered")
	}
	if err := cmd(nil); err != nil {
		t.Fatalf("wc: %v", err)
	}
	if len(api.Messages) != 1 || api.Messages[0] != "Lines: 2, Words: 3, Chars: 5" {
		t.Fatalf("messages=%q", api.Messages)
	}
}
