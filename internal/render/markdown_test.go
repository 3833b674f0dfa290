package render

import (
	"errors"
	"strings"
	"testing"
)

type stubRenderer struct {
	out   string
	err   error
	calls int
}

func (s *stubRenderer) Render(string) (string, error) {
	s.calls++
	return s.out, s.err
}

func TestLinesStripsANSIAndTrailingBlanks(t *testing.T) {
	r := &stubRenderer{out: "\x1b[1mTitle\x1b[0m   \n\n  body\x1b[31m!\x1b[0m\n\n\n"}
	lines, err := Lines(r, "ignored")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	want := []string{"Title", "", "  body!"}
	if len(lines) != len(want) {
		t.Fatalf("lines=%q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("lines[%d]=%q, want %q", i, lines[i], want[i])
		}
	}
}

func TestLinesPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Lines(&stubRenderer{err: boom}, "x"); !errors.Is(err, boom) {
		t.Fatalf("err=%v, want %v", err, boom)
	}
}

func TestGlamourRendersHeadingAndTasks(t *testing.T) {
	g, err := NewGlamour("notty", 60)
	if err != nil {
		t.Fatalf("NewGlamour: %v", err)
	}
	lines, err := Lines(g, "# Groceries\n\n - [ ] milk\n - [x] eggs\n")
	if err != nil {
		t.Fatalf("Lines: %v", err)
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"Groceries", "milk", "eggs"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("rendered output %q missing %q", joined, want)
		}
	}
	if strings.Contains(joined, "\x1b[") {
		t.Fatalf("rendered lines still contain escape codes: %q", joined)
	}
}

func TestGlamourCachesByWidth(t *testing.T) {
	g, err := NewGlamour("notty", 40)
	if err != nil {
		t.Fatalf("NewGlamour: %v", err)
	}
	first, _ := g.Render("hello")
	if len(g.cache) != 1 {
		t.Fatalf("cache size=%d, want 1", len(g.cache))
	}
	second, _ := g.Render("hello")
	if first != second || len(g.cache) != 1 {
		t.Fatalf("second render should come from the cache")
	}
	if err := g.SetWidth(20); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	g.Render("hello")
	if len(g.cache) != 2 {
		t.Fatalf("cache size=%d, want 2 after width change", len(g.cache))
	}
}

func TestNewGlamourUnknownStyle(t *testing.T) {
	if _, err := NewGlamour("no-such-style", 40); err == nil {
		t.Fatalf("unknown style should fail")
	}
}

func TestWidth(t *testing.T) {
	if got := Width("日本"); got != 4 {
		t.Fatalf("Width=%d, want 4", got)
	}
}
