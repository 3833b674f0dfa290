package theme

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestGetStyleFallsBackThroughDottedNames(t *testing.T) {
	th := &TidemarkDark

	if got, want := th.GetStyle("markup.list.checked"), th.Styles["markup.list.checked"]; got != want {
		t.Fatalf("exact style mismatch")
	}
	if got, want := th.GetStyle("markup.heading.1"), th.Styles["markup.heading"]; got != want {
		t.Fatalf("markup.heading.1 should resolve to markup.heading")
	}
	if got, want := th.GetStyle("nonexistent"), th.Styles["Default"]; got != want {
		t.Fatalf("unknown style should resolve to Default")
	}
}

func TestGetStyleWithoutDefault(t *testing.T) {
	th := &Theme{Name: "bare", Styles: map[string]tcell.Style{}}
	if got := th.GetStyle("anything"); got != tcell.StyleDefault {
		t.Fatalf("got %v, want tcell.StyleDefault", got)
	}
}

func TestParseTheme(t *testing.T) {
	data := []byte(`
name = "Paper"
is_dark = false

[styles.Default]
fg = "#112233"
bg = "white"

[styles."markup.heading"]
bold = true

[styles.Broken]
fg = "not-a-color"
`)
	th, err := ParseTheme(data, "fallback")
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if th.Name != "Paper" {
		t.Fatalf("name=%q, want %q", th.Name, "Paper")
	}
	fg, bg, _ := th.Styles["Default"].Decompose()
	if fg != tcell.NewHexColor(0x112233) || bg != tcell.ColorWhite {
		t.Fatalf("Default colors = %v/%v", fg, bg)
	}
	hfg, _, attrs := th.Styles["markup.heading"].Decompose()
	if hfg != fg {
		t.Fatalf("heading should inherit Default fg, got %v", hfg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Fatalf("heading should be bold")
	}
	if _, ok := th.Styles["Broken"]; ok {
		t.Fatalf("style with a bad color should be skipped")
	}
}

func TestParseThemeFallbackName(t *testing.T) {
	th, err := ParseTheme([]byte(`[styles.Default]
fg = "red"`), "from-file")
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if th.Name != "from-file" {
		t.Fatalf("name=%q, want %q", th.Name, "from-file")
	}
}

func TestParseColorString(t *testing.T) {
	tests := []struct {
		in      string
		want    tcell.Color
		wantErr bool
	}{
		{"#ff0000", tcell.NewHexColor(0xff0000), false},
		{"  RED ", tcell.ColorRed, false},
		{"reset", tcell.ColorReset, false},
		{"default", tcell.ColorDefault, false},
		{"#fff", tcell.ColorDefault, true},
		{"#gggggg", tcell.ColorDefault, true},
		{"chartreuse-ish", tcell.ColorDefault, true},
	}
	for _, tt := range tests {
		got, err := parseColorString(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("parseColorString(%q) err=%v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("parseColorString(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestManagerBuiltinsAndDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sand.toml"), []byte(`[styles.Default]
fg = "yellow"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	m := NewManager(dir)
	names := m.ListThemes()
	want := []string{"Tidemark Dark", "Tidemark Light", "sand"}
	if len(names) != len(want) {
		t.Fatalf("themes=%v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("themes=%v, want %v", names, want)
		}
	}
	if m.Current().Name != "Tidemark Dark" {
		t.Fatalf("current=%q, want Tidemark Dark", m.Current().Name)
	}
	if err := m.SetTheme("SAND"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if m.Current().Name != "sand" {
		t.Fatalf("current=%q, want sand", m.Current().Name)
	}
	if err := m.SetTheme("missing"); err == nil {
		t.Fatalf("SetTheme(missing) should fail")
	}
}

func TestManagerMissingDir(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "nope"))
	if len(m.ListThemes()) != 2 {
		t.Fatalf("themes=%v, want only built-ins", m.ListThemes())
	}
}

func TestLoadFileReplacesActiveTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ink.toml")
	os.WriteFile(path, []byte(`[styles.Default]
fg = "red"`), 0o644)

	m := NewManager(dir)
	if err := m.SetTheme("ink"); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(path, []byte(`[styles.Default]
fg = "blue"`), 0o644)
	if _, err := m.LoadFile(path); err != nil {
		t.Fatal(err)
	}
	fg, _, _ := m.Current().GetStyle("Default").Decompose()
	if fg != tcell.ColorBlue {
		t.Fatalf("active theme fg=%v, want blue", fg)
	}
}

func TestWatchReloadsChangedTheme(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "live.toml")
	os.WriteFile(path, []byte(`[styles.Default]
fg = "red"`), 0o644)
	m := NewManager(dir)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	reloaded := make(chan *Theme, 4)
	done := make(chan error, 1)
	go func() { done <- m.Watch(ctx, func(th *Theme) { reloaded <- th }) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	os.WriteFile(path, []byte(`[styles.Default]
fg = "green"`), 0o644)

	select {
	case th := <-reloaded:
		fg, _, _ := th.GetStyle("Default").Decompose()
		if fg != tcell.ColorGreen {
			t.Fatalf("reloaded fg=%v, want green", fg)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("theme was not reloaded")
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch returned %v", err)
	}
}

func TestWatchWithoutDir(t *testing.T) {
	m := NewManager("")
	if err := m.Watch(context.Background(), nil); err == nil {
		t.Fatalf("Watch without a directory should fail")
	}
}
