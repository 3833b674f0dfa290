package modehandler

import (
	"errors"
	"testing"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/gdamore/tcell/v2"
)

type harness struct {
	mh      *ModeHandler
	editor  *core.Editor
	preview *tui.Preview
	events  *event.Manager
	sc      *input.Shortcuts
	quit    chan struct{}
	edit    bool
	pastes  int
}

func newHarness(t *testing.T, text string) *harness {
	t.Helper()
	h := &harness{
		editor:  core.NewEditor(buffer.NewSliceBuffer()),
		preview: &tui.Preview{},
		events:  event.NewManager(),
		sc:      input.NewShortcuts(),
		quit:    make(chan struct{}),
	}
	h.editor.LoadText(text)
	h.editor.SetViewSize(40, 10)
	h.mh = New(Config{
		Editor:         h.editor,
		Preview:        h.preview,
		InputProcessor: input.NewInputProcessor(),
		Shortcuts:      h.sc,
		EventManager:   h.events,
		StatusBar:      statusbar.New(statusbar.DefaultConfig()),
		QuitSignal:     h.quit,
		IsEdit:         func() bool { return h.edit },
		PreviewHeight:  func() int { return 3 },
		Paste:          func() { h.pastes++ },
	})
	return h
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func (h *harness) typeString(s string) {
	for _, r := range s {
		h.mh.HandleKeyEvent(runeKey(r))
	}
}

func (h *harness) quitClosed() bool {
	select {
	case <-h.quit:
		return true
	default:
		return false
	}
}

func TestEditModeTypesText(t *testing.T) {
	h := newHarness(t, "")
	h.edit = true
	h.typeString("a:b")
	h.mh.HandleKeyEvent(key(tcell.KeyEnter))
	h.typeString("c")

	if got := h.editor.Text(); got != "a:b\nc" {
		t.Fatalf("text=%q, want %q", got, "a:b\nc")
	}
	if h.mh.GetCurrentMode() != ModeNormal {
		t.Fatalf("':' must not open the command line in Edit mode")
	}
}

func TestPreviewModeIgnoresText(t *testing.T) {
	h := newHarness(t, "keep")
	h.typeString("xyz")
	if got := h.editor.Text(); got != "keep" {
		t.Fatalf("text=%q, preview typing must not edit", got)
	}
}

func TestShortcutRunsBeforeKeymap(t *testing.T) {
	h := newHarness(t, "")
	h.edit = true
	chord, _ := input.ParseChord("ctrl+e")
	fired := 0
	if err := h.sc.Register(chord, func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	if !h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlE, 0, tcell.ModCtrl)) {
		t.Fatalf("shortcut should request a redraw")
	}
	if fired != 1 {
		t.Fatalf("shortcut fired %d times, want 1", fired)
	}
	if h.editor.Text() != "" {
		t.Fatalf("shortcut key leaked into the buffer: %q", h.editor.Text())
	}
}

func TestEscInEditDispatchesToggle(t *testing.T) {
	h := newHarness(t, "")
	h.edit = true
	toggles := 0
	h.events.Subscribe(event.TypeEditorToggleEditModeTrigger, func(event.Event) bool {
		toggles++
		return true
	})
	h.mh.HandleKeyEvent(key(tcell.KeyEscape))
	if toggles != 1 {
		t.Fatalf("toggles=%d, want 1", toggles)
	}
	if h.quitClosed() {
		t.Fatalf("Esc in Edit must not quit")
	}
}

func TestShiftMovementSelects(t *testing.T) {
	h := newHarness(t, "hello")
	h.edit = true
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModShift))
	if got := h.editor.SelectedText(); got != "he" {
		t.Fatalf("selected=%q, want %q", got, "he")
	}
	h.mh.HandleKeyEvent(key(tcell.KeyRight))
	if h.editor.HasSelection() {
		t.Fatalf("plain movement should clear the selection")
	}
}

func TestPasteUsesHook(t *testing.T) {
	h := newHarness(t, "")
	h.edit = true
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlV, 0, tcell.ModCtrl))
	if h.pastes != 1 {
		t.Fatalf("pastes=%d, want 1", h.pastes)
	}
}

func TestUndoRedo(t *testing.T) {
	h := newHarness(t, "")
	h.edit = true
	h.typeString("ab")
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl))
	if got := h.editor.Text(); got != "" {
		t.Fatalf("after undo text=%q, want empty", got)
	}
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl))
	if got := h.editor.Text(); got != "ab" {
		t.Fatalf("after redo text=%q, want %q", got, "ab")
	}
}

func TestPreviewScrolling(t *testing.T) {
	h := newHarness(t, "")
	h.preview.SetLines([]string{"1", "2", "3", "4", "5", "6"})

	h.mh.HandleKeyEvent(key(tcell.KeyDown))
	h.typeString("j")
	if got := h.preview.Offset(); got != 2 {
		t.Fatalf("offset=%d, want 2", got)
	}
	h.typeString("G")
	if got := h.preview.Offset(); got != 3 {
		t.Fatalf("offset=%d, want 3", got)
	}
	h.mh.HandleKeyEvent(key(tcell.KeyHome))
	if got := h.preview.Offset(); got != 0 {
		t.Fatalf("offset=%d, want 0", got)
	}
}

func TestCommandLine(t *testing.T) {
	h := newHarness(t, "")
	var gotArgs []string
	h.mh.RegisterCommand("tags", func(args []string) error {
		gotArgs = args
		return nil
	})

	h.typeString(":tags work  todo")
	if h.mh.GetCurrentMode() != ModeCommand {
		t.Fatalf("':' should open the command line in Preview")
	}
	if got := h.mh.GetCommandBuffer(); got != "tags work  todo" {
		t.Fatalf("buffer=%q", got)
	}
	h.mh.HandleKeyEvent(key(tcell.KeyEnter))

	if h.mh.GetCurrentMode() != ModeNormal {
		t.Fatalf("Enter should leave the command line")
	}
	if len(gotArgs) != 2 || gotArgs[0] != "work" || gotArgs[1] != "todo" {
		t.Fatalf("args=%q, want [work todo]", gotArgs)
	}
}

func TestCommandLineBackspaceAndEscape(t *testing.T) {
	h := newHarness(t, "")
	h.typeString(":é")
	h.mh.HandleKeyEvent(key(tcell.KeyBackspace2))
	if got := h.mh.GetCommandBuffer(); got != "" {
		t.Fatalf("buffer=%q, want empty after deleting a multi-byte rune", got)
	}
	h.mh.HandleKeyEvent(key(tcell.KeyBackspace2))
	if h.mh.GetCurrentMode() != ModeNormal {
		t.Fatalf("backspace on empty command should exit")
	}

	h.typeString(":abc")
	h.mh.HandleKeyEvent(key(tcell.KeyEscape))
	if h.mh.GetCurrentMode() != ModeNormal || h.quitClosed() {
		t.Fatalf("Esc should cancel the command line without quitting")
	}
}

func TestCommandCompletion(t *testing.T) {
	h := newHarness(t, "")
	h.mh.RegisterCommand("theme", func([]string) error { return nil })
	h.mh.RegisterCommand("tags", func([]string) error { return nil })

	h.typeString(":th")
	h.mh.HandleKeyEvent(key(tcell.KeyTab))
	if got := h.mh.GetCommandBuffer(); got != "theme " {
		t.Fatalf("buffer=%q, want %q", got, "theme ")
	}

	h.mh.HandleKeyEvent(key(tcell.KeyEscape))
	h.typeString(":t")
	h.mh.HandleKeyEvent(key(tcell.KeyTab))
	if got := h.mh.GetCommandBuffer(); got != "t" {
		t.Fatalf("ambiguous prefix completed to %q", got)
	}
}

func TestCommandErrorsAndUnknown(t *testing.T) {
	h := newHarness(t, "")
	called := false
	h.mh.RegisterCommand("fail", func([]string) error {
		called = true
		return errors.New("boom")
	})
	h.typeString(":fail")
	h.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if !called {
		t.Fatalf("command was not run")
	}
	h.typeString(":nope")
	h.mh.HandleKeyEvent(key(tcell.KeyEnter))
	if h.mh.GetCurrentMode() != ModeNormal {
		t.Fatalf("unknown command should still leave the command line")
	}
}

func TestRegisterCommandValidation(t *testing.T) {
	h := newHarness(t, "")
	if err := h.mh.RegisterCommand("", nil); err == nil {
		t.Fatalf("empty name should fail")
	}
	h.mh.RegisterCommand("x", func([]string) error { return nil })
	if err := h.mh.RegisterCommand("x", func([]string) error { return nil }); err == nil {
		t.Fatalf("duplicate should fail")
	}
}

func TestQuitKeys(t *testing.T) {
	h := newHarness(t, "")
	h.typeString("q")
	if !h.quitClosed() {
		t.Fatalf("q in Preview should quit")
	}
	// A second quit must not panic on the closed channel.
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
}

func TestForceQuitFromEdit(t *testing.T) {
	h := newHarness(t, "")
	h.edit = true
	h.mh.HandleKeyEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	if !h.quitClosed() {
		t.Fatalf("Ctrl+Q should quit from Edit")
	}
}
