// internal/modehandler/modehandler.go
package modehandler

import (
	"fmt"
	"sort"

	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// InputMode defines the different states for user input.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

// ModeHandler routes key events: shortcuts first, then editing keys in
// Edit mode, scrolling keys in Preview, and the ':' command line.
type ModeHandler struct {
	editor         *core.Editor
	preview        *tui.Preview
	inputProcessor *input.InputProcessor
	shortcuts      *input.Shortcuts
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quitSignal     chan<- struct{}
	isEdit         func() bool
	previewHeight  func() int
	paste          func()

	currentMode InputMode
	cmdBuffer   []rune
	commands    map[string]plugin.CommandFunc
	quitting    bool
}

// Config holds dependencies for the ModeHandler.
type Config struct {
	Editor         *core.Editor
	Preview        *tui.Preview
	InputProcessor *input.InputProcessor
	Shortcuts      *input.Shortcuts
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	QuitSignal     chan<- struct{} // Closed once to stop the app
	// IsEdit reports whether the editable surface is showing.
	IsEdit func() bool
	// PreviewHeight is the number of rows the preview occupies.
	PreviewHeight func() int
	// Paste starts a paste. It may finish asynchronously.
	Paste func()
}

// New creates a new ModeHandler.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.Preview == nil || cfg.InputProcessor == nil || cfg.EventManager == nil ||
		cfg.StatusBar == nil || cfg.QuitSignal == nil || cfg.IsEdit == nil {
		panic("modehandler.New: Missing required dependencies in Config")
	}
	if cfg.Shortcuts == nil {
		cfg.Shortcuts = input.NewShortcuts()
	}
	if cfg.PreviewHeight == nil {
		cfg.PreviewHeight = func() int { return 0 }
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		preview:        cfg.Preview,
		inputProcessor: cfg.InputProcessor,
		shortcuts:      cfg.Shortcuts,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quitSignal:     cfg.QuitSignal,
		isEdit:         cfg.IsEdit,
		previewHeight:  cfg.PreviewHeight,
		paste:          cfg.Paste,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent decides what to do based on the current mode and key.
// Returns true if the event resulted in an action requiring redraw.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	// Shortcuts fire in both views but not while typing a command.
	if mh.currentMode != ModeCommand && mh.shortcuts.Handle(ev) {
		return true
	}

	edit := mh.isEdit()
	actionEvent := mh.inputProcessor.ProcessEvent(ev, !edit || mh.currentMode == ModeCommand)

	if actionEvent.Action == input.ActionForceQuit {
		mh.Quit()
		return false
	}

	switch {
	case mh.currentMode == ModeCommand:
		return mh.handleActionCommand(actionEvent)
	case edit:
		return mh.handleActionEdit(actionEvent)
	default:
		return mh.handleActionPreview(actionEvent)
	}
}

// Quit signals the app to stop. Safe to call more than once.
func (mh *ModeHandler) Quit() {
	if mh.quitting {
		return
	}
	mh.quitting = true
	close(mh.quitSignal)
}

// RegisterCommand adds a command to the registry. Called via EditorAPI.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.Debugf("ModeHandler: Registered command ':%s'", name)
	return nil
}

// Commands returns the sorted names of registered commands.
func (mh *ModeHandler) Commands() []string {
	names := make([]string, 0, len(mh.commands))
	for name := range mh.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command being typed, if any.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}
