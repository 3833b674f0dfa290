// internal/event/event.go
package event

import (
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Core editor events
	TypeBufferModified // Buffer content changed (typing, insertion engine, reload)
	TypeCursorMoved    // Cursor moved inside the editable surface
	TypeModeChanged    // Preview <-> Edit transition

	// Triggers raised by shortcuts and menus
	TypeEditorToggleEditModeTrigger
	TypeEditorMakeRowIntoCheckboxTrigger
	TypeEditorDebugConsoleTrigger
	TypeNoteManagementSaveCurrentNoteTrigger
	TypeNoteManagementCreateNewNoteTrigger
	TypeWindowZenModeShortcutTrigger

	TypeKeyPressed

	// Application lifecycle
	TypeAppReady
	TypeAppQuit

	TypeThemeChanged
	TypeStatusMessage
)

var typeNames = map[Type]string{
	TypeUnknown:                              "unknown",
	TypeBufferModified:                       "buffer-modified",
	TypeCursorMoved:                          "cursor-moved",
	TypeModeChanged:                          "mode-changed",
	TypeEditorToggleEditModeTrigger:          "editor-toggle-edit-mode",
	TypeEditorMakeRowIntoCheckboxTrigger:     "editor-make-row-into-checkbox",
	TypeEditorDebugConsoleTrigger:            "editor-debug-console",
	TypeNoteManagementSaveCurrentNoteTrigger: "note-save-current",
	TypeNoteManagementCreateNewNoteTrigger:   "note-create-new",
	TypeWindowZenModeShortcutTrigger:         "window-zen-mode",
	TypeKeyPressed:                           "key-pressed",
	TypeAppReady:                             "app-ready",
	TypeAppQuit:                              "app-quit",
	TypeThemeChanged:                         "theme-changed",
	TypeStatusMessage:                        "status-message",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// BufferModifiedData carries the full buffer after a change.
type BufferModifiedData struct {
	Markdown string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	NewPosition types.Position
}

// ModeChangedData reports the mode entered.
type ModeChangedData struct {
	Edit bool
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// StatusMessageData asks the status bar to show a temporary message.
type StatusMessageData struct {
	Text string
}

// ThemeChangedData names the theme now active.
type ThemeChangedData struct {
	Name string
}

type AppQuitData struct{}

type AppReadyData struct{}
