// internal/input/action.go
package input

// Action represents an operation on the editing surface or the app.
type Action int

const (
	// Meta
	ActionUnknown Action = iota
	ActionQuit
	ActionForceQuit

	// Cursor movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome // Beginning of line
	ActionMoveEnd  // End of line
	ActionSelectAll

	// Text manipulation
	ActionInsertRune    // Requires Rune argument
	ActionInsertNewLine // Enter
	ActionInsertTab
	ActionDeleteCharForward
	ActionDeleteCharBackward
	ActionUndo
	ActionRedo
	ActionCopy
	ActionCut
	ActionPaste

	// Command line
	ActionEnterCommandMode
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionForceQuit:          "force-quit",
	ActionMoveUp:             "move-up",
	ActionMoveDown:           "move-down",
	ActionMoveLeft:           "move-left",
	ActionMoveRight:          "move-right",
	ActionMovePageUp:         "page-up",
	ActionMovePageDown:       "page-down",
	ActionMoveHome:           "home",
	ActionMoveEnd:            "end",
	ActionSelectAll:          "select-all",
	ActionInsertRune:         "insert-rune",
	ActionInsertNewLine:      "newline",
	ActionInsertTab:          "tab",
	ActionDeleteCharForward:  "delete",
	ActionDeleteCharBackward: "backspace",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCopy:               "copy",
	ActionCut:                "cut",
	ActionPaste:              "paste",
	ActionEnterCommandMode:   "command",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// IsMovement reports whether a moves the cursor without editing.
func (a Action) IsMovement() bool {
	switch a {
	case ActionMoveUp, ActionMoveDown, ActionMoveLeft, ActionMoveRight,
		ActionMovePageUp, ActionMovePageDown, ActionMoveHome, ActionMoveEnd:
		return true
	}
	return false
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action Action
	Rune   rune // Used for ActionInsertRune
	Shift  bool // Extends the selection for movement actions
}
