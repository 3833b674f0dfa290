package modehandler

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
)

// handleActionEdit handles keys while the editable surface is showing.
func (mh *ModeHandler) handleActionEdit(actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	if action.IsMovement() {
		if actionEvent.Shift {
			mh.editor.StartOrUpdateSelection()
		} else {
			mh.editor.ClearSelection()
		}
	}

	var err error
	switch action {
	case input.ActionQuit:
		// Esc leaves the editor the same way the toggle shortcut does.
		mh.eventManager.Dispatch(event.TypeEditorToggleEditModeTrigger, nil)

	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()
	case input.ActionSelectAll:
		mh.editor.SelectAll()

	case input.ActionInsertRune:
		err = mh.editor.InsertRune(actionEvent.Rune)
	case input.ActionInsertNewLine:
		err = mh.editor.InsertNewLine()
	case input.ActionInsertTab:
		err = mh.editor.InsertTab()
	case input.ActionDeleteCharBackward:
		err = mh.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		err = mh.editor.DeleteForward()

	case input.ActionUndo:
		if !mh.editor.Undo() {
			mh.statusBar.SetTemporaryMessage("Nothing to undo")
		}
	case input.ActionRedo:
		if !mh.editor.Redo() {
			mh.statusBar.SetTemporaryMessage("Nothing to redo")
		}

	case input.ActionCopy:
		copied, cerr := mh.editor.Copy()
		switch {
		case cerr != nil:
			mh.statusBar.SetTemporaryMessage("Copy failed: %v", cerr)
		case copied:
			mh.statusBar.SetTemporaryMessage("Selection copied")
		default:
			mh.statusBar.SetTemporaryMessage("Nothing selected to copy")
		}
	case input.ActionCut:
		cut, cerr := mh.editor.Cut()
		switch {
		case cerr != nil:
			mh.statusBar.SetTemporaryMessage("Cut failed: %v", cerr)
		case !cut:
			mh.statusBar.SetTemporaryMessage("Nothing selected to cut")
		}
	case input.ActionPaste:
		if mh.paste == nil {
			mh.statusBar.SetTemporaryMessage("Paste unavailable")
			return true
		}
		mh.paste()

	default:
		return false
	}

	if err != nil {
		logger.Debugf("ModeHandler: %v failed: %v", action, err)
		return false
	}
	return true
}
