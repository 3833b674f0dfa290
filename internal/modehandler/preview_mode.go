package modehandler

import (
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
)

// handleActionPreview handles keys while the rendered preview is showing.
// Typed text never reaches the note here.
func (mh *ModeHandler) handleActionPreview(actionEvent input.ActionEvent) bool {
	h := mh.previewHeight()
	page := h - 1
	if page < 1 {
		page = 1
	}

	switch actionEvent.Action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetCommandInput("", true)
		logger.Debugf("ModeHandler: Entering Command Mode")

	case input.ActionQuit:
		mh.Quit()
		return false

	case input.ActionMoveUp:
		mh.preview.Scroll(-1, h)
	case input.ActionMoveDown:
		mh.preview.Scroll(1, h)
	case input.ActionMovePageUp:
		mh.preview.Scroll(-page, h)
	case input.ActionMovePageDown:
		mh.preview.Scroll(page, h)
	case input.ActionMoveHome:
		mh.preview.ScrollTo(0, h)
	case input.ActionMoveEnd:
		mh.preview.ScrollTo(len(mh.preview.Lines()), h)

	case input.ActionInsertRune:
		switch actionEvent.Rune {
		case 'q':
			mh.Quit()
			return false
		case 'j':
			mh.preview.Scroll(1, h)
		case 'k':
			mh.preview.Scroll(-1, h)
		case 'g':
			mh.preview.ScrollTo(0, h)
		case 'G':
			mh.preview.ScrollTo(len(mh.preview.Lines()), h)
		default:
			return false
		}

	default:
		return false
	}
	return true
}
