package modehandler

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
)

// handleActionCommand handles actions when in ModeCommand.
func (mh *ModeHandler) handleActionCommand(actionEvent input.ActionEvent) bool {
	switch actionEvent.Action {
	case input.ActionInsertRune, input.ActionEnterCommandMode:
		mh.cmdBuffer = append(mh.cmdBuffer, actionEvent.Rune)

	case input.ActionInsertTab:
		mh.complete()

	case input.ActionDeleteCharBackward:
		if len(mh.cmdBuffer) > 0 {
			mh.cmdBuffer = mh.cmdBuffer[:len(mh.cmdBuffer)-1]
		} else {
			mh.exitCommandMode()
			logger.Debugf("ModeHandler: Exiting Command Mode via Backspace")
			return true
		}

	case input.ActionInsertNewLine:
		cmd := string(mh.cmdBuffer)
		mh.exitCommandMode()
		mh.executeCommand(cmd)
		return true

	case input.ActionQuit:
		mh.exitCommandMode()
		logger.Debugf("ModeHandler: Canceled Command Mode via Escape")
		return true

	default:
		return false
	}

	mh.statusBar.SetCommandInput(string(mh.cmdBuffer), true)
	return true
}

func (mh *ModeHandler) exitCommandMode() {
	mh.currentMode = ModeNormal
	mh.cmdBuffer = mh.cmdBuffer[:0]
	mh.statusBar.SetCommandInput("", false)
}

// complete extends the command name when exactly one command matches.
func (mh *ModeHandler) complete() {
	typed := string(mh.cmdBuffer)
	if strings.ContainsRune(typed, ' ') {
		return
	}
	var match string
	for _, name := range mh.Commands() {
		if strings.HasPrefix(name, typed) {
			if match != "" {
				return
			}
			match = name
		}
	}
	if match != "" {
		mh.cmdBuffer = []rune(match + " ")
	}
}

// executeCommand parses and runs a command line such as "tags work todo".
func (mh *ModeHandler) executeCommand(cmdStr string) {
	parts := strings.Fields(cmdStr)
	if len(parts) == 0 {
		return
	}
	cmdName, args := parts[0], parts[1:]

	cmdFunc, exists := mh.commands[cmdName]
	if !exists {
		mh.statusBar.SetTemporaryMessage("Unknown command: %s", cmdName)
		return
	}
	logger.Debugf("ModeHandler: Executing command ':%s' with args %v", cmdName, args)
	if err := cmdFunc(args); err != nil {
		mh.statusBar.SetTemporaryMessage("Error executing command '%s': %v", cmdName, err)
	}
}
