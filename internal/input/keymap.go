// internal/input/keymap.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps specific key events to editor actions.
type Keymap map[tcell.Key]Action        // Special keys (Enter, arrows, ...)
type RuneKeymap map[rune]Action         // Plain rune bindings
type ModKeymap map[tcell.ModMask]Keymap // Keys combined with modifiers

// InputProcessor translates tcell events into ActionEvents.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap RuneKeymap
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with default keybindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(RuneKeymap),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyEscape] = ActionQuit

	ctrlMap := make(Keymap)
	ctrlMap[tcell.KeyCtrlQ] = ActionForceQuit
	ctrlMap[tcell.KeyCtrlZ] = ActionUndo
	ctrlMap[tcell.KeyCtrlY] = ActionRedo
	ctrlMap[tcell.KeyCtrlC] = ActionCopy
	ctrlMap[tcell.KeyCtrlX] = ActionCut
	ctrlMap[tcell.KeyCtrlV] = ActionPaste
	ctrlMap[tcell.KeyCtrlA] = ActionSelectAll
	p.modKeymap[tcell.ModCtrl] = ctrlMap

	p.runeKeymap[':'] = ActionEnterCommandMode
}

// ProcessEvent maps ev to an action. allowCommand controls whether ':'
// opens the command line or is typed as text.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey, allowCommand bool) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()
	shift := mod&tcell.ModShift != 0

	if modKeyMap, ok := p.modKeymap[mod&^tcell.ModShift]; ok {
		if action, ok := modKeyMap[key]; ok {
			return ActionEvent{Action: action, Shift: shift}
		}
	}
	// Ctrl+letter keys already carry Ctrl in the key code.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}

	if mod&^tcell.ModShift == tcell.ModNone {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action, Shift: shift}
		}
	}

	if key == tcell.KeyRune && mod&^tcell.ModShift == tcell.ModNone {
		r := ev.Rune()
		if action, ok := p.runeKeymap[r]; ok && allowCommand {
			return ActionEvent{Action: action, Rune: r}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: r}
	}

	return ActionEvent{Action: ActionUnknown}
}
