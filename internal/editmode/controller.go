// Package editmode switches the note view between the rendered preview and
// the raw editing surface, keeping the cursor across switches.
package editmode

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/core/text"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/state"
	"github.com/bethropolis/tidemark/internal/surface"
	"github.com/bethropolis/tidemark/internal/types"
)

// PrefKey is the preference key holding the persisted mode.
const PrefKey = "editor.editMode"

// Mode is the view the note is shown in.
type Mode int

const (
	Preview Mode = iota
	Edit
)

func (m Mode) String() string {
	if m == Edit {
		return "EDIT"
	}
	return "PREVIEW"
}

// Options wires the controller to its collaborators.
type Options struct {
	Store  state.Store
	Events *event.Manager
	// Buffer returns the current raw markdown.
	Buffer func() string
	// OnChange receives the full buffer produced by a structured insert.
	OnChange func(string)
	// Surface is where the cursor is captured from when leaving Edit.
	Surface *surface.Ref
}

// Controller owns the edit mode. Its methods run on the UI goroutine.
type Controller struct {
	mu   sync.Mutex
	opts Options

	mode            Mode
	lastCursor      *types.CursorPosition
	pendingFocus    bool
	pendingCheckbox bool

	subs []event.SubscriptionID
}

// New reads the persisted mode; an absent key means Preview.
func New(opts Options) *Controller {
	c := &Controller{opts: opts}
	if opts.Store != nil {
		if edit, ok := opts.Store.GetBool(PrefKey); ok && edit {
			c.mode = Edit
			c.pendingFocus = true
		}
	}
	logger.Debugf("EditMode: starting in %s", c.mode)
	return c
}

// Attach subscribes to the toggle and checkbox triggers.
func (c *Controller) Attach() {
	if c.opts.Events == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.subs) > 0 {
		return
	}
	c.subs = append(c.subs,
		c.opts.Events.Subscribe(event.TypeEditorToggleEditModeTrigger, func(event.Event) bool {
			c.Toggle()
			return true
		}),
		c.opts.Events.Subscribe(event.TypeEditorMakeRowIntoCheckboxTrigger, func(event.Event) bool {
			c.QueueCheckbox()
			return true
		}),
	)
}

// Close releases the subscriptions taken in Attach.
func (c *Controller) Close() {
	c.mu.Lock()
	subs := c.subs
	c.subs = nil
	c.mu.Unlock()

	for _, id := range subs {
		c.opts.Events.Unsubscribe(id)
	}
}

func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

func (c *Controller) IsEdit() bool {
	return c.Mode() == Edit
}

// LastCursor returns the last captured cursor, if any.
func (c *Controller) LastCursor() (types.CursorPosition, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastCursor == nil {
		return types.CursorPosition{}, false
	}
	return *c.lastCursor, true
}

// CaptureCursor stores the selection of the live surface, if there is one.
func (c *Controller) CaptureCursor(ref *surface.Ref) {
	pos, ok := ref.Cursor()
	if !ok {
		return
	}
	c.mu.Lock()
	c.lastCursor = &pos
	c.mu.Unlock()
}

// Toggle flips the mode and persists it. Leaving Edit captures the cursor
// first; entering Edit schedules a cursor restore for the next Sync.
func (c *Controller) Toggle() {
	c.mu.Lock()
	leaving := c.mode == Edit
	c.mu.Unlock()

	if leaving {
		c.CaptureCursor(c.opts.Surface)
	}

	c.mu.Lock()
	if leaving {
		c.mode = Preview
		c.pendingFocus = false
	} else {
		c.mode = Edit
		c.pendingFocus = true
	}
	mode := c.mode
	c.mu.Unlock()

	logger.Infof("EditMode: switched to %s", mode)
	if c.opts.Store != nil {
		if err := c.opts.Store.SetBool(PrefKey, mode == Edit); err != nil {
			logger.Warnf("EditMode: failed to persist mode: %v", err)
		}
	}
	if c.opts.Events != nil {
		c.opts.Events.Dispatch(event.TypeModeChanged, event.ModeChangedData{Edit: mode == Edit})
	}
}

// QueueCheckbox schedules a checkbox marker at the start of the cursor's
// row. It is applied by the next Sync that finds a live surface; triggers
// arriving before that collapse into one insert.
func (c *Controller) QueueCheckbox() {
	c.mu.Lock()
	c.pendingCheckbox = true
	c.mu.Unlock()
}

// Sync runs after every render. In Edit mode it restores the cursor once per
// entry into Edit and applies queued checkbox inserts.
func (c *Controller) Sync(ref *surface.Ref) {
	s, ok := ref.Get()
	if !ok {
		return
	}

	c.mu.Lock()
	if c.mode != Edit {
		c.mu.Unlock()
		return
	}
	focus := c.pendingFocus
	c.pendingFocus = false
	var last *types.CursorPosition
	if c.lastCursor != nil {
		cp := *c.lastCursor
		last = &cp
	}
	checkbox := c.pendingCheckbox
	c.pendingCheckbox = false
	c.mu.Unlock()

	if focus {
		buf := c.buffer()
		pos := types.Collapsed(text.RuneLen(buf))
		if last != nil {
			pos = last.Clamp(text.RuneLen(buf))
		}
		s.SetSelection(pos.Start, pos.End, pos.Direction())
		s.Focus()
		logger.DebugTagf("editmode", "Restored cursor to [%d,%d)", pos.Start, pos.End)
	}

	if checkbox {
		text.InsertOrReplaceAtPosition(text.CheckboxMarker, text.RowStart, ref, c.buffer(), c.opts.OnChange)
	}
}

func (c *Controller) buffer() string {
	if c.opts.Buffer == nil {
		return ""
	}
	return c.opts.Buffer()
}
