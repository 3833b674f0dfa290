// Package surface defines the editable text surface capability the editor
// core talks to, and the Ref through which it reaches a mounted surface.
package surface

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/types"
)

// Surface is a mounted, editable text area.
type Surface interface {
	// GetSelection reports the selection as rune offsets into GetValue.
	GetSelection() (start, end int, dir types.SelectionDirection)
	// SetSelection moves the selection. Offsets outside the value are clamped.
	SetSelection(start, end int, dir types.SelectionDirection)
	// Focus gives the surface keyboard focus.
	Focus()
	// GetValue returns the full text currently shown by the surface.
	GetValue() string
}

// Ref points at the surface currently mounted, if any. It is set when the
// editing view is shown and cleared when it is torn down.
type Ref struct {
	mu      sync.RWMutex
	current Surface
}

// NewRef returns a Ref holding s. s may be nil.
func NewRef(s Surface) *Ref {
	return &Ref{current: s}
}

// Set mounts s.
func (r *Ref) Set(s Surface) {
	r.mu.Lock()
	r.current = s
	r.mu.Unlock()
}

// Clear marks the surface as gone.
func (r *Ref) Clear() {
	r.Set(nil)
}

// Get returns the live surface, or false when none is mounted.
// A nil Ref has no surface.
func (r *Ref) Get() (Surface, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current, r.current != nil
}

// Cursor snapshots the selection of the live surface.
func (r *Ref) Cursor() (types.CursorPosition, bool) {
	s, ok := r.Get()
	if !ok {
		return types.CursorPosition{}, false
	}
	start, end, dir := s.GetSelection()
	return types.NewCursorPosition(start, end, dir), true
}
