// Package history provides undo/redo over whole-buffer snapshots.
package history

import "github.com/bethropolis/tidemark/internal/types"

// Snapshot is the buffer text and cursor at one point in time.
type Snapshot struct {
	Text   string
	Cursor types.Position
}

// Change is one reversible edit: the state before and after it.
type Change struct {
	Before Snapshot
	After  Snapshot
	// Typing marks single-rune inserts, which merge into one undo step.
	Typing bool
}
