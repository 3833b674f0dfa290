// internal/buffer/buffer.go
package buffer

import "github.com/bethropolis/tidemark/internal/types"

// Buffer is line-oriented storage for the note text being edited.
// Columns are rune indexes; offsets are rune offsets into Text().
type Buffer interface {
	SetText(text string)
	Text() string
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	LineLen(index int) int

	// Insert returns the position just after the inserted text.
	Insert(pos types.Position, text string) (types.Position, error)
	// Delete removes [start, end) and returns the removed text.
	Delete(start, end types.Position) (string, error)
	Slice(start, end types.Position) string

	OffsetOf(pos types.Position) int
	PositionAt(offset int) types.Position
	RuneLen() int

	IsModified() bool
	MarkClean()
}
