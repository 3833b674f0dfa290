// Package text holds the insertion engine: structured edits that splice a
// fragment into the note buffer at the live cursor of an editable surface.
package text

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/surface"
	"github.com/bethropolis/tidemark/internal/types"
)

// InsertType selects where a fragment lands relative to the selection.
type InsertType int

const (
	// RowStart inserts at the start of the line holding the selection start.
	RowStart InsertType = iota
	// ReplaceSelection replaces [Start, End), or inserts at the cursor when
	// the selection is empty.
	ReplaceSelection
)

func (t InsertType) String() string {
	switch t {
	case RowStart:
		return "row-start"
	case ReplaceSelection:
		return "replace-selection"
	default:
		return "unknown"
	}
}

// CheckboxMarker is inserted at row start to turn a line into a task item.
const CheckboxMarker = " - [ ] "

// InsertOrReplaceAtPosition splices text into currentBuffer at the selection
// of the surface held by target and hands the full new buffer to onResult.
// Without a live surface it does nothing. The cursor is not moved.
func InsertOrReplaceAtPosition(text string, policy InsertType, target *surface.Ref, currentBuffer string, onResult func(string)) {
	s, ok := target.Get()
	if !ok {
		logger.DebugTagf("insert", "No live surface, dropping %s insert of %d bytes", policy, len(text))
		return
	}
	start, end, dir := s.GetSelection()
	sel := types.NewCursorPosition(start, end, dir).Clamp(RuneLen(currentBuffer))

	updated := Apply(currentBuffer, sel, text, policy)
	logger.DebugTagf("insert", "%s insert at [%d,%d): %q", policy, sel.Start, sel.End, text)
	if onResult != nil {
		onResult(updated)
	}
}

// Apply returns buf with text placed according to policy. sel must already
// be clamped to buf. An unknown policy leaves buf unchanged.
func Apply(buf string, sel types.CursorPosition, text string, policy InsertType) string {
	switch policy {
	case RowStart:
		at := LineStart(buf, sel.Start)
		return Splice(buf, at, at, text)
	case ReplaceSelection:
		return Splice(buf, sel.Start, sel.End, text)
	default:
		logger.DebugTagf("insert", "Unknown insert policy %d, buffer unchanged", int(policy))
		return buf
	}
}

// Splice replaces the runes in [start, end) of buf with text.
// Offsets are clamped into range. Bytes outside the range are kept as is,
// including invalid UTF-8.
func Splice(buf string, start, end int, text string) string {
	c := types.CursorPosition{Start: start, End: end}.Clamp(RuneLen(buf))
	from := byteOffset(buf, c.Start)
	to := from + byteOffset(buf[from:], c.End-c.Start)

	var sb strings.Builder
	sb.Grow(len(buf) + len(text))
	sb.WriteString(buf[:from])
	sb.WriteString(text)
	sb.WriteString(buf[to:])
	return sb.String()
}

// byteOffset maps a rune offset to a byte index in buf. Each invalid byte
// counts as one rune, as utf8.RuneCountInString does.
func byteOffset(buf string, runes int) int {
	i := 0
	for n := 0; n < runes && i < len(buf); n++ {
		_, size := utf8.DecodeRuneInString(buf[i:])
		i += size
	}
	return i
}

// LineStart returns the rune offset just after the nearest '\n' before
// offset, or 0 when there is none.
func LineStart(buf string, offset int) int {
	line, n := 0, 0
	for i := 0; i < len(buf) && n < offset; n++ {
		r, size := utf8.DecodeRuneInString(buf[i:])
		i += size
		if r == '\n' {
			line = n + 1
		}
	}
	return line
}

// RuneLen is the buffer length in the offset unit used by selections.
func RuneLen(buf string) int {
	return utf8.RuneCountInString(buf)
}
