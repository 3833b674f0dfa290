// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/types"
)

// SliceBuffer keeps one byte slice per line, without trailing newlines.
type SliceBuffer struct {
	lines    [][]byte
	modified bool
}

// NewSliceBuffer creates a buffer holding a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: [][]byte{{}}}
}

// SetText replaces the whole content. Call MarkClean after an initial load.
func (sb *SliceBuffer) SetText(text string) {
	parts := strings.Split(text, "\n")
	sb.lines = make([][]byte, len(parts))
	for i, p := range parts {
		sb.lines[i] = []byte(p)
	}
	sb.modified = true
}

func (sb *SliceBuffer) Text() string {
	return string(bytes.Join(sb.lines, []byte{'\n'}))
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("line index %d out of bounds (0-%d)", index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// LineLen returns the rune count of a line, 0 when out of range.
func (sb *SliceBuffer) LineLen(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return utf8.RuneCount(sb.lines[index])
}

func (sb *SliceBuffer) IsModified() bool { return sb.modified }

func (sb *SliceBuffer) MarkClean() { sb.modified = false }

// RuneLen is the rune length of Text().
func (sb *SliceBuffer) RuneLen() int {
	n := len(sb.lines) - 1 // newlines
	for _, l := range sb.lines {
		n += utf8.RuneCount(l)
	}
	return n
}

// OffsetOf converts a (clamped) position into a rune offset.
func (sb *SliceBuffer) OffsetOf(pos types.Position) int {
	pos = sb.clamp(pos)
	off := 0
	for i := 0; i < pos.Line; i++ {
		off += utf8.RuneCount(sb.lines[i]) + 1
	}
	return off + pos.Col
}

// PositionAt converts a rune offset into a position, clamping to the buffer.
func (sb *SliceBuffer) PositionAt(offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	for i, l := range sb.lines {
		n := utf8.RuneCount(l)
		if offset <= n {
			return types.Position{Line: i, Col: offset}
		}
		offset -= n + 1
	}
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// Insert inserts text at pos. Handles multi-line text.
func (sb *SliceBuffer) Insert(pos types.Position, text string) (types.Position, error) {
	pos = sb.clamp(pos)
	if text == "" {
		return pos, nil
	}
	sb.modified = true

	line := sb.lines[pos.Line]
	at := byteOffset(line, pos.Col)
	head := append([]byte{}, line[:at]...)
	tail := append([]byte{}, line[at:]...)

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		sb.lines[pos.Line] = append(append(head, parts[0]...), tail...)
		return types.Position{Line: pos.Line, Col: pos.Col + utf8.RuneCountInString(text)}, nil
	}

	newLines := make([][]byte, len(parts))
	newLines[0] = append(head, parts[0]...)
	for i := 1; i < len(parts); i++ {
		newLines[i] = []byte(parts[i])
	}
	last := len(parts) - 1
	end := types.Position{Line: pos.Line + last, Col: utf8.RuneCountInString(parts[last])}
	newLines[last] = append(newLines[last], tail...)

	rest := append([][]byte{}, sb.lines[pos.Line+1:]...)
	sb.lines = append(append(sb.lines[:pos.Line], newLines...), rest...)
	return end, nil
}

// Delete removes text in [start, end). The bounds may be given in either order.
func (sb *SliceBuffer) Delete(start, end types.Position) (string, error) {
	start, end = sb.clamp(start), sb.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	if start == end {
		return "", nil
	}
	removed := sb.Slice(start, end)
	sb.modified = true

	first := sb.lines[start.Line]
	lastLine := sb.lines[end.Line]
	merged := append(append([]byte{}, first[:byteOffset(first, start.Col)]...), lastLine[byteOffset(lastLine, end.Col):]...)

	rest := append([][]byte{}, sb.lines[end.Line+1:]...)
	sb.lines = append(append(sb.lines[:start.Line], merged), rest...)
	return removed, nil
}

// Slice returns the text in [start, end).
func (sb *SliceBuffer) Slice(start, end types.Position) string {
	start, end = sb.clamp(start), sb.clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	if start.Line == end.Line {
		l := sb.lines[start.Line]
		return string(l[byteOffset(l, start.Col):byteOffset(l, end.Col)])
	}
	var b strings.Builder
	first := sb.lines[start.Line]
	b.Write(first[byteOffset(first, start.Col):])
	for i := start.Line + 1; i < end.Line; i++ {
		b.WriteByte('\n')
		b.Write(sb.lines[i])
	}
	b.WriteByte('\n')
	last := sb.lines[end.Line]
	b.Write(last[:byteOffset(last, end.Col)])
	return b.String()
}

func (sb *SliceBuffer) clamp(pos types.Position) types.Position {
	if len(sb.lines) == 0 {
		sb.lines = [][]byte{{}}
	}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	if n := utf8.RuneCount(sb.lines[pos.Line]); pos.Col > n {
		pos.Col = n
	}
	return pos
}

// byteOffset converts a rune column into a byte index within line.
func byteOffset(line []byte, col int) int {
	off := 0
	for i := 0; i < col && off < len(line); i++ {
		_, size := utf8.DecodeRune(line[off:])
		off += size
	}
	return off
}

var _ Buffer = (*SliceBuffer)(nil)
