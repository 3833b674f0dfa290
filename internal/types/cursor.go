package types

// SelectionDirection tells which way a selection was extended from its anchor.
type SelectionDirection int

const (
	DirectionNone SelectionDirection = iota
	DirectionForward
	DirectionBackward
)

func (d SelectionDirection) String() string {
	switch d {
	case DirectionForward:
		return "forward"
	case DirectionBackward:
		return "backward"
	default:
		return "none"
	}
}

// CursorPosition is a read-only snapshot of the editable surface's selection.
// Start and End are rune offsets into the text, Start <= End.
type CursorPosition struct {
	Start              int
	End                int
	IsForwardSelection bool
	IsSelection        bool
}

// NewCursorPosition builds a snapshot from selection boundaries and direction.
//
// IsSelection is true when the direction is DirectionNone, which is the value
// a surface reports when nothing is selected. That inversion is what the
// surface contract has always produced and callers compare against it; it
// may be a latent defect, so it is kept as is and pinned by tests.
func NewCursorPosition(start, end int, dir SelectionDirection) CursorPosition {
	if end < start {
		start, end = end, start
	}
	return CursorPosition{
		Start:              start,
		End:                end,
		IsForwardSelection: dir == DirectionForward,
		IsSelection:        dir == DirectionNone,
	}
}

// Collapsed returns an empty selection at offset.
func Collapsed(offset int) CursorPosition {
	return NewCursorPosition(offset, offset, DirectionNone)
}

// Empty reports whether no text lies between Start and End.
func (c CursorPosition) Empty() bool {
	return c.Start == c.End
}

// Direction recovers the direction the snapshot was taken with.
func (c CursorPosition) Direction() SelectionDirection {
	switch {
	case c.IsForwardSelection:
		return DirectionForward
	case c.IsSelection:
		return DirectionNone
	default:
		return DirectionBackward
	}
}

// Clamp clips both offsets into [0, length] and keeps Start <= End.
func (c CursorPosition) Clamp(length int) CursorPosition {
	if length < 0 {
		length = 0
	}
	c.Start = clampInt(c.Start, 0, length)
	c.End = clampInt(c.End, 0, length)
	if c.End < c.Start {
		c.Start, c.End = c.End, c.Start
	}
	return c
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
