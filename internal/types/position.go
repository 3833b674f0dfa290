// internal/types/position.go
package types

// Position represents a cursor or text position within the line buffer.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Before reports whether p sorts strictly before other in document order.
func (p Position) Before(other Position) bool {
	return p.Line < other.Line || (p.Line == other.Line && p.Col < other.Col)
}

// StyledRange is a run of columns on one line drawn with a theme style.
type StyledRange struct {
	StartCol  int // Inclusive rune index
	EndCol    int // Exclusive rune index
	StyleName string
}
