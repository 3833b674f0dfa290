package surface

import "github.com/bethropolis/tidemark/internal/types"

// Fake is an in-memory Surface for tests and headless runs.
type Fake struct {
	Value      string
	Start, End int
	Dir        types.SelectionDirection
	FocusCount int
	SetCount   int
}

func (f *Fake) GetSelection() (int, int, types.SelectionDirection) {
	return f.Start, f.End, f.Dir
}

func (f *Fake) SetSelection(start, end int, dir types.SelectionDirection) {
	n := len([]rune(f.Value))
	c := types.NewCursorPosition(start, end, dir).Clamp(n)
	f.Start, f.End, f.Dir = c.Start, c.End, dir
	f.SetCount++
}

func (f *Fake) Focus() { f.FocusCount++ }

func (f *Fake) GetValue() string { return f.Value }
