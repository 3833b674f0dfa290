package utils

import (
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// RuneIndexToByteOffset converts a rune index to a byte offset in a byte slice.
// Returns -1 if runeIndex is out of bounds.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	if currentRune == runeIndex {
		return len(line)
	}
	return -1
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in a byte slice.
// An offset inside a multi-byte rune counts up to that rune.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset > len(line) {
		byteOffset = len(line)
	}
	runeIndex := 0
	currentOffset := 0
	for currentOffset < byteOffset {
		_, size := utf8.DecodeRune(line[currentOffset:])
		if currentOffset+size > byteOffset {
			break
		}
		currentOffset += size
		runeIndex++
	}
	return runeIndex
}

// VisualColumn returns the screen width of the first runeIndex runes of
// line, counting grapheme clusters and wide characters. Tabs advance to
// the next multiple of tabWidth.
func VisualColumn(line []byte, runeIndex, tabWidth int) int {
	if runeIndex <= 0 {
		return 0
	}
	width := 0
	seen := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() && seen < runeIndex {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' && tabWidth > 0 {
			width += tabWidth - width%tabWidth // Advance to the next tab stop
		} else {
			width += gr.Width()
		}
		seen += len(runes)
	}
	return width
}

// Debouncer provides a way to debounce function calls.
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce calls fn after duration, canceling any previous pending call.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Stop cancels a pending call, if any.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
