// Package propagation forwards buffer changes from the editor to the note
// store, stamping the modification time and keeping file metadata.
package propagation

import (
	"time"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/surface"
)

// CursorCapturer snapshots the live cursor before the buffer is replaced.
type CursorCapturer interface {
	CaptureCursor(ref *surface.Ref)
}

// NoteSource exposes the current note and accepts its replacement.
type NoteSource interface {
	CurrentNote() (note.Record, bool)
	note.Updater
}

// Propagator turns a new buffer into a note update.
type Propagator struct {
	notes  NoteSource
	cursor CursorCapturer
	ref    *surface.Ref
	now    func() time.Time
}

// Option configures a Propagator.
type Option func(*Propagator)

// WithClock replaces time.Now for the Modified stamp.
func WithClock(now func() time.Time) Option {
	return func(p *Propagator) { p.now = now }
}

// New returns a Propagator writing to notes. cursor and ref may be nil.
func New(notes NoteSource, cursor CursorCapturer, ref *surface.Ref, opts ...Option) *Propagator {
	p := &Propagator{notes: notes, cursor: cursor, ref: ref, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OnBufferChanged captures the cursor, then replaces the current note with
// one holding newBuffer. The update is synchronous.
func (p *Propagator) OnBufferChanged(newBuffer string) {
	if p.cursor != nil {
		p.cursor.CaptureCursor(p.ref)
	}

	base, ok := p.notes.CurrentNote()
	if !ok {
		base = note.DefaultNote()
	}
	fd := base.FileDescription
	fd.Modified = p.now()

	logger.DebugTagf("propagation", "Buffer changed (%d bytes), updating note %q", len(newBuffer), fd.FileNameWithoutExtension)
	p.notes.UpdateCurrentNote(note.Record{
		Markdown:        newBuffer,
		FileDescription: fd,
	})
}
