package commands

import (
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/theme"
)

// ThemeAPI is what the theme commands need from the application.
type ThemeAPI interface {
	SetTheme(name string) error
	GetTheme() *theme.Theme
	ListThemes() []string
}

// NoteAPI gives the note commands access to the current note.
type NoteAPI interface {
	CurrentNote() (note.Record, bool)
	UpdateCurrentNote(note.Record)
}
