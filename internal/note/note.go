// Package note holds the current note record and notifies listeners when it
// is replaced.
package note

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/logger"
)

// FileDescription is the metadata that travels with a note's markdown.
type FileDescription struct {
	Created                  time.Time
	Modified                 time.Time
	FileExists               bool
	FileNameWithoutExtension string
	Tags                     []string
	Title                    string
}

// Record is one note: its raw markdown plus file metadata.
type Record struct {
	Markdown        string
	FileDescription FileDescription
}

// DefaultNote is the record used when no note is loaded.
func DefaultNote() Record {
	return Record{
		FileDescription: FileDescription{FileExists: true},
	}
}

// FromFile builds a record for markdown read from path.
func FromFile(path, markdown string, modTime time.Time) Record {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return Record{
		Markdown: markdown,
		FileDescription: FileDescription{
			Created:                  modTime,
			Modified:                 modTime,
			FileExists:               true,
			FileNameWithoutExtension: name,
			Title:                    TitleOf(markdown, name),
		},
	}
}

// TitleOf returns the text of the first ATX heading, or fallback.
func TitleOf(markdown, fallback string) string {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			title := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if title != "" {
				return title
			}
		}
	}
	return fallback
}

// Updater accepts a replacement for the current note.
type Updater interface {
	UpdateCurrentNote(Record)
}

// Listener is called after the current note changes.
type Listener func(Record)

// Manager owns the current note in memory.
type Manager struct {
	mu        sync.RWMutex
	current   *Record
	listeners []Listener
}

func NewManager() *Manager {
	return &Manager{}
}

// CurrentNote returns the current note and whether one is loaded.
func (m *Manager) CurrentNote() (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Record{}, false
	}
	return cloneRecord(*m.current), true
}

// Markdown returns the current buffer, or "" with no note loaded.
func (m *Manager) Markdown() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Markdown
}

// UpdateCurrentNote replaces the current note and notifies listeners
// synchronously on the caller's goroutine.
func (m *Manager) UpdateCurrentNote(r Record) {
	r = cloneRecord(r)
	m.mu.Lock()
	m.current = &r
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	logger.DebugTagf("note", "Current note updated (%d bytes)", len(r.Markdown))
	for _, l := range listeners {
		l(cloneRecord(r))
	}
}

// OnChange registers l to run after every update.
func (m *Manager) OnChange(l Listener) {
	m.mu.Lock()
	m.listeners = append(m.listeners, l)
	m.mu.Unlock()
}

func cloneRecord(r Record) Record {
	if r.FileDescription.Tags != nil {
		tags := make([]string, len(r.FileDescription.Tags))
		copy(tags, r.FileDescription.Tags)
		r.FileDescription.Tags = tags
	}
	return r
}
