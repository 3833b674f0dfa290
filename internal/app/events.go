package app

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/statusbar"
)

// subscribeEvents wires the app's own reactions to bus events.
func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeBufferModified, a.handleBufferModified)
	a.eventManager.Subscribe(event.TypeModeChanged, a.handleModeChanged)
	a.eventManager.Subscribe(event.TypeEditorDebugConsoleTrigger, a.handleDebugDump)
	a.eventManager.Subscribe(event.TypeNoteManagementCreateNewNoteTrigger, a.handleCreateNewNote)
	a.eventManager.Subscribe(event.TypeWindowZenModeShortcutTrigger, a.handleZenMode)
	a.eventManager.Subscribe(event.TypeThemeChanged, a.handleThemeChanged)
	a.eventManager.Subscribe(event.TypeStatusMessage, a.handleStatusMessage)
}

// handleBufferModified marks the note dirty and schedules a reparse.
func (a *App) handleBufferModified(e event.Event) bool {
	a.modified = true
	a.previewDirty = true
	if data, ok := e.Data.(event.BufferModifiedData); ok {
		a.highlighting.Schedule(data.Markdown)
	} else {
		logger.Warnf("App: BufferModified with unexpected data type: %T", e.Data)
		a.highlighting.Schedule(a.editor.Text())
	}
	return false
}

func (a *App) handleModeChanged(e event.Event) bool {
	if data, ok := e.Data.(event.ModeChangedData); ok && !data.Edit {
		a.previewDirty = true
	}
	return false
}

// handleDebugDump writes the edit-mode state to the log.
func (a *App) handleDebugDump(event.Event) bool {
	rec, hasNote := a.notes.CurrentNote()
	last, hasLast := a.controller.LastCursor()
	logger.InfoTagf("debug", "mode=%s note=%v name=%q bytes=%d tags=%v modified=%v",
		a.controller.Mode(), hasNote, rec.FileDescription.FileNameWithoutExtension, len(rec.Markdown),
		rec.FileDescription.Tags, a.modified)
	logger.InfoTagf("debug", "cursor=%+v lastCursor=%+v (captured=%v) surface=%v",
		a.editor.GetCursor(), last, hasLast, a.hasSurface())
	logger.InfoTagf("debug", "plugins=%v commands=%v", a.pluginManager.Active(), a.modeHandler.Commands())
	a.setStatus("State written to log")
	return true
}

func (a *App) hasSurface() bool {
	_, ok := a.ref.Get()
	return ok
}

// handleCreateNewNote replaces the current note with an empty one. The
// editor is reset first so the replacement is not recorded as an edit.
func (a *App) handleCreateNewNote(event.Event) bool {
	a.editor.LoadText("")
	a.notes.UpdateCurrentNote(note.DefaultNote())
	a.modified = false
	a.previewDirty = true
	a.highlighting.HighlightNow("")
	a.setStatus("New note")
	return true
}

func (a *App) handleZenMode(event.Event) bool {
	a.zen = !a.zen
	logger.Debugf("App: zen mode %v", a.zen)
	return true
}

// handleThemeChanged restyles the screen and status bar from the active
// theme.
func (a *App) handleThemeChanged(event.Event) bool {
	th := a.themeManager.Current()
	a.tuiManager.ApplyTheme(th)
	a.statusBar.SetConfig(statusbar.ConfigFromTheme(th))
	logger.Infof("App: theme is now '%s'", th.Name)
	return false
}

func (a *App) handleStatusMessage(e event.Event) bool {
	if data, ok := e.Data.(event.StatusMessageData); ok && strings.TrimSpace(data.Text) != "" {
		a.setStatus("%s", data.Text)
	}
	return true
}
