package app

import (
	"context"
	"strings"
	"time"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/render"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/bethropolis/tidemark/internal/types"
)

// maxSettlePasses bounds the render/sync loop in draw.
const maxSettlePasses = 3

type frameState struct {
	text   string
	cursor types.Position
	edit   bool
}

func (a *App) frame() frameState {
	return frameState{text: a.editor.Text(), cursor: a.editor.GetCursor(), edit: a.controller.IsEdit()}
}

// draw renders a frame, then delivers queued events and lets the edit-mode
// controller restore focus or apply pending inserts. Anything those change
// is drawn in a follow-up pass.
func (a *App) draw() {
	for pass := 0; pass < maxSettlePasses; pass++ {
		before := a.frame()
		a.render()

		delivered := a.eventManager.DrainQueue()
		a.controller.Sync(a.ref)

		if delivered == 0 && a.frame() == before {
			return
		}
		logger.DebugTagf("draw", "Frame changed after sync, redrawing (pass %d)", pass+1)
	}
}

// viewHeight is the number of rows above the status bar.
func (a *App) viewHeight() int {
	_, height := a.tuiManager.Size()
	if a.zen {
		return height
	}
	h := height - config.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// render draws the active view and the status bar. The surface ref points
// at the editor only while the editing view is on screen.
func (a *App) render() {
	width, height := a.tuiManager.Size()
	viewHeight := a.viewHeight()
	th := a.themeManager.Current()
	edit := a.controller.IsEdit()

	if edit {
		a.ref.Set(a.editor)
		a.editor.SetViewSize(width-tui.GutterWidth(a.editor.GetBuffer().LineCount(), width), viewHeight)
	} else {
		a.ref.Clear()
		a.editor.Blur()
		a.refreshPreview(width)
	}
	a.updateStatusBarContent()

	logger.DebugTagf("draw", "render: screen %dx%d, view height %d, edit=%v", width, height, viewHeight, edit)

	a.tuiManager.Clear()
	if edit {
		tui.DrawEditor(a.tuiManager, a.editor, th, viewHeight)
		tui.DrawCursor(a.tuiManager, a.editor, viewHeight)
	} else {
		tui.DrawPreview(a.tuiManager, a.preview, th, viewHeight)
	}
	if !a.zen {
		a.statusBar.Draw(a.tuiManager.GetScreen(), width, height)
	}
	a.tuiManager.Show()
}

type widthSetter interface {
	SetWidth(width int) error
}

// refreshPreview re-renders the note when it or the wrap width changed.
// A renderer failure shows the raw markdown instead.
func (a *App) refreshPreview(width int) {
	wrap := a.cfg.Preview.WordWrap
	if wrap <= 0 || wrap > width {
		wrap = width
	}
	if !a.previewDirty && wrap == a.previewWidth {
		return
	}
	if ws, ok := a.renderer.(widthSetter); ok {
		if err := ws.SetWidth(wrap); err != nil {
			logger.Warnf("App: preview width %d: %v", wrap, err)
		}
	}

	markdown := a.notes.Markdown()
	lines, err := render.Lines(a.renderer, markdown)
	if err != nil {
		logger.Warnf("App: preview render failed: %v", err)
		lines = strings.Split(markdown, "\n")
	}
	a.preview.SetLines(lines)
	a.preview.Scroll(0, a.viewHeight())
	a.previewDirty = false
	a.previewWidth = wrap
}

// updateStatusBarContent pushes current note and editor state to the status bar.
func (a *App) updateStatusBarContent() {
	rec, _ := a.notes.CurrentNote()
	a.statusBar.SetNoteInfo(note.TitleOf(rec.Markdown, rec.FileDescription.FileNameWithoutExtension), a.modified)
	a.statusBar.SetEditorMode(a.controller.Mode().String())
	a.statusBar.SetCursorInfo(a.editor.GetCursor(), a.controller.IsEdit())
}

// setStatus shows a temporary message and schedules the redraw that clears
// it.
func (a *App) setStatus(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	time.AfterFunc(config.MessageTimeout+50*time.Millisecond, a.wake)
}

// startThemeWatch reloads theme files while the app runs, if enabled. The
// returned func stops the watcher.
func (a *App) startThemeWatch() func() {
	if !a.cfg.Theme.Watch {
		return func() {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		err := a.themeManager.Watch(ctx, func(th *theme.Theme) {
			a.post(func() {
				if a.themeManager.Current() == th {
					a.eventManager.Dispatch(event.TypeThemeChanged, event.ThemeChangedData{Name: th.Name})
				}
				a.setStatus("Theme '%s' reloaded", th.Name)
			})
		})
		if err != nil {
			logger.Warnf("App: theme watch stopped: %v", err)
		}
	}()
	return cancel
}
