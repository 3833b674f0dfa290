// internal/app/app.go
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bethropolis/tidemark/internal/attachment"
	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/core"
	"github.com/bethropolis/tidemark/internal/core/clipboard"
	"github.com/bethropolis/tidemark/internal/editmode"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/highlight"
	"github.com/bethropolis/tidemark/internal/highlighter"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/modehandler"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/propagation"
	"github.com/bethropolis/tidemark/internal/render"
	"github.com/bethropolis/tidemark/internal/state"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/surface"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/gdamore/tcell/v2"
)

// Options configures NewApp. Nil collaborators get their production
// implementations.
type Options struct {
	FilePath string
	Config   *config.Config

	Screen    tcell.Screen
	Store     state.Store
	Saver     attachment.Saver
	Renderer  render.Renderer
	Clipboard *clipboard.Manager
}

// App owns the note, the two views and the UI loop. Everything except the
// paste goroutine, the highlighter and the theme watcher runs on the UI
// goroutine.
type App struct {
	cfg *config.Config

	tuiManager    *tui.TUI
	editor        *core.Editor
	preview       *tui.Preview
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	shortcuts     *input.Shortcuts
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	editorAPI     *appEditorAPI
	themeManager  *theme.Manager
	highlighting  *highlight.Manager

	notes      *note.Manager
	controller *editmode.Controller
	propagator *propagation.Propagator
	ref        *surface.Ref
	store      state.Store

	renderer render.Renderer
	saver    attachment.Saver
	baseDir  string // Directory image links are relative to

	quit chan struct{}

	modified     bool
	zen          bool
	previewDirty bool
	previewWidth int
}

// NewApp creates and wires a new application instance.
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	themesDir := cfg.Theme.Path
	if themesDir == "" {
		themesDir = theme.DefaultThemesDir()
	}
	themeManager := theme.NewManager(themesDir)
	if cfg.Theme.Name != "" {
		if err := themeManager.SetTheme(cfg.Theme.Name); err != nil {
			logger.Warnf("App: %v, keeping '%s'", err, themeManager.Current().Name)
		}
	}

	var (
		tuiManager *tui.TUI
		err        error
	)
	if opts.Screen != nil {
		tuiManager, err = tui.NewWithScreen(opts.Screen, themeManager.Current())
	} else {
		tuiManager, err = tui.New(themeManager.Current())
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	a := &App{
		cfg:           cfg,
		tuiManager:    tuiManager,
		preview:       &tui.Preview{},
		statusBar:     statusbar.New(statusbar.ConfigFromTheme(themeManager.Current())),
		eventManager:  event.NewManager(),
		shortcuts:     input.NewShortcuts(),
		pluginManager: plugin.NewManager(),
		themeManager:  themeManager,
		notes:         note.NewManager(),
		ref:           surface.NewRef(nil),
		quit:          make(chan struct{}),
		previewDirty:  true,
	}

	a.store = opts.Store
	if a.store == nil {
		a.store = openStore(cfg.State.Path)
	}

	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.NewManager(cfg.Editor.SystemClipboard)
	}

	a.editor = core.NewEditor(buffer.NewSliceBuffer())
	a.editor.TabWidth = cfg.Editor.TabWidth
	a.editor.ScrollOff = cfg.Editor.ScrollOff
	a.editor.SetClipboard(clip)
	a.editor.SetEventManager(a.eventManager)

	a.controller = editmode.New(editmode.Options{
		Store:    a.store,
		Events:   a.eventManager,
		Buffer:   a.editor.Text,
		OnChange: a.onBufferChanged,
		Surface:  a.ref,
	})
	a.propagator = propagation.New(a.notes, a.controller, a.ref)
	a.editor.SetOnChange(a.onBufferChanged)

	a.renderer = opts.Renderer
	if a.renderer == nil {
		g, err := render.NewGlamour(cfg.Preview.Style, cfg.Preview.WordWrap)
		if err != nil {
			tuiManager.Close()
			return nil, err
		}
		a.renderer = g
	}

	hl, err := highlighter.NewHighlighter()
	if err != nil {
		logger.Warnf("App: syntax highlighting disabled: %v", err)
		hl = nil
	}
	a.highlighting = highlight.NewManager(a.editor, hl, a.wake, config.HighlightDebounce)

	rec, err := loadNote(opts.FilePath)
	if err != nil {
		tuiManager.Close()
		return nil, err
	}
	a.baseDir = noteBaseDir(opts.FilePath)
	a.saver = opts.Saver
	if a.saver == nil {
		dir := cfg.Attachments.Dir
		if dir == "" {
			dir = filepath.Join(a.baseDir, config.AttachmentsDirName)
		}
		a.saver = attachment.NewClipboardSaver(dir, clip.Paste)
	}

	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         a.editor,
		Preview:        a.preview,
		InputProcessor: input.NewInputProcessor(),
		Shortcuts:      a.shortcuts,
		EventManager:   a.eventManager,
		StatusBar:      a.statusBar,
		QuitSignal:     a.quit,
		IsEdit:         a.controller.IsEdit,
		PreviewHeight:  a.viewHeight,
		Paste:          a.paste,
	})

	a.editorAPI = newEditorAPI(a)

	a.notes.OnChange(a.onNoteChanged)
	a.subscribeEvents()
	a.controller.Attach()
	a.registerShortcuts()
	commands.RegisterAppCommands(a.editorAPI, commands.Deps{
		Themes: a.editorAPI,
		Notes:  a.notes,
		Quit:   a.modeHandler.Quit,
	})

	a.editor.LoadText(rec.Markdown)
	a.notes.UpdateCurrentNote(rec)
	a.modified = false
	a.highlighting.HighlightNow(rec.Markdown)

	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("App: %v", err)
	}
	a.pluginManager.InitializePlugins(a.editorAPI)

	return a, nil
}

// loadNote reads path into a note record. A missing file gives an empty
// note named after it.
func loadNote(path string) (note.Record, error) {
	if path == "" {
		return note.DefaultNote(), nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		logger.Infof("App: '%s' does not exist yet, starting empty", path)
		rec := note.FromFile(path, "", time.Now())
		rec.FileDescription.FileExists = false
		return rec, nil
	}
	if err != nil {
		return note.Record{}, fmt.Errorf("reading note '%s': %w", path, err)
	}
	modTime := time.Now()
	if info, statErr := os.Stat(path); statErr == nil {
		modTime = info.ModTime()
	}
	logger.Infof("App: loaded '%s' (%d bytes)", path, len(data))
	return note.FromFile(path, string(data), modTime), nil
}

func noteBaseDir(path string) string {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			return filepath.Dir(abs)
		}
		return filepath.Dir(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// openStore opens the preference file, falling back to memory so a broken
// file never stops the editor.
func openStore(path string) state.Store {
	if path == "" {
		p, err := state.DefaultPath()
		if err != nil {
			logger.Warnf("App: no state path (%v), preferences will not persist", err)
			return state.NewMemory()
		}
		path = p
	}
	f, err := state.Open(path)
	if err != nil {
		logger.Warnf("App: %v, preferences will not persist", err)
		return state.NewMemory()
	}
	return f
}

// registerShortcuts binds the configured chords to their bus triggers.
func (a *App) registerShortcuts() {
	bindings := []struct {
		chord   string
		trigger event.Type
	}{
		{a.cfg.Shortcuts.ToggleEditMode, event.TypeEditorToggleEditModeTrigger},
		{a.cfg.Shortcuts.InsertCheckbox, event.TypeEditorMakeRowIntoCheckboxTrigger},
		{a.cfg.Shortcuts.DebugDump, event.TypeEditorDebugConsoleTrigger},
		{a.cfg.Shortcuts.ZenMode, event.TypeWindowZenModeShortcutTrigger},
	}
	for _, b := range bindings {
		if b.chord == "" {
			continue
		}
		chord, err := input.ParseChord(b.chord)
		if err != nil {
			logger.Warnf("App: shortcut for %v: %v", b.trigger, err)
			continue
		}
		trigger := b.trigger
		if err := a.shortcuts.Register(chord, func() {
			a.eventManager.Dispatch(trigger, nil)
		}); err != nil {
			logger.Warnf("App: shortcut for %v: %v", trigger, err)
		}
	}
}

// Run draws the first frame and processes terminal events until quit.
func (a *App) Run() error {
	defer a.shutdown()

	stopWatch := a.startThemeWatch()
	defer stopWatch()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	if a.cfg.Shortcuts.ToggleEditMode != "" {
		a.setStatus("%s toggles edit mode | :q quits", a.cfg.Shortcuts.ToggleEditMode)
	}
	a.draw()

	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		redraw := a.handleEvent(ev)
		if a.quitting() {
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			logger.Infof("Exiting application.")
			return nil
		}
		if redraw {
			a.draw()
		}
	}
}

// handleEvent processes one terminal event and reports whether to redraw.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		return true
	case *tcell.EventKey:
		a.modeHandler.HandleKeyEvent(ev)
		return true
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok && fn != nil {
			fn()
		}
		return true
	}
	return false
}

// post runs fn on the UI goroutine. Safe from any goroutine.
func (a *App) post(fn func()) {
	if err := a.tuiManager.PostEvent(tcell.NewEventInterrupt(fn)); err != nil {
		logger.Warnf("App: dropping posted work: %v", err)
	}
}

// wake asks the UI loop for a redraw.
func (a *App) wake() {
	a.post(nil)
}

func (a *App) quitting() bool {
	select {
	case <-a.quit:
		return true
	default:
		return false
	}
}

func (a *App) shutdown() {
	a.pluginManager.ShutdownPlugins()
	a.highlighting.Shutdown()
	a.controller.Close()
	if a.modified {
		logger.Warnf("Exited with unsaved changes.")
	}
	a.tuiManager.Close()
}

// onBufferChanged is the single onChange for typed edits and structured
// inserts alike.
func (a *App) onBufferChanged(markdown string) {
	a.propagator.OnBufferChanged(markdown)
}

// onNoteChanged adopts a replaced note into the editor. Text the editor
// produced itself is already there, so SyncText is a no-op for it.
func (a *App) onNoteChanged(rec note.Record) {
	a.editor.SyncText(rec.Markdown)
	a.previewDirty = true
}
