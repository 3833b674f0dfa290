// internal/app/editor_api.go
package app

import (
	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/core/text"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
)

// Ensure appEditorAPI implements the plugin.EditorAPI interface.
var _ plugin.EditorAPI = (*appEditorAPI)(nil)

var _ commands.ThemeAPI = (*appEditorAPI)(nil)

// appEditorAPI is the application side of plugin.EditorAPI. Its methods run
// on the UI goroutine except QueueEvent.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Note Access ---

func (api *appEditorAPI) Markdown() string {
	return api.app.notes.Markdown()
}

func (api *appEditorAPI) CurrentNote() (note.Record, bool) {
	return api.app.notes.CurrentNote()
}

// InsertText uses the live surface's selection in Edit mode. In Preview it
// applies at the last captured cursor, or the end of the note.
func (api *appEditorAPI) InsertText(s string, policy text.InsertType) {
	if _, live := api.app.ref.Get(); live {
		api.app.insert(s, policy)
		return
	}
	buf := api.app.editor.Text()
	n := text.RuneLen(buf)
	sel := types.Collapsed(n)
	if last, ok := api.app.controller.LastCursor(); ok {
		sel = last.Clamp(n)
	}
	logger.DebugTagf("plugin", "InsertText without surface at [%d,%d)", sel.Start, sel.End)
	api.app.onBufferChanged(text.Apply(buf, sel, s, policy))
}

// --- Event Bus Interaction ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

// QueueEvent queues for the UI loop and wakes it so the event is delivered
// without waiting for the next key.
func (api *appEditorAPI) QueueEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Queue(eventType, data)
	api.app.wake()
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID {
	return api.app.eventManager.Subscribe(eventType, handler)
}

func (api *appEditorAPI) UnsubscribeEvent(id event.SubscriptionID) {
	api.app.eventManager.Unsubscribe(id)
}

// --- Command Registration ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status Bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.setStatus(format, args...)
}

func (api *appEditorAPI) SetStatusSegment(name, s string) {
	api.app.statusBar.SetSegment(name, s)
}

// --- Theme Access ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

// SetTheme activates a theme by name. Callers dispatch ThemeChanged.
func (api *appEditorAPI) SetTheme(name string) error {
	return api.app.themeManager.SetTheme(name)
}

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.ListThemes()
}

// --- Configuration ---

func (api *appEditorAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	return api.app.cfg.PluginValue(pluginName, key)
}
