// internal/plugin/plugin.go
package plugin

import (
	"github.com/bethropolis/tidemark/internal/core/text"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/gdamore/tcell/v2"
)

// CommandFunc defines the signature for commands registered by plugins.
// It takes the words typed after the command name.
type CommandFunc func(args []string) error

// EditorAPI is the slice of the application plugins may use.
type EditorAPI interface {
	// --- Note Access ---
	Markdown() string
	CurrentNote() (note.Record, bool)

	// InsertText goes through the insertion engine, so the result flows
	// through change propagation like any other edit. Without a live editing
	// surface it applies at the last known cursor.
	InsertText(s string, policy text.InsertType)

	// --- Event Bus Interaction ---
	DispatchEvent(eventType event.Type, data interface{})
	// QueueEvent is safe from background goroutines.
	QueueEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler) event.SubscriptionID
	UnsubscribeEvent(id event.SubscriptionID)

	// --- Command Registration ---
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// --- Status Bar ---
	SetStatusMessage(format string, args ...interface{})
	// SetStatusSegment shows text in a named right-hand status bar slot.
	// An empty text removes the slot.
	SetStatusSegment(name, text string)

	GetThemeStyle(styleName string) tcell.Style

	// --- Configuration ---
	GetPluginConfigValue(pluginName, key string) (interface{}, bool)
}

// Plugin defines the interface that all plugins must implement.
type Plugin interface {
	// Name returns the unique identifier name of the plugin.
	Name() string

	// Initialize is called once when the plugin is loaded. Used for
	// subscribing to events and registering commands.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the application is closing.
	Shutdown() error
}
