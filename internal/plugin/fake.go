// internal/plugin/fake.go
package plugin

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidemark/internal/core/text"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
)

// FakeAPI is an in-memory EditorAPI for plugin tests.
type FakeAPI struct {
	mu sync.Mutex

	Text     string
	Events   *event.Manager
	Config   map[string]map[string]interface{}
	Commands map[string]CommandFunc
	Segments map[string]string
	Messages []string
	Inserted []string
}

var _ EditorAPI = (*FakeAPI)(nil)

// NewFakeAPI returns a FakeAPI with its own event bus.
func NewFakeAPI(markdown string) *FakeAPI {
	return &FakeAPI{
		Text:     markdown,
		Events:   event.NewManager(),
		Config:   make(map[string]map[string]interface{}),
		Commands: make(map[string]CommandFunc),
		Segments: make(map[string]string),
	}
}

func (f *FakeAPI) Markdown() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Text
}

func (f *FakeAPI) CurrentNote() (note.Record, bool) {
	r := note.DefaultNote()
	r.Markdown = f.Markdown()
	return r, true
}

// InsertText appends at the end of the buffer, as with a cursor parked there.
func (f *FakeAPI) InsertText(s string, policy text.InsertType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := text.RuneLen(f.Text)
	sel := types.Collapsed(n)
	f.Text = text.Apply(f.Text, sel, s, policy)
	f.Inserted = append(f.Inserted, s)
}

func (f *FakeAPI) DispatchEvent(t event.Type, data interface{}) { f.Events.Dispatch(t, data) }
func (f *FakeAPI) QueueEvent(t event.Type, data interface{})    { f.Events.Queue(t, data) }

func (f *FakeAPI) SubscribeEvent(t event.Type, h event.Handler) event.SubscriptionID {
	return f.Events.Subscribe(t, h)
}

func (f *FakeAPI) UnsubscribeEvent(id event.SubscriptionID) { f.Events.Unsubscribe(id) }

func (f *FakeAPI) RegisterCommand(name string, fn CommandFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Commands[name]; ok {
		return fmt.Errorf("command '%s' already registered", name)
	}
	f.Commands[name] = fn
	return nil
}

func (f *FakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Messages = append(f.Messages, fmt.Sprintf(format, args...))
}

func (f *FakeAPI) SetStatusSegment(name, s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s == "" {
		delete(f.Segments, name)
		return
	}
	f.Segments[name] = s
}

// Segment returns the current text of a status slot.
func (f *FakeAPI) Segment(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Segments[name]
}

func (f *FakeAPI) GetThemeStyle(string) tcell.Style { return tcell.StyleDefault }

func (f *FakeAPI) GetPluginConfigValue(pluginName, key string) (interface{}, bool) {
	section, ok := f.Config[pluginName]
	if !ok {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}
