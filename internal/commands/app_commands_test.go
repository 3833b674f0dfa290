package commands

import (
	"fmt"
	"strings"
	"testing"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/theme"
)

type fakeThemes struct {
	current *theme.Theme
}

func (f *fakeThemes) SetTheme(name string) error {
	for _, th := range []*theme.Theme{&theme.TidemarkDark, &theme.TidemarkLight} {
		if strings.EqualFold(th.Name, name) {
			f.current = th
			return nil
		}
	}
	return fmt.Errorf("theme '%s' not found", name)
}

func (f *fakeThemes) GetTheme() *theme.Theme { return f.current }

func (f *fakeThemes) ListThemes() []string {
	return []string{theme.TidemarkDark.Name, theme.TidemarkLight.Name}
}

func setup(t *testing.T) (*plugin.FakeAPI, *note.Manager, *fakeThemes, *int) {
	t.Helper()
	api := plugin.NewFakeAPI("")
	notes := note.NewManager()
	notes.UpdateCurrentNote(note.DefaultNote())
	themes := &fakeThemes{current: &theme.TidemarkDark}
	quits := 0
	RegisterAppCommands(api, Deps{Themes: themes, Notes: notes, Quit: func() { quits++ }})
	return api, notes, themes, &quits
}

func TestRegistersBuiltins(t *testing.T) {
	api, _, _, _ := setup(t)
	for _, name := range []string{"q", "new", "zen", "tags", "theme", "themes"} {
		if _, ok := api.Commands[name]; !ok {
			t.Fatalf("command %q not registered", name)
		}
	}
}

func TestTagsCommand(t *testing.T) {
	api, notes, _, _ := setup(t)

	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"work", "#todo", "work"}, []string{"work", "todo"}},
		{[]string{"-"}, nil},
	}
	for _, tt := range tests {
		if err := api.Commands["tags"](tt.args); err != nil {
			t.Fatalf("tags %v: %v", tt.args, err)
		}
		rec, _ := notes.CurrentNote()
		if strings.Join(rec.FileDescription.Tags, ",") != strings.Join(tt.want, ",") {
			t.Fatalf("tags %v: got=%q, want %q", tt.args, rec.FileDescription.Tags, tt.want)
		}
	}

	if err := api.Commands["tags"](nil); err != nil {
		t.Fatalf("tags: %v", err)
	}
	if last := api.Messages[len(api.Messages)-1]; last != "No tags" {
		t.Fatalf("message=%q, want %q", last, "No tags")
	}
}

func TestTriggersAndQuit(t *testing.T) {
	api, _, _, quits := setup(t)
	var got []event.Type
	for _, typ := range []event.Type{event.TypeNoteManagementCreateNewNoteTrigger, event.TypeWindowZenModeShortcutTrigger} {
		api.Events.Subscribe(typ, func(e event.Event) bool {
			got = append(got, e.Type)
			return false
		})
	}
	_ = api.Commands["new"](nil)
	_ = api.Commands["zen"](nil)
	_ = api.Commands["q"](nil)

	if len(got) != 2 || got[0] != event.TypeNoteManagementCreateNewNoteTrigger || got[1] != event.TypeWindowZenModeShortcutTrigger {
		t.Fatalf("dispatched=%v", got)
	}
	if *quits != 1 {
		t.Fatalf("quits=%d, want 1", *quits)
	}
}

func TestThemeCommand(t *testing.T) {
	api, _, themes, _ := setup(t)
	var changed string
	api.Events.Subscribe(event.TypeThemeChanged, func(e event.Event) bool {
		changed = e.Data.(event.ThemeChangedData).Name
		return false
	})

	if err := api.Commands["theme"]([]string{"tidemark", "light"}); err != nil {
		t.Fatalf("theme: %v", err)
	}
	if themes.current != &theme.TidemarkLight || changed != theme.TidemarkLight.Name {
		t.Fatalf("current=%q changed=%q", themes.current.Name, changed)
	}

	err := api.Commands["theme"]([]string{"nope"})
	if err == nil || !strings.Contains(err.Error(), "Available") {
		t.Fatalf("err=%v, want unknown theme error", err)
	}
}
