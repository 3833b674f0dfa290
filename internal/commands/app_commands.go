package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/note"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// Deps are the application pieces the built-in commands act on.
type Deps struct {
	Themes ThemeAPI
	Notes  NoteAPI
	Quit   func()
}

// RegisterAppCommands registers the built-in ':' commands.
func RegisterAppCommands(api plugin.EditorAPI, deps Deps) {
	cmds := map[string]plugin.CommandFunc{
		"q": func([]string) error {
			if deps.Quit == nil {
				return fmt.Errorf("quit unavailable")
			}
			deps.Quit()
			return nil
		},
		"new": func([]string) error {
			api.DispatchEvent(event.TypeNoteManagementCreateNewNoteTrigger, nil)
			return nil
		},
		"zen": func([]string) error {
			api.DispatchEvent(event.TypeWindowZenModeShortcutTrigger, nil)
			return nil
		},
		"tags": tagsCommand(api, deps.Notes),
	}
	if deps.Themes != nil {
		RegisterThemeCommands(api, deps.Themes)
	}

	for name, fn := range cmds {
		if err := api.RegisterCommand(name, fn); err != nil {
			logger.Warnf("Failed to register ':%s' command: %v", name, err)
		}
	}
}

// tagsCommand shows the note's tags, or replaces them with the arguments.
// ":tags -" clears them.
func tagsCommand(api plugin.EditorAPI, notes NoteAPI) plugin.CommandFunc {
	return func(args []string) error {
		if notes == nil {
			return fmt.Errorf("no note store")
		}
		rec, ok := notes.CurrentNote()
		if !ok {
			rec = note.DefaultNote()
		}
		if len(args) == 0 {
			if len(rec.FileDescription.Tags) == 0 {
				api.SetStatusMessage("No tags")
			} else {
				api.SetStatusMessage("Tags: %s", strings.Join(rec.FileDescription.Tags, ", "))
			}
			return nil
		}

		var tags []string
		if !(len(args) == 1 && args[0] == "-") {
			seen := make(map[string]bool, len(args))
			for _, a := range args {
				tag := strings.TrimPrefix(a, "#")
				if tag == "" || seen[tag] {
					continue
				}
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
		rec.FileDescription.Tags = tags
		notes.UpdateCurrentNote(rec)
		if len(tags) == 0 {
			api.SetStatusMessage("Tags cleared")
		} else {
			api.SetStatusMessage("Tags: %s", strings.Join(tags, ", "))
		}
		return nil
	}
}

// RegisterThemeCommands registers :theme and :themes.
func RegisterThemeCommands(api plugin.EditorAPI, themeAPI ThemeAPI) {
	themeCmdFunc := func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", themeAPI.GetTheme().Name)
			return nil
		}

		themeName := strings.Join(args, " ") // Theme names may contain spaces
		if err := themeAPI.SetTheme(themeName); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", themeName, strings.Join(themeAPI.ListThemes(), ", "))
		}
		api.DispatchEvent(event.TypeThemeChanged, event.ThemeChangedData{Name: themeAPI.GetTheme().Name})
		api.SetStatusMessage("Theme set to: %s", themeAPI.GetTheme().Name)
		return nil
	}

	themeListCmdFunc := func([]string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(themeAPI.ListThemes(), ", "))
		return nil
	}

	if err := api.RegisterCommand("theme", themeCmdFunc); err != nil {
		logger.Warnf("Failed to register ':theme' command: %v", err)
	}
	if err := api.RegisterCommand("themes", themeListCmdFunc); err != nil {
		logger.Warnf("Failed to register ':themes' command: %v", err)
	}
}
