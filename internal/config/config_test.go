package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultsWhenFileMissing(t *testing.T) {
	cfg, res, err := LoadConfig(filepath.Join(t.TempDir(), "none.toml"), nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Editor.TabWidth != DefaultTabWidth || cfg.Preview.Style != DefaultPreviewStyle {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Shortcuts.ToggleEditMode != DefaultToggleEditModeChord {
		t.Fatalf("toggle chord=%q", cfg.Shortcuts.ToggleEditMode)
	}
	if len(res.Unknown) != 0 || len(res.Fixed) != 0 {
		t.Fatalf("unexpected messages: %+v", res)
	}
}

func TestFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 2

[preview]
style = "light"

[shortcuts]
toggle_edit_mode = "alt+e"

[attachments]
dir = "/tmp/att"
paste_timeout = "3s"

[plugins.autosave]
enabled = true
interval = "30s"

[mystery]
x = 1
`)
	cfg, res, err := LoadConfig(path, nil)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Editor.TabWidth != 2 {
		t.Fatalf("tab_width=%d, want 2", cfg.Editor.TabWidth)
	}
	if cfg.Editor.ScrollOff != DefaultScrollOff {
		t.Fatalf("unset scroll_off lost its default: %d", cfg.Editor.ScrollOff)
	}
	if cfg.Preview.Style != "light" || cfg.Shortcuts.ToggleEditMode != "alt+e" {
		t.Fatalf("cfg=%+v", cfg)
	}
	if cfg.Shortcuts.InsertCheckbox != DefaultInsertCheckboxChord {
		t.Fatalf("unset chord lost its default: %q", cfg.Shortcuts.InsertCheckbox)
	}
	if cfg.Attachments.PasteTimeout != 3*time.Second {
		t.Fatalf("paste_timeout=%v, want 3s", cfg.Attachments.PasteTimeout)
	}
	if v, ok := cfg.PluginValue("autosave", "enabled"); !ok || v != true {
		t.Fatalf("plugins.autosave.enabled=%v,%v", v, ok)
	}
	found := false
	for _, k := range res.Unknown {
		if k == "mystery.x" {
			found = true
		}
		if k == "plugins.autosave.enabled" {
			t.Fatalf("plugin keys must not be reported as unknown")
		}
	}
	if !found {
		t.Fatalf("unknown=%v, want mystery.x", res.Unknown)
	}
}

func TestBadFileIsAnError(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = ")
	if _, _, err := LoadConfig(path, nil); err == nil {
		t.Fatalf("broken TOML should fail")
	}
}

func TestValidateResetsBadValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Editor.TabWidth = 0
	cfg.Editor.ScrollOff = -2
	cfg.Preview.WordWrap = -1
	cfg.Attachments.PasteTimeout = 0
	cfg.Shortcuts.DebugDump = "ctrl+"
	cfg.Plugins = nil

	fixed := cfg.Validate()
	if cfg.Editor.TabWidth != DefaultTabWidth || cfg.Editor.ScrollOff != DefaultScrollOff {
		t.Fatalf("editor not reset: %+v", cfg.Editor)
	}
	if cfg.Preview.WordWrap != 0 || cfg.Attachments.PasteTimeout != DefaultPasteTimeout {
		t.Fatalf("preview/attachments not reset: %+v %+v", cfg.Preview, cfg.Attachments)
	}
	if cfg.Shortcuts.DebugDump != "" {
		t.Fatalf("bad chord should be disabled, got %q", cfg.Shortcuts.DebugDump)
	}
	if cfg.Plugins == nil {
		t.Fatalf("plugins map should be initialized")
	}
	if len(fixed) != 5 {
		t.Fatalf("fixed=%v, want 5 entries", fixed)
	}
}

func TestFlagsOverrideFileOnlyWhenChanged(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = 2
scroll_off = 7
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	DefineFlags(fs)
	if err := fs.Parse([]string{"--tabwidth=8", "--log-tags", "editor, ,theme", "--system-clipboard=false"}); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := LoadConfig(path, fs)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("tab_width=%d, want flag value 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.ScrollOff != 7 {
		t.Fatalf("scroll_off=%d, unchanged flag must not override the file", cfg.Editor.ScrollOff)
	}
	if cfg.Editor.SystemClipboard {
		t.Fatalf("system clipboard should be off")
	}
	tags := cfg.Logger.EnabledTags
	if len(tags) != 2 || tags[0] != "editor" || tags[1] != "theme" {
		t.Fatalf("tags=%q", tags)
	}
}
