// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/spf13/pflag"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger      logger.Config                     `toml:"logger"`
	Editor      EditorConfig                      `toml:"editor"`
	Preview     PreviewConfig                     `toml:"preview"`
	Shortcuts   ShortcutsConfig                   `toml:"shortcuts"`
	Attachments AttachmentsConfig                 `toml:"attachments"`
	State       StateConfig                       `toml:"state"`
	Theme       ThemeConfig                       `toml:"theme"`
	Plugins     map[string]map[string]interface{} `toml:"plugins"`
}

// EditorConfig holds settings for the raw markdown editor.
type EditorConfig struct {
	TabWidth        int  `toml:"tab_width"`
	ScrollOff       int  `toml:"scroll_off"`
	SystemClipboard bool `toml:"system_clipboard"`
}

// PreviewConfig controls markdown rendering.
type PreviewConfig struct {
	Style    string `toml:"style"`     // glamour standard style: dark, light, notty, ...
	WordWrap int    `toml:"word_wrap"` // 0 wraps at the screen width
}

// ShortcutsConfig holds chord strings such as "ctrl+e".
type ShortcutsConfig struct {
	ToggleEditMode string `toml:"toggle_edit_mode"`
	InsertCheckbox string `toml:"insert_checkbox"`
	DebugDump      string `toml:"debug_dump"`
	ZenMode        string `toml:"zen_mode"`
}

// AttachmentsConfig controls where pasted images go.
type AttachmentsConfig struct {
	Dir          string        `toml:"dir"`
	PasteTimeout time.Duration `toml:"paste_timeout"`
}

// StateConfig locates the UI preference file.
type StateConfig struct {
	Path string `toml:"path"`
}

// ThemeConfig selects and loads themes.
type ThemeConfig struct {
	Name  string `toml:"name"`
	Path  string `toml:"path"` // Directory of *.toml themes
	Watch bool   `toml:"watch"`
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
		},
		Preview: PreviewConfig{
			Style:    DefaultPreviewStyle,
			WordWrap: DefaultWordWrap,
		},
		Shortcuts: ShortcutsConfig{
			ToggleEditMode: DefaultToggleEditModeChord,
			InsertCheckbox: DefaultInsertCheckboxChord,
			DebugDump:      DefaultDebugDumpChord,
			ZenMode:        DefaultZenModeChord,
		},
		Attachments: AttachmentsConfig{
			PasteTimeout: DefaultPasteTimeout,
		},
		Theme: ThemeConfig{
			Name: "Tidemark Dark",
		},
		Plugins: make(map[string]map[string]interface{}),
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/tidemark/config.toml, or "".
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath on top of cfg. A missing file is not an
// error. Unknown keys are returned so the caller can log them once the
// logger is up.
func loadFromFile(filePath string, cfg *Config) ([]string, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var unknown []string
	for _, key := range metadata.Undecoded() {
		// Plugin tables are free-form.
		if len(key) > 0 && key[0] == "plugins" {
			continue
		}
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// Validate resets invalid values to defaults and reports what it changed.
func (c *Config) Validate() []string {
	defaults := NewDefaultConfig()
	var fixed []string

	if c.Editor.TabWidth <= 0 {
		fixed = append(fixed, fmt.Sprintf("editor.tab_width %d -> %d", c.Editor.TabWidth, defaults.Editor.TabWidth))
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // 0 is allowed
		fixed = append(fixed, fmt.Sprintf("editor.scroll_off %d -> %d", c.Editor.ScrollOff, defaults.Editor.ScrollOff))
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Preview.Style == "" {
		c.Preview.Style = defaults.Preview.Style
	}
	if c.Preview.WordWrap < 0 {
		fixed = append(fixed, fmt.Sprintf("preview.word_wrap %d -> 0", c.Preview.WordWrap))
		c.Preview.WordWrap = 0
	}
	if c.Attachments.PasteTimeout <= 0 {
		fixed = append(fixed, fmt.Sprintf("attachments.paste_timeout %v -> %v", c.Attachments.PasteTimeout, defaults.Attachments.PasteTimeout))
		c.Attachments.PasteTimeout = defaults.Attachments.PasteTimeout
	}

	// An unparsable chord is disabled rather than guessed at.
	for _, sc := range []struct {
		name string
		val  *string
	}{
		{"toggle_edit_mode", &c.Shortcuts.ToggleEditMode},
		{"insert_checkbox", &c.Shortcuts.InsertCheckbox},
		{"debug_dump", &c.Shortcuts.DebugDump},
		{"zen_mode", &c.Shortcuts.ZenMode},
	} {
		if *sc.val == "" {
			continue
		}
		if _, err := input.ParseChord(*sc.val); err != nil {
			fixed = append(fixed, fmt.Sprintf("shortcuts.%s %q disabled: %v", sc.name, *sc.val, err))
			*sc.val = ""
		}
	}

	if c.Plugins == nil {
		c.Plugins = make(map[string]map[string]interface{})
	}
	return fixed
}

// PluginValue returns plugins.<name>.<key> from the config file.
func (c *Config) PluginValue(pluginName, key string) (interface{}, bool) {
	section, ok := c.Plugins[strings.ToLower(pluginName)]
	if !ok {
		return nil, false
	}
	v, ok := section[key]
	return v, ok
}

// LoadResult carries messages gathered before logging was configured.
type LoadResult struct {
	Path    string
	Unknown []string
	Fixed   []string
}

// Log writes the gathered messages. Call after logger.Init.
func (r LoadResult) Log() {
	if r.Path != "" {
		logger.Infof("Configuration loaded from %s", r.Path)
	}
	if len(r.Unknown) > 0 {
		logger.Warnf("Config file '%s': Unrecognized keys: %v", r.Path, r.Unknown)
	}
	for _, f := range r.Fixed {
		logger.Warnf("Config: invalid value reset: %s", f)
	}
}

// LoadConfig merges defaults, the TOML file and changed flags, in that
// order, then validates. configFilePath "" means DefaultConfigPath. fs may
// be nil.
func LoadConfig(configFilePath string, fs *pflag.FlagSet) (*Config, LoadResult, error) {
	cfg := NewDefaultConfig()
	var res LoadResult

	path := configFilePath
	if path == "" {
		path = DefaultConfigPath()
	}
	if path != "" {
		unknown, err := loadFromFile(path, cfg)
		if err != nil {
			return nil, res, err
		}
		res.Path = path
		res.Unknown = unknown
	}

	if fs != nil {
		if err := ApplyOverrides(cfg, fs); err != nil {
			return nil, res, err
		}
	}
	res.Fixed = cfg.Validate()
	return cfg, res, nil
}
