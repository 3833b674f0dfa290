package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds all settings for the logger.
type Config struct {
	// LogLevel is the minimum level to log ("debug", "info", "warn", "error").
	LogLevel string `toml:"log_level"`

	// LogFilePath is the output log file. Empty means the default path, "-" means stderr.
	LogFilePath string `toml:"log_file"`

	// EnabledTags only logs messages carrying one of these tags (if non-empty).
	EnabledTags []string `toml:"enabled_tags"`
	// DisabledTags drops messages carrying these tags. Overrides EnabledTags.
	DisabledTags []string `toml:"disabled_tags"`

	// EnabledPackages only logs messages from these packages (immediate directory name, e.g. "editmode").
	EnabledPackages []string `toml:"enabled_packages"`
	// DisabledPackages drops messages from these packages. Overrides EnabledPackages.
	DisabledPackages []string `toml:"disabled_packages"`

	// EnabledFiles only logs messages from these base filenames (e.g. "controller.go").
	EnabledFiles []string `toml:"enabled_files"`
	// DisabledFiles drops messages from these filenames. Overrides EnabledFiles.
	DisabledFiles []string `toml:"disabled_files"`

	// DebugFilter prints filter decisions to stderr. Only useful when the log goes to a file.
	DebugFilter bool `toml:"debug_filter"`

	level               slog.Level
	enabledTagsSet      map[string]struct{}
	disabledTagsSet     map[string]struct{}
	enabledPackagesSet  map[string]struct{}
	disabledPackagesSet map[string]struct{}
	enabledFilesSet     map[string]struct{}
	disabledFilesSet    map[string]struct{}
}

// NewConfig creates a new Config with default values
func NewConfig() Config {
	return Config{
		LogLevel:    "info",
		LogFilePath: "",
	}
}

// ParseLevel maps a level name to a slog level. Unknown names map to info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// process parses string levels/lists into lookup sets.
func (c *Config) process() {
	c.level = ParseLevel(c.LogLevel)

	c.enabledTagsSet = sliceToSet(c.EnabledTags)
	c.disabledTagsSet = sliceToSet(c.DisabledTags)
	c.enabledPackagesSet = sliceToSet(c.EnabledPackages)
	c.disabledPackagesSet = sliceToSet(c.DisabledPackages)
	c.enabledFilesSet = sliceToSet(c.EnabledFiles)
	c.disabledFilesSet = sliceToSet(c.DisabledFiles)

	if c.DebugFilter {
		fmt.Fprintf(os.Stderr, "[CONFIG PROCESS] disabledPackages=%v enabledPackages=%v tags(+%v -%v)\n",
			c.disabledPackagesSet, c.enabledPackagesSet, c.enabledTagsSet, c.disabledTagsSet)
	}
}

func sliceToSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item != "" {
			set[strings.ToLower(item)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return nil // nil map simplifies the checks in the handler
	}
	return set
}
