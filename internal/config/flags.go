// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flag names shared by DefineFlags and ApplyOverrides.
const (
	FlagConfig          = "config"
	FlagLogLevel        = "loglevel"
	FlagLogFile         = "logfile"
	FlagLogTags         = "log-tags"
	FlagLogDisableTags  = "log-disable-tags"
	FlagLogPackages     = "log-packages"
	FlagLogDisablePkgs  = "log-disable-packages"
	FlagLogFiles        = "log-files"
	FlagLogDisableFiles = "log-disable-files"
	FlagDebugLog        = "debug-log"
	FlagTabWidth        = "tabwidth"
	FlagScrollOff       = "scrolloff"
	FlagSystemClipboard = "system-clipboard"
	FlagPreviewStyle    = "preview-style"
	FlagTheme           = "theme"
	FlagAttachmentsDir  = "attachments-dir"
	FlagStatePath       = "state"
)

// DefineFlags registers the command-line flags on fs.
func DefineFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	fs.String(FlagLogLevel, "", "Log level (debug, info, warn, error)")
	fs.String(FlagLogFile, "", "Path to write log file (use '-' for stderr)")
	fs.StringSlice(FlagLogTags, nil, "Tags to enable in the log")
	fs.StringSlice(FlagLogDisableTags, nil, "Tags to drop from the log")
	fs.StringSlice(FlagLogPackages, nil, "Packages to enable in the log")
	fs.StringSlice(FlagLogDisablePkgs, nil, "Packages to drop from the log")
	fs.StringSlice(FlagLogFiles, nil, "Source files to enable in the log")
	fs.StringSlice(FlagLogDisableFiles, nil, "Source files to drop from the log")
	fs.Bool(FlagDebugLog, false, "Print log filter decisions to stderr")
	fs.Int(FlagTabWidth, DefaultTabWidth, "Number of spaces per tab")
	fs.Int(FlagScrollOff, DefaultScrollOff, "Lines of context above/below cursor")
	fs.Bool(FlagSystemClipboard, SystemClipboard, "Use the system clipboard instead of an internal register")
	fs.String(FlagPreviewStyle, DefaultPreviewStyle, "Preview style (dark, light, notty, dracula, ...)")
	fs.String(FlagTheme, "", "Editor theme name")
	fs.String(FlagAttachmentsDir, "", "Directory for pasted images")
	fs.String(FlagStatePath, "", "Path of the UI preference file")
}

// ApplyOverrides copies flags the user actually set into cfg.
func ApplyOverrides(cfg *Config, fs *pflag.FlagSet) error {
	var firstErr error
	note := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	str := func(name string, dst *string) {
		if fs.Changed(name) {
			v, err := fs.GetString(name)
			note(err)
			*dst = v
		}
	}
	list := func(name string, dst *[]string) {
		if fs.Changed(name) {
			v, err := fs.GetStringSlice(name)
			note(err)
			*dst = trimList(v)
		}
	}
	integer := func(name string, dst *int) {
		if fs.Changed(name) {
			v, err := fs.GetInt(name)
			note(err)
			*dst = v
		}
	}
	boolean := func(name string, dst *bool) {
		if fs.Changed(name) {
			v, err := fs.GetBool(name)
			note(err)
			*dst = v
		}
	}

	str(FlagLogLevel, &cfg.Logger.LogLevel)
	str(FlagLogFile, &cfg.Logger.LogFilePath)
	list(FlagLogTags, &cfg.Logger.EnabledTags)
	list(FlagLogDisableTags, &cfg.Logger.DisabledTags)
	list(FlagLogPackages, &cfg.Logger.EnabledPackages)
	list(FlagLogDisablePkgs, &cfg.Logger.DisabledPackages)
	list(FlagLogFiles, &cfg.Logger.EnabledFiles)
	list(FlagLogDisableFiles, &cfg.Logger.DisabledFiles)
	boolean(FlagDebugLog, &cfg.Logger.DebugFilter)
	integer(FlagTabWidth, &cfg.Editor.TabWidth)
	integer(FlagScrollOff, &cfg.Editor.ScrollOff)
	boolean(FlagSystemClipboard, &cfg.Editor.SystemClipboard)
	str(FlagPreviewStyle, &cfg.Preview.Style)
	str(FlagTheme, &cfg.Theme.Name)
	str(FlagAttachmentsDir, &cfg.Attachments.Dir)
	str(FlagStatePath, &cfg.State.Path)

	if firstErr != nil {
		return fmt.Errorf("reading flags: %w", firstErr)
	}
	return nil
}

func trimList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
