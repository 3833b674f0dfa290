package config

import "time"

// Base application details
const AppName = "tidemark"
const ThemesDirName = "themes"
const AttachmentsDirName = "attachments"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "tidemark.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3
const SystemClipboard = true

// Preview
const DefaultPreviewStyle = "dark"
const DefaultWordWrap = 80

// Default shortcut chords
const (
	DefaultToggleEditModeChord = "ctrl+e"
	DefaultInsertCheckboxChord = "ctrl+t"
	DefaultDebugDumpChord      = "ctrl+g"
	DefaultZenModeChord        = "ctrl+w"
)

// Async image paste limit
const DefaultPasteTimeout = 10 * time.Second

// Highlighting waits this long after the last edit before reparsing.
const HighlightDebounce = 50 * time.Millisecond
