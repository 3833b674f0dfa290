// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// styleDef is one entry of a theme file's [styles] table.
type styleDef struct {
	Fg        *string `toml:"fg"` // Pointers detect missing values
	Bg        *string `toml:"bg"`
	Bold      *bool   `toml:"bold"`
	Italic    *bool   `toml:"italic"`
	Underline *bool   `toml:"underline"`
	Reverse   *bool   `toml:"reverse"`
}

// themeFile is the layout of a theme TOML file.
type themeFile struct {
	Name   string              `toml:"name"`
	IsDark bool                `toml:"is_dark"`
	Styles map[string]styleDef `toml:"styles"`
}

// LoadThemeFromFile reads and parses a TOML theme. A missing name defaults
// to the file name without extension.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	fallback := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	t, err := ParseTheme(data, fallback)
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	logger.Debugf("Loaded theme '%s' from '%s'", t.Name, filePath)
	return t, nil
}

// ParseTheme decodes theme TOML. Every style inherits unset attributes from
// the theme's "Default" style.
func ParseTheme(data []byte, fallbackName string) (*Theme, error) {
	var tf themeFile
	meta, err := toml.Decode(string(data), &tf)
	if err != nil {
		return nil, fmt.Errorf("parsing TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': unrecognized keys %v", tf.Name, undecoded)
	}
	if tf.Name == "" {
		tf.Name = fallbackName
	}

	t := &Theme{Name: tf.Name, IsDark: tf.IsDark, Styles: make(map[string]tcell.Style)}

	base := tcell.StyleDefault
	if def, ok := tf.Styles["Default"]; ok {
		if base, err = applyStyleDef(def, tcell.StyleDefault); err != nil {
			logger.Warnf("Theme '%s': bad 'Default' style, using tcell default: %v", t.Name, err)
			base = tcell.StyleDefault
		}
	}
	t.Styles["Default"] = base

	for name, def := range tf.Styles {
		if name == "Default" {
			continue
		}
		style, err := applyStyleDef(def, base)
		if err != nil {
			logger.Warnf("Theme '%s': skipping style '%s': %v", t.Name, name, err)
			continue
		}
		t.Styles[name] = style
	}
	return t, nil
}

func applyStyleDef(def styleDef, style tcell.Style) (tcell.Style, error) {
	if def.Fg != nil {
		color, err := parseColorString(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("foreground: %w", err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColorString(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("background: %w", err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	return style, nil
}

// parseColorString converts "#RRGGBB", "reset", "default" or a W3C color
// name ("red", "slategray") into a tcell.Color.
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) != 7 {
			return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
		}
		val, err := strconv.ParseInt(s[1:], 16, 32)
		if err != nil {
			return tcell.ColorDefault, fmt.Errorf("invalid hex value '%s': %w", s, err)
		}
		return tcell.NewHexColor(int32(val)), nil
	case s == "reset":
		return tcell.ColorReset, nil
	case s == "default":
		return tcell.ColorDefault, nil
	}
	if c, ok := tcell.ColorNames[s]; ok {
		return c, nil
	}
	return tcell.ColorDefault, fmt.Errorf("unknown color format or name '%s'", s)
}
