// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back to the part before the first dot,
// then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	// Walk up dotted names: markup.list.checked -> markup.list -> markup.
	for base := name; strings.Contains(base, "."); {
		base = base[:strings.LastIndex(base, ".")]
		if style, ok := t.Styles[base]; ok {
			return style
		}
	}

	if defStyle, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.Debugf("Theme '%s': Style '%s' not found, falling back to 'Default'", t.Name, name)
		}
		return defStyle
	}

	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

var (
	TidemarkDark  Theme
	TidemarkLight Theme
)

func init() {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)

	TidemarkDark = Theme{
		Name:   "Tidemark Dark",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"Selection":         base.Reverse(true),
			"StatusBar":         tcell.StyleDefault.Background(bg).Foreground(fg),
			"StatusBarModified": tcell.StyleDefault.Background(bg).Foreground(yellow),
			"StatusBarMessage":  tcell.StyleDefault.Background(bg).Foreground(fg).Bold(true),
			"StatusBarMode":     tcell.StyleDefault.Background(blue).Foreground(bg).Bold(true),
			"Preview":           base,
			"PreviewBorder":     base.Foreground(muted),

			"markup.heading":        base.Foreground(blue).Bold(true),
			"markup.raw":            base.Foreground(green),
			"markup.quote":          base.Foreground(muted).Italic(true),
			"markup.list":           base.Foreground(orange),
			"markup.list.checked":   base.Foreground(green).Bold(true),
			"markup.list.unchecked": base.Foreground(yellow).Bold(true),
			"markup.link":           base.Foreground(cyan).Underline(true),
			"label":                 base.Foreground(magenta),
			"punctuation.special":   base.Foreground(muted),
		},
	}

	lbg := tcell.NewHexColor(0xe5e9f0)
	lfg := tcell.NewHexColor(0x2e3440)
	lbase := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(lfg)

	TidemarkLight = Theme{
		Name:   "Tidemark Light",
		IsDark: false,
		Styles: map[string]tcell.Style{
			"Default":           lbase,
			"Selection":         lbase.Reverse(true),
			"StatusBar":         tcell.StyleDefault.Background(lbg).Foreground(lfg),
			"StatusBarModified": tcell.StyleDefault.Background(lbg).Foreground(tcell.NewHexColor(0xbf616a)),
			"StatusBarMessage":  tcell.StyleDefault.Background(lbg).Foreground(lfg).Bold(true),
			"StatusBarMode":     tcell.StyleDefault.Background(tcell.NewHexColor(0x5e81ac)).Foreground(lbg).Bold(true),
			"Preview":           lbase,
			"PreviewBorder":     lbase.Foreground(tcell.NewHexColor(0x8a93a5)),

			"markup.heading":        lbase.Foreground(tcell.NewHexColor(0x5e81ac)).Bold(true),
			"markup.raw":            lbase.Foreground(tcell.NewHexColor(0x4c7a3d)),
			"markup.quote":          lbase.Foreground(tcell.NewHexColor(0x8a93a5)).Italic(true),
			"markup.list":           lbase.Foreground(tcell.NewHexColor(0xb4642d)),
			"markup.list.checked":   lbase.Foreground(tcell.NewHexColor(0x4c7a3d)).Bold(true),
			"markup.list.unchecked": lbase.Foreground(tcell.NewHexColor(0xb48e2d)).Bold(true),
			"markup.link":           lbase.Foreground(tcell.NewHexColor(0x2e7d8c)).Underline(true),
		},
	}
}
