package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/keymask/internal/config"
)

// Theme holds the resolved styles of the form.
type Theme struct {
	Text        tcell.Style
	Label       tcell.Style
	Focus       tcell.Style
	PlaceHolder tcell.Style
	Error       tcell.Style
	Status      tcell.Style
}

// NewTheme resolves hex colours into styles. Colours that fail to parse
// keep the terminal default.
func NewTheme(tc config.ThemeConfig) Theme {
	base := tcell.StyleDefault.
		Foreground(hexColor(tc.Foreground)).
		Background(hexColor(tc.Background))

	return Theme{
		Text:        base,
		Label:       base.Foreground(hexColor(tc.Label)),
		Focus:       base.Foreground(hexColor(tc.Focus)).Bold(true),
		PlaceHolder: base.Foreground(hexColor(tc.PlaceHolder)).Italic(true),
		Error:       base.Foreground(hexColor(tc.Error)),
		Status:      base.Reverse(true),
	}
}

// hexColor converts "#rrggbb" to a true-colour tcell colour.
func hexColor(hex string) tcell.Color {
	if hex == "" {
		return tcell.ColorDefault
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
