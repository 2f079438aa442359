package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Canvas is the part of tcell.Screen the form draws on.
type Canvas interface {
	Size() (width, height int)
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	HideCursor()
}

const (
	headerText = "Tab next  Shift+Tab previous  Ctrl+Q quit"
	firstRow   = 2
	marker     = "> "
)

// Draw renders the form and places the terminal cursor at the caret of
// the focused field.
func Draw(c Canvas, f *Form, th Theme) {
	c.Clear()
	width, height := c.Size()
	drawString(c, 0, 0, width, headerText, th.Label)

	col := labelWidth(f) + len(marker)
	c.HideCursor()

	for i, e := range f.Entries() {
		y := firstRow + i
		if y >= height-1 {
			break
		}
		focused := i == f.FocusIndex()

		labelStyle := th.Label
		if focused {
			labelStyle = th.Focus
			drawString(c, 0, y, width, marker, th.Focus)
		}
		drawString(c, len(marker), y, width, e.Config.DisplayLabel(), labelStyle)

		st := e.Buffer.State()
		x := col
		if st.Text == "" && e.Config.PlaceHolder != "" {
			drawString(c, x, y, width, e.Config.PlaceHolder, th.PlaceHolder)
		} else {
			x = drawSelection(c, x, y, width, st.Runes(), st.Selection.Start(), st.Selection.End(), th.Text)
		}
		if focused {
			c.ShowCursor(col+CaretColumn(st.Text, st.Caret()), y)
		}

		if errs := e.Control.Errors(); len(errs) > 0 && e.Control.Flags().Touched {
			end := max(x, col+uniseg.StringWidth(e.Config.PlaceHolder))
			drawString(c, end+2, y, width, strings.Join(errs, "; "), th.Error)
		}
	}

	if e := f.Focused(); e != nil && height > 0 {
		status := fmt.Sprintf(" %s = %s", e.Config.Name, formatRaw(e.Binding.Value()))
		if !f.Valid() {
			status += "  (invalid)"
		}
		drawString(c, 0, height-1, width, pad(status, width), th.Status)
	}
}

// CaretColumn returns the display column of the caret at rune offset
// caret in text.
func CaretColumn(text string, caret int) int {
	runes := []rune(text)
	if caret > len(runes) {
		caret = len(runes)
	}
	if caret <= 0 {
		return 0
	}
	return uniseg.StringWidth(string(runes[:caret]))
}

func labelWidth(f *Form) int {
	w := 0
	for _, e := range f.Entries() {
		w = max(w, uniseg.StringWidth(e.Config.DisplayLabel()))
	}
	return w + 2
}

// drawString draws s one grapheme at a time and returns the next column.
func drawString(c Canvas, x, y, limit int, s string, style tcell.Style) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() && x < limit {
		runes := g.Runes()
		c.SetContent(x, y, runes[0], runes[1:], style)
		x += max(g.Width(), 1)
	}
	return x
}

// drawSelection draws runes with [start, end) in reverse video.
func drawSelection(c Canvas, x, y, limit int, runes []rune, start, end int, style tcell.Style) int {
	end = min(end, len(runes))
	start = min(start, end)
	x = drawString(c, x, y, limit, string(runes[:start]), style)
	x = drawString(c, x, y, limit, string(runes[start:end]), style.Reverse(true))
	return drawString(c, x, y, limit, string(runes[end:]), style)
}

func formatRaw(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", x)
	case float64:
		return fmt.Sprintf("%g", x)
	}
	return fmt.Sprint(v)
}

func pad(s string, width int) string {
	if w := uniseg.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
