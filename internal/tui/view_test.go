package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dshills/keymask/internal/config"
)

type cell struct {
	r     rune
	style tcell.Style
}

// fakeCanvas records drawn cells for inspection.
type fakeCanvas struct {
	width, height int
	cells         map[[2]int]cell
	cursorX       int
	cursorY       int
	cursorVisible bool
}

func newFakeCanvas(width, height int) *fakeCanvas {
	return &fakeCanvas{width: width, height: height, cells: make(map[[2]int]cell)}
}

func (c *fakeCanvas) Size() (int, int) { return c.width, c.height }
func (c *fakeCanvas) Clear()           { c.cells = make(map[[2]int]cell) }
func (c *fakeCanvas) HideCursor()      { c.cursorVisible = false }

func (c *fakeCanvas) SetContent(x, y int, r rune, _ []rune, style tcell.Style) {
	c.cells[[2]int{x, y}] = cell{r: r, style: style}
}

func (c *fakeCanvas) ShowCursor(x, y int) {
	c.cursorX, c.cursorY, c.cursorVisible = x, y, true
}

func (c *fakeCanvas) row(y int) string {
	var sb strings.Builder
	for x := 0; x < c.width; x++ {
		if cl, ok := c.cells[[2]int{x, y}]; ok {
			sb.WriteRune(cl.r)
		} else {
			sb.WriteRune(' ')
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

func TestDrawForm(t *testing.T) {
	f := newForm(t, testConfig())
	th := NewTheme(config.Default().Theme)
	c := newFakeCanvas(60, 10)

	Draw(c, f, th)
	assert.Equal(t, headerText, c.row(0))
	assert.Equal(t, "> Phone   (999) 999-9999", c.row(firstRow))
	assert.Equal(t, "  Amount", c.row(firstRow+1))
	assert.Equal(t, th.PlaceHolder, c.cells[[2]int{10, firstRow}].style)
	assert.True(t, c.cursorVisible)
	assert.Equal(t, 10, c.cursorX)
	assert.Equal(t, firstRow, c.cursorY)
	assert.Equal(t, ` phone = ""  (invalid)`, c.row(9))

	typeKeys(f, "5")
	Draw(c, f, th)
	assert.Equal(t, "> Phone   (5", c.row(firstRow))
	assert.Equal(t, 12, c.cursorX)
}

func TestDrawErrorsAfterTouch(t *testing.T) {
	f := newForm(t, testConfig())
	th := NewTheme(config.Default().Theme)
	c := newFakeCanvas(80, 10)

	f.Focus(1)
	Draw(c, f, th)
	assert.Equal(t, "> Amount", c.row(firstRow+1))
	assert.Contains(t, c.row(9), "amount = null  (invalid)")

	f.Focus(0)
	Draw(c, f, th)
	assert.Equal(t, "  Amount    amount is required", c.row(firstRow+1))
	assert.Equal(t, th.Error, c.cells[[2]int{12, firstRow + 1}].style)
}

func TestDrawSelection(t *testing.T) {
	f := newForm(t, testConfig())
	th := NewTheme(config.Default().Theme)
	c := newFakeCanvas(60, 10)

	typeKeys(f, "555<C-a>")
	Draw(c, f, th)
	assert.Equal(t, th.Text.Reverse(true), c.cells[[2]int{10, firstRow}].style)
}

func TestCaretColumn(t *testing.T) {
	tests := []struct {
		text  string
		caret int
		want  int
	}{
		{"", 0, 0},
		{"(555) ", 6, 6},
		{"1.234,56 €", 10, 10},
		{"日本", 1, 2},
		{"abc", 9, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CaretColumn(tt.text, tt.caret), tt.text)
	}
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, tcell.NewRGBColor(0x5f, 0xaf, 0xff), hexColor("#5fafff"))
	assert.Equal(t, tcell.ColorDefault, hexColor(""))
	assert.Equal(t, tcell.ColorDefault, hexColor("blue"))
}
