package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

func plainGrid(width int) Grid {
	s := lipgloss.NewStyle()
	return Grid{CellWidth: width, NormalStyle: s, MarkedStyle: s, SelectedStyle: s}
}

func TestPad(t *testing.T) {
	assert.Equal(t, "好  ", Pad("好", 4))
	assert.Equal(t, 4, runewidth.StringWidth(Pad("好林木", 4)))
	assert.Equal(t, "ab", Pad("ab", 2))
}

func TestGridColumns(t *testing.T) {
	g := plainGrid(4)
	assert.Equal(t, 4, g.Columns(20))
	assert.Equal(t, 1, g.Columns(3))
}

func TestGridRender(t *testing.T) {
	g := plainGrid(2)
	cells := []Cell{{Text: "好"}, {Text: "女"}, {Text: "木"}, {Text: "林"}, {Text: "子"}}

	out := g.Render(cells, 6, 0)
	assert.Equal(t, "好 女\n木 林\n子", out)
}

func TestGridRenderScrollsToSelection(t *testing.T) {
	g := plainGrid(2)
	cells := make([]Cell, 10)
	for i := range cells {
		cells[i] = Cell{Text: string(rune('a' + i))}
	}
	cells[9].Selected = true

	out := g.Render(cells, 3, 3)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "j ", lines[2])
}

func TestMove(t *testing.T) {
	assert.Equal(t, 1, Move(0, 10, 4, 1, 0))
	assert.Equal(t, 0, Move(0, 10, 4, -1, 0))
	assert.Equal(t, 4, Move(0, 10, 4, 0, 1))
	assert.Equal(t, 8, Move(8, 10, 4, 0, 1))
	assert.Equal(t, 0, Move(0, 0, 4, 1, 0))
}

func TestWrap(t *testing.T) {
	assert.Equal(t, "好好\n好", Wrap("好好好", 4))
	assert.Equal(t, "ab\ncd", Wrap("ab cd", 3))
	assert.Equal(t, "a\nb", Wrap("a\nb", 10))
}
