// Package components provides shared UI building blocks for the TUI views.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Cell is one entry of a Grid.
type Cell struct {
	Text     string
	Selected bool // under the cursor
	Marked   bool // toggled on
}

// Grid lays cells out row-major in fixed-width columns. CJK glyphs are two
// columns wide, so widths are measured with runewidth, not len.
type Grid struct {
	CellWidth     int
	NormalStyle   lipgloss.Style
	MarkedStyle   lipgloss.Style
	SelectedStyle lipgloss.Style
}

// Columns returns how many cells fit in width.
func (g Grid) Columns(width int) int {
	cw := g.CellWidth + 1
	if cw <= 1 || width < cw {
		return 1
	}
	return width / cw
}

// Render draws cells into at most maxRows rows of the given width, scrolling
// so the selected cell stays visible. maxRows <= 0 means unlimited.
func (g Grid) Render(cells []Cell, width, maxRows int) string {
	if len(cells) == 0 {
		return ""
	}

	cols := g.Columns(width)
	rows := (len(cells) + cols - 1) / cols

	first := 0
	if maxRows > 0 && rows > maxRows {
		selRow := 0
		for i, c := range cells {
			if c.Selected {
				selRow = i / cols
				break
			}
		}
		first = max(0, min(selRow-maxRows/2, rows-maxRows))
		rows = maxRows
	}

	var lines []string
	for r := first; r < first+rows; r++ {
		var line strings.Builder
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(cells) {
				break
			}
			if c > 0 {
				line.WriteByte(' ')
			}
			line.WriteString(g.cell(cells[i]))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

func (g Grid) cell(c Cell) string {
	text := Pad(c.Text, g.CellWidth)
	switch {
	case c.Selected:
		return g.SelectedStyle.Render(text)
	case c.Marked:
		return g.MarkedStyle.Render(text)
	default:
		return g.NormalStyle.Render(text)
	}
}

// Pad truncates or right-pads s to exactly width display columns.
func Pad(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// Move shifts a cursor over n cells laid out in cols columns, clamping at the
// edges. dx and dy are -1, 0 or 1.
func Move(cursor, n, cols, dx, dy int) int {
	if n == 0 {
		return 0
	}
	next := cursor + dx + dy*cols
	if next < 0 || next >= n {
		return cursor
	}
	return next
}

// Wrap breaks s into lines no wider than width display columns. Spaces are
// preferred break points; runs of CJK text break anywhere.
func Wrap(s string, width int) string {
	if width <= 0 {
		width = 60
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line strings.Builder
		w := 0
		for _, r := range para {
			rw := runewidth.RuneWidth(r)
			if w+rw > width && w > 0 {
				lines = append(lines, strings.TrimRight(line.String(), " "))
				line.Reset()
				w = 0
				if r == ' ' {
					continue
				}
			}
			line.WriteRune(r)
			w += rw
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}
