package views

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/tui/components"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(0, 1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ecdc4"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8dadc")).
			Bold(true).
			Width(10)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f1faee"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a8e6cf")).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3d5a80")).
			Padding(0, 1)

	focusedBoxStyle = boxStyle.
			BorderForeground(lipgloss.Color("#ffe66d"))

	bigCharStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#1a1a2e")).
			Padding(3, 12).
			Align(lipgloss.Center)

	pinyinUnderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#4ecdc4")).
				Bold(true).
				Align(lipgloss.Center).
				Padding(0, 1)

	modeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#4ecdc4")).
			Bold(true).
			Padding(0, 1)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff6b6b")).
			Bold(true)
)

// Element badge colors.
var elementColors = map[hanzi.Element]lipgloss.Color{
	hanzi.Metal: lipgloss.Color("#fbbf24"),
	hanzi.Wood:  lipgloss.Color("#22c55e"),
	hanzi.Water: lipgloss.Color("#3b82f6"),
	hanzi.Fire:  lipgloss.Color("#ef4444"),
	hanzi.Earth: lipgloss.Color("#a16207"),
}

func elementBadge(e hanzi.Element, on bool) string {
	style := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	if on {
		style = style.Foreground(lipgloss.Color("#1a1a2e")).Background(elementColors[e])
	} else {
		style = style.Foreground(elementColors[e])
	}
	return style.Render(string(e))
}

// grid is the shared character grid look.
func grid(cellWidth int) components.Grid {
	return components.Grid{
		CellWidth:   cellWidth,
		NormalStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("#f1faee")),
		MarkedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1a1a2e")).
			Background(lipgloss.Color("#4ecdc4")).
			Bold(true),
		SelectedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffe66d")).
			Background(lipgloss.Color("#2d3436")).
			Bold(true),
	}
}
