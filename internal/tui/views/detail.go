package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/bushou/internal/clipboard"
	"github.com/f3rmion/bushou/internal/detail"
	"github.com/f3rmion/bushou/internal/favorites"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/f3rmion/bushou/internal/tui/bigchar"
	"github.com/f3rmion/bushou/internal/tui/components"
)

// DetailModel shows one character and steps through the list it was
// opened from.
type DetailModel struct {
	oracle   oracle.Oracle
	store    *favorites.Store
	renderer *bigchar.Renderer

	panel    detail.Panel
	results  []hanzi.Character
	info     detail.Info
	favorite bool
	status   status

	width  int
	height int
}

// NewDetailModel creates the detail view. store and renderer may be nil.
func NewDetailModel(o oracle.Oracle, store *favorites.Store, renderer *bigchar.Renderer) DetailModel {
	return DetailModel{
		oracle:   o,
		store:    store,
		renderer: renderer,
		status:   status{owner: "detail"},
	}
}

// SetSize updates the view dimensions.
func (m *DetailModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Open shows ch, navigating within results.
func (m *DetailModel) Open(ch hanzi.Character, results []hanzi.Character) {
	m.results = append([]hanzi.Character(nil), results...)
	m.panel.Select(ch)
	m.refresh()
}

// Close drops the selection.
func (m *DetailModel) Close() {
	m.panel.Clear()
	m.results = nil
}

// IsOpen reports whether a character is shown.
func (m DetailModel) IsOpen() bool {
	return m.panel.IsOpen()
}

func (m *DetailModel) refresh() {
	ch, ok := m.panel.Selected()
	if !ok {
		return
	}
	m.info = detail.Describe(ch, m.oracle)
	m.favorite = false
	if m.store != nil {
		fav, err := m.store.IsFavorite(ch.Word)
		if err != nil {
			logging.Warn("Failed to read favorite", "char", ch.Word, "error", err)
		}
		m.favorite = fav
	}
}

// Update handles messages.
func (m DetailModel) Update(msg tea.Msg) (DetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case clearStatusMsg:
		m.status.clear(msg)
		return m, nil

	case FavoritesChangedMsg:
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if !m.panel.IsOpen() {
			return m, nil
		}
		switch msg.String() {
		case "left", "h", "p":
			if m.panel.Previous(m.results) {
				m.refresh()
			}
		case "right", "l", "n":
			if m.panel.Next(m.results) {
				m.refresh()
			}
		case "f":
			return m, m.toggleFavorite()
		case "y":
			return m, m.copy()
		case "b", "backspace":
			return m, func() tea.Msg { return CloseDetailMsg{} }
		}
	}
	return m, nil
}

func (m *DetailModel) toggleFavorite() tea.Cmd {
	ch, ok := m.panel.Selected()
	if !ok {
		return nil
	}
	if m.store == nil {
		return m.status.set("Favorites are unavailable", true)
	}
	added, err := m.store.Toggle(ch)
	if err != nil {
		logging.Error("Failed to toggle favorite", "char", ch.Word, "error", err)
		return m.status.set("Error: "+err.Error(), true)
	}
	m.favorite = added
	text := "Removed " + ch.Word + " from favorites"
	if added {
		text = "Added " + ch.Word + " to favorites"
	}
	return tea.Batch(m.status.set(text, false), favoritesChanged)
}

func (m *DetailModel) copy() tea.Cmd {
	ch, ok := m.panel.Selected()
	if !ok {
		return nil
	}
	if err := clipboard.Write(ch.Word); err != nil {
		return m.status.set("Copy failed: "+err.Error(), true)
	}
	return m.status.set("Copied "+ch.Word, false)
}

// View renders the detail view.
func (m DetailModel) View() string {
	if !m.panel.IsOpen() {
		return titleStyle.Render("详情") + "\n\n" +
			helpStyle.Render("Open a character from the search or favorites view")
	}

	info := m.info
	var b strings.Builder

	b.WriteString(titleStyle.Render("详情"))
	if idx, _, _ := m.panel.Position(m.results); idx >= 0 {
		b.WriteString("  ")
		b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d / %d", idx+1, len(m.results))))
	}
	if m.favorite {
		b.WriteString("  ")
		b.WriteString(favoriteStyle.Render("★"))
	}
	b.WriteString("\n\n")

	glyph := lipgloss.JoinVertical(lipgloss.Center,
		m.renderGlyph(info.Character.Word),
		pinyinUnderStyle.Render(info.Pinyin),
	)

	var facts strings.Builder
	facts.WriteString(m.row("笔画", m.strokes()))
	facts.WriteString(m.row("部首", info.RadicalSummary()))
	facts.WriteString(m.row("结构", orUnknown(info.Structure)))
	facts.WriteString(labelStyle.Render("五行"))
	if info.HasElement {
		facts.WriteString(elementBadge(info.Element, true))
	} else {
		facts.WriteString(valueStyle.Render(info.ElementLabel()))
	}
	facts.WriteString("\n")
	if info.Character.OldWord != "" && info.Character.OldWord != info.Character.Word {
		facts.WriteString(m.row("繁体", info.Character.OldWord))
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, glyph, "  ", facts.String()))
	b.WriteString("\n\n")

	if exp := strings.TrimSpace(info.Character.Explanation); exp != "" {
		b.WriteString(boxStyle.Render(components.Wrap(exp, max(m.width-8, 20))))
		b.WriteString("\n")
	}

	if s := m.status.View(); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("←/→: prev/next • f: favorite • y: copy • b: back"))

	return b.String()
}

func (m DetailModel) renderGlyph(word string) string {
	if art := m.renderer.Render(word, 16, 8); art != "" {
		return art
	}
	return bigCharStyle.Render(word)
}

func (m DetailModel) strokes() string {
	if m.info.Strokes <= 0 {
		return detail.Unknown
	}
	return fmt.Sprintf("%d", m.info.Strokes)
}

func (m DetailModel) row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func orUnknown(s string) string {
	if s == "" {
		return detail.Unknown
	}
	return s
}
