package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/bushou/internal/favorites"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/f3rmion/bushou/internal/search"
	"github.com/f3rmion/bushou/internal/tui/components"
)

// FavoritesModel lists saved characters.
type FavoritesModel struct {
	ctx    context.Context
	store  *favorites.Store
	corpus search.Corpus

	list   []hanzi.Character
	cursor int

	input        textinput.Model
	importing    bool
	confirmClear bool
	status       status

	width  int
	height int
}

// NewFavoritesModel creates the favorites view. store may be nil when the
// database could not be opened.
func NewFavoritesModel(ctx context.Context, store *favorites.Store, corpus search.Corpus) FavoritesModel {
	ti := textinput.New()
	ti.Placeholder = "paste text containing hanzi..."
	ti.Prompt = "> "
	ti.CharLimit = 2000
	ti.Width = 40
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))

	m := FavoritesModel{
		ctx:    ctx,
		store:  store,
		corpus: corpus,
		input:  ti,
		status: status{owner: "favorites"},
	}
	m.reload()
	return m
}

// SetSize updates the view dimensions.
func (m *FavoritesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-10, 20)
}

// Capturing reports whether the view is consuming raw key input.
func (m FavoritesModel) Capturing() bool {
	return m.importing
}

func (m *FavoritesModel) reload() {
	if m.store == nil {
		return
	}
	list, err := m.store.List()
	if err != nil {
		logging.Error("Failed to list favorites", "error", err)
		return
	}
	m.list = list
	if m.cursor >= len(m.list) {
		m.cursor = max(len(m.list)-1, 0)
	}
}

// Update handles messages.
func (m FavoritesModel) Update(msg tea.Msg) (FavoritesModel, tea.Cmd) {
	switch msg := msg.(type) {
	case clearStatusMsg:
		m.status.clear(msg)
		return m, nil

	case FavoritesChangedMsg:
		m.reload()
		return m, nil

	case tea.KeyMsg:
		if m.importing {
			return m.updateImport(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m FavoritesModel) updateImport(msg tea.KeyMsg) (FavoritesModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.importing = false
		m.input.Blur()
		m.input.Reset()
		return m, nil
	case "enter":
		text := m.input.Value()
		m.importing = false
		m.input.Blur()
		m.input.Reset()
		return m, m.importText(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *FavoritesModel) importText(text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	res, err := m.store.AddFromText(text, m.corpus.Load(m.ctx))
	if err != nil {
		logging.Error("Failed to import favorites", "error", err)
		return m.status.set("Error: "+err.Error(), true)
	}
	m.reload()
	msg := fmt.Sprintf("Added %d, skipped %d, not in dictionary %d", res.Added, res.Skipped, res.Invalid)
	return tea.Batch(m.status.set(msg, false), favoritesChanged)
}

func (m FavoritesModel) handleKey(msg tea.KeyMsg) (FavoritesModel, tea.Cmd) {
	key := msg.String()
	if key != "C" {
		m.confirmClear = false
	}
	if m.store == nil {
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = max(len(m.list)-1, 0)
	case "enter":
		if m.cursor < len(m.list) {
			return m, openDetail(m.list[m.cursor], m.list)
		}
	case "d", "delete":
		if m.cursor >= len(m.list) {
			return m, nil
		}
		word := m.list[m.cursor].Word
		if err := m.store.Remove(word); err != nil {
			logging.Error("Failed to remove favorite", "char", word, "error", err)
			return m, m.status.set("Error: "+err.Error(), true)
		}
		m.reload()
		return m, tea.Batch(m.status.set("Removed "+word, false), favoritesChanged)
	case "C":
		if len(m.list) == 0 {
			return m, nil
		}
		if !m.confirmClear {
			m.confirmClear = true
			return m, m.status.set("Press C again to clear all favorites", true)
		}
		m.confirmClear = false
		if err := m.store.Clear(); err != nil {
			logging.Error("Failed to clear favorites", "error", err)
			return m, m.status.set("Error: "+err.Error(), true)
		}
		m.reload()
		return m, tea.Batch(m.status.set("Favorites cleared", false), favoritesChanged)
	case "i":
		m.importing = true
		return m, m.input.Focus()
	}
	return m, nil
}

// View renders the favorites view.
func (m FavoritesModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("收藏"))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d", len(m.list))))
	b.WriteString("\n\n")

	if m.store == nil {
		b.WriteString(errorStyle.Render("Favorites database is unavailable"))
		return b.String()
	}

	if m.importing {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	if len(m.list) == 0 {
		b.WriteString(helpStyle.Render("No favorites yet. Press f in the detail view, or i to import text."))
	} else {
		b.WriteString(m.renderList())
	}
	b.WriteString("\n\n")

	if s := m.status.View(); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("j/k: move • enter: detail • d: remove • C: clear • i: import text"))
	return b.String()
}

func (m FavoritesModel) renderList() string {
	visible := max(m.height-8, 3)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.list))

	width := max(m.width-16, 10)
	var lines []string
	for i := start; i < end; i++ {
		ch := m.list[i]
		line := fmt.Sprintf("%s  %s  %s",
			ch.Word,
			components.Pad(ch.Pinyin, 8),
			components.Pad(firstLine(ch.Explanation), width))
		if i == m.cursor {
			lines = append(lines, grid(2).SelectedStyle.Render(line))
		} else {
			lines = append(lines, valueStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
