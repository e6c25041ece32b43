package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/bushou/internal/favorites"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/f3rmion/bushou/internal/search"
	"github.com/f3rmion/bushou/internal/tui/bigchar"
	"github.com/f3rmion/bushou/internal/tui/views"
)

// ViewType represents the current active view
type ViewType int

const (
	ViewSearch ViewType = iota
	ViewDetail
	ViewFavorites
)

// MenuItem represents a sidebar menu entry
type MenuItem struct {
	Label    string
	Icon     string
	View     ViewType
	Shortcut string
}

// Options are the collaborators the app is built from. Favorites and
// Renderer may be nil.
type Options struct {
	Session   *search.Session
	Corpus    search.Corpus
	Oracle    oracle.Oracle
	Favorites *favorites.Store
	Renderer  *bigchar.Renderer
}

// AppModel is the main TUI model
type AppModel struct {
	// Layout state
	width        int
	height       int
	sidebarWidth int
	ready        bool

	// Navigation
	currentView   ViewType
	returnView    ViewType
	menuItems     []MenuItem
	selectedMenu  int
	sidebarActive bool

	// Sub-models (views)
	searchView    views.SearchModel
	detailView    views.DetailModel
	favoritesView views.FavoritesModel

	// Help overlay
	showHelp bool
}

// NewApp creates the TUI application.
func NewApp(ctx context.Context, opts Options) AppModel {
	menuItems := []MenuItem{
		{Label: "Search", Icon: "搜", View: ViewSearch, Shortcut: "1"},
		{Label: "Detail", Icon: "详", View: ViewDetail, Shortcut: "2"},
		{Label: "Favorites", Icon: "藏", View: ViewFavorites, Shortcut: "3"},
	}

	return AppModel{
		sidebarWidth: 18,
		currentView:  ViewSearch,
		menuItems:    menuItems,

		searchView:    views.NewSearchModel(ctx, opts.Session),
		detailView:    views.NewDetailModel(opts.Oracle, opts.Favorites, opts.Renderer),
		favoritesView: views.NewFavoritesModel(ctx, opts.Favorites, opts.Corpus),
	}
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.searchView.Init())
}

// capturing reports whether the active view is taking raw text input.
func (m AppModel) capturing() bool {
	switch m.currentView {
	case ViewSearch:
		return m.searchView.Capturing()
	case ViewFavorites:
		return m.favoritesView.Capturing()
	}
	return false
}

func (m *AppModel) switchTo(v ViewType) {
	m.currentView = v
	for i, item := range m.menuItems {
		if item.View == v {
			m.selectedMenu = i
			break
		}
	}
	m.sidebarActive = false
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		if !m.capturing() {
			if next, cmd, handled := m.handleGlobalKey(msg); handled {
				return next, cmd
			}
		}
		if m.sidebarActive {
			return m, nil
		}
		return m.updateActive(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		contentWidth := m.width - m.sidebarWidth - 4
		contentHeight := m.height - 2

		m.searchView.SetSize(contentWidth, contentHeight)
		m.detailView.SetSize(contentWidth, contentHeight)
		m.favoritesView.SetSize(contentWidth, contentHeight)
		return m, nil

	case views.OpenDetailMsg:
		if m.currentView != ViewDetail {
			m.returnView = m.currentView
		}
		m.detailView.Open(msg.Character, msg.Results)
		m.switchTo(ViewDetail)
		return m, nil

	case views.CloseDetailMsg:
		m.detailView.Close()
		m.switchTo(m.returnView)
		return m, nil
	}

	// Everything else (loads, status ticks, favorites changes) goes to all views.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.searchView, cmd = m.searchView.Update(msg)
	cmds = append(cmds, cmd)
	m.detailView, cmd = m.detailView.Update(msg)
	cmds = append(cmds, cmd)
	m.favoritesView, cmd = m.favoritesView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m AppModel) handleGlobalKey(msg tea.KeyMsg) (AppModel, tea.Cmd, bool) {
	switch msg.String() {
	case "q":
		return m, tea.Quit, true
	case "?":
		m.showHelp = true
		return m, nil, true
	case "esc":
		if m.currentView == ViewDetail && m.detailView.IsOpen() && !m.sidebarActive {
			m.detailView.Close()
			m.switchTo(m.returnView)
			return m, nil, true
		}
		if m.sidebarActive {
			return m, tea.Quit, true
		}
		m.sidebarActive = true
		return m, nil, true
	case "1":
		m.switchTo(ViewSearch)
		return m, nil, true
	case "2":
		m.switchTo(ViewDetail)
		return m, nil, true
	case "3":
		m.switchTo(ViewFavorites)
		return m, nil, true
	case "tab":
		m.sidebarActive = !m.sidebarActive
		return m, nil, true
	}

	if m.sidebarActive {
		switch msg.String() {
		case "j", "down":
			if m.selectedMenu < len(m.menuItems)-1 {
				m.selectedMenu++
			}
			return m, nil, true
		case "k", "up":
			if m.selectedMenu > 0 {
				m.selectedMenu--
			}
			return m, nil, true
		case "enter", "l", "right":
			m.switchTo(m.menuItems[m.selectedMenu].View)
			return m, nil, true
		}
	}
	return m, nil, false
}

func (m AppModel) updateActive(msg tea.Msg) (AppModel, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentView {
	case ViewSearch:
		m.searchView, cmd = m.searchView.Update(msg)
	case ViewDetail:
		m.detailView, cmd = m.detailView.Update(msg)
	case ViewFavorites:
		m.favoritesView, cmd = m.favoritesView.Update(msg)
	}
	return m, cmd
}

// View renders the UI
func (m AppModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	sidebar := m.renderSidebar()

	var content string
	switch m.currentView {
	case ViewSearch:
		content = m.searchView.View()
	case ViewDetail:
		content = m.detailView.View()
	case ViewFavorites:
		content = m.favoritesView.View()
	}

	contentWidth := m.width - m.sidebarWidth - 4
	mainContent := ContentStyle.
		Width(contentWidth).
		Height(m.height - 2).
		Render(content)

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, mainContent)
}

// renderSidebar renders the sidebar navigation
func (m AppModel) renderSidebar() string {
	var items []string

	items = append(items, SidebarTitleStyle.Render("  部首 bushou  "))
	items = append(items, "")

	for i, item := range m.menuItems {
		label := item.Shortcut + ". " + item.Icon + " " + item.Label

		var style lipgloss.Style
		if i == m.selectedMenu {
			if m.sidebarActive {
				style = SidebarItemActiveStyle
			} else {
				// Current view, not focused
				style = SidebarItemStyle.Bold(true).Foreground(ColorSecondary)
			}
		} else {
			style = SidebarItemStyle
		}

		items = append(items, style.Render(label))
	}

	usedHeight := len(items) + 4
	for i := 0; i < m.height-usedHeight-2; i++ {
		items = append(items, "")
	}

	items = append(items, SidebarHelpStyle.Render("? Help  q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, items...)

	return SidebarStyle.
		Width(m.sidebarWidth).
		Height(m.height - 2).
		Render(content)
}

type helpEntry struct{ key, desc string }

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{"Global Keys", []helpEntry{
		{"1-3", "Switch views"},
		{"tab", "Toggle sidebar focus"},
		{"?", "Show this help"},
		{"q", "Quit"},
	}},
	{"Search View", []helpEntry{
		{"r / c", "Focus radicals / results"},
		{"←↑↓→ hjkl", "Move in grid"},
		{"space", "Toggle radical"},
		{"/", "Filter radicals by pinyin"},
		{"J M S H T", "Toggle 金 木 水 火 土"},
		{"a", "Switch AND / OR"},
		{"o", "Cycle sort order"},
		{"x / X", "Clear radicals / elements"},
		{"enter", "Open character detail"},
	}},
	{"Detail View", []helpEntry{
		{"←/→", "Previous / next result"},
		{"f", "Toggle favorite"},
		{"y", "Copy character"},
		{"esc / b", "Back"},
	}},
	{"Favorites View", []helpEntry{
		{"j/k", "Move"},
		{"enter", "Open detail"},
		{"d", "Remove"},
		{"C C", "Clear all"},
		{"i", "Import from text"},
	}},
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	helpText := helpTitleStyle.Render("部首 - Radical Lookup") + "\n"

	for _, section := range helpSections {
		helpText += helpSectionStyle.Render(section.title) + "\n"
		for _, e := range section.entries {
			helpText += helpKeyStyle.Render(e.key) + helpDescStyle.Render(e.desc) + "\n"
		}
	}

	helpText += "\n" + lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true).
		Render("Press any key to close")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, helpBoxStyle.Render(helpText))
}
