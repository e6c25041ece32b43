package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/search"
	"github.com/f3rmion/bushou/internal/tui/components"
)

type searchPane int

const (
	paneRadicals searchPane = iota
	paneResults
)

// elementKeys maps a key to the element whose pinyin it starts.
var elementKeys = []struct {
	key     string
	element hanzi.Element
}{
	{"J", hanzi.Metal}, // jīn
	{"M", hanzi.Wood},  // mù
	{"S", hanzi.Water}, // shuǐ
	{"H", hanzi.Fire},  // huǒ
	{"T", hanzi.Earth}, // tǔ
}

type radicalsLoadedMsg struct {
	radicals []string
}

// SearchModel is the radical picker plus result grid.
type SearchModel struct {
	ctx     context.Context
	session *search.Session

	filter    textinput.Model
	filtering bool

	pane      searchPane
	radicals  []string
	loaded    bool
	radCursor int
	resCursor int

	state  search.State
	counts map[hanzi.Element]int
	status status

	width  int
	height int
}

// NewSearchModel creates the search view over session.
func NewSearchModel(ctx context.Context, session *search.Session) SearchModel {
	ti := textinput.New()
	ti.Placeholder = "filter by pinyin..."
	ti.Prompt = "/ "
	ti.CharLimit = 16
	ti.Width = 16
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ecdc4"))
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffe66d"))

	return SearchModel{
		ctx:     ctx,
		session: session,
		filter:  ti,
		state:   session.Snapshot(),
		counts:  session.Counts(ctx),
		status:  status{owner: "search"},
	}
}

// Init starts loading the radical list.
func (m SearchModel) Init() tea.Cmd {
	return m.loadRadicals()
}

func (m SearchModel) loadRadicals() tea.Cmd {
	ctx, session := m.ctx, m.session
	return func() tea.Msg {
		return radicalsLoadedMsg{radicals: session.LoadRadicals(ctx)}
	}
}

// SetSize updates the view dimensions.
func (m *SearchModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Capturing reports whether the view is consuming raw key input.
func (m SearchModel) Capturing() bool {
	return m.filtering
}

func (m SearchModel) paneWidths() (int, int) {
	left := max(m.width*2/5, 20)
	right := max(m.width-left-2, 20)
	return left, right
}

func (m SearchModel) radicalCols() int {
	left, _ := m.paneWidths()
	return grid(2).Columns(left - 4)
}

func (m SearchModel) resultCols() int {
	_, right := m.paneWidths()
	return grid(2).Columns(right - 4)
}

// Update handles messages.
func (m SearchModel) Update(msg tea.Msg) (SearchModel, tea.Cmd) {
	switch msg := msg.(type) {
	case radicalsLoadedMsg:
		m.loaded = len(msg.radicals) > 0
		m.radicals = m.session.FilteredRadicals()
		m.radCursor = min(m.radCursor, max(len(m.radicals)-1, 0))
		if !m.loaded {
			return m, m.status.set("Could not load radicals (R to retry)", true)
		}
		return m, nil

	case clearStatusMsg:
		m.status.clear(msg)
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m SearchModel) updateFilter(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.session.SetRadicalFilter(m.filter.Value())
	m.radicals = m.session.FilteredRadicals()
	m.radCursor = 0
	return m, cmd
}

func (m SearchModel) handleKey(msg tea.KeyMsg) (SearchModel, tea.Cmd) {
	key := msg.String()

	for _, ek := range elementKeys {
		if key == ek.key {
			m.apply(m.session.ToggleElement(m.ctx, ek.element))
			return m, nil
		}
	}

	switch key {
	case "/":
		m.filtering = true
		m.pane = paneRadicals
		return m, m.filter.Focus()
	case "r":
		m.pane = paneRadicals
	case "c":
		m.pane = paneResults
	case "R":
		return m, m.loadRadicals()
	case "a":
		mode := hanzi.ModeAnd
		if m.state.Mode == hanzi.ModeAnd {
			mode = hanzi.ModeOr
		}
		m.apply(m.session.SetMode(m.ctx, mode))
	case "o":
		m.apply(m.session.SetSort(m.state.Sort.Next()))
	case "x":
		m.apply(m.session.ClearRadicals())
	case "X":
		m.apply(m.session.ClearElements(m.ctx))
	case "left", "h":
		m.move(-1, 0)
	case "right", "l":
		m.move(1, 0)
	case "up", "k":
		m.move(0, -1)
	case "down", "j":
		m.move(0, 1)
	case " ", "enter":
		if m.pane == paneRadicals {
			if m.radCursor < len(m.radicals) {
				m.apply(m.session.ToggleRadical(m.ctx, m.radicals[m.radCursor]))
			}
			return m, nil
		}
		if m.resCursor < len(m.state.Results) {
			return m, openDetail(m.state.Results[m.resCursor], m.state.Results)
		}
	}
	return m, nil
}

func (m *SearchModel) move(dx, dy int) {
	if m.pane == paneRadicals {
		m.radCursor = components.Move(m.radCursor, len(m.radicals), m.radicalCols(), dx, dy)
		return
	}
	m.resCursor = components.Move(m.resCursor, len(m.state.Results), m.resultCols(), dx, dy)
}

// apply takes a new state from the session and keeps the cursor in range.
func (m *SearchModel) apply(state search.State) {
	m.state = state
	m.counts = m.session.Counts(m.ctx)
	if m.resCursor >= len(state.Results) {
		m.resCursor = max(len(state.Results)-1, 0)
	}
}

// View renders the search view.
func (m SearchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("部首检字"))
	b.WriteString("  ")
	b.WriteString(modeStyle.Render(string(m.state.Mode)))
	b.WriteString("  ")
	b.WriteString(subtitleStyle.Render("sort: " + string(m.state.Sort)))
	b.WriteString("\n\n")

	b.WriteString(m.renderElements())
	b.WriteString("\n")
	b.WriteString(m.renderSelection())
	b.WriteString("\n\n")

	left, right := m.paneWidths()
	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderRadicals(left),
		" ",
		m.renderResults(right),
	)
	b.WriteString(panes)
	b.WriteString("\n")

	if s := m.status.View(); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(
		"r/c: pane • space: toggle • /: filter • J M S H T: 金木水火土 • a: and/or • o: sort • x/X: clear • enter: detail"))

	return b.String()
}

func (m SearchModel) renderElements() string {
	var parts []string
	for _, ek := range elementKeys {
		badge := elementBadge(ek.element, m.state.HasElement(ek.element))
		count := helpStyle.Render(fmt.Sprintf("%d", m.counts[ek.element]))
		parts = append(parts, badge+" "+count)
	}
	return strings.Join(parts, "  ")
}

func (m SearchModel) renderSelection() string {
	if m.state.Empty() {
		return helpStyle.Render("Select radicals or elements to search")
	}
	radicals := "-"
	if len(m.state.Radicals) > 0 {
		radicals = strings.Join(m.state.Radicals, " ")
	}
	return labelStyle.Render("部首:") + valueStyle.Render(radicals)
}

func (m SearchModel) paneHeight() int {
	return max(m.height-12, 4)
}

func (m SearchModel) renderRadicals(width int) string {
	var b strings.Builder
	b.WriteString(m.filter.View())
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString(helpStyle.Render("Loading radicals..."))
	case len(m.radicals) == 0:
		b.WriteString(helpStyle.Render("No radical matches"))
	default:
		cells := make([]components.Cell, len(m.radicals))
		for i, r := range m.radicals {
			cells[i] = components.Cell{
				Text:     r,
				Marked:   m.state.HasRadical(r),
				Selected: m.pane == paneRadicals && i == m.radCursor,
			}
		}
		b.WriteString(grid(2).Render(cells, width-4, m.paneHeight()-2))
	}

	style := boxStyle
	if m.pane == paneRadicals {
		style = focusedBoxStyle
	}
	return style.Width(width).Height(m.paneHeight()).Render(b.String())
}

func (m SearchModel) renderResults(width int) string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("%d 个结果", len(m.state.Results))))
	b.WriteString("\n\n")

	cells := make([]components.Cell, len(m.state.Results))
	for i, ch := range m.state.Results {
		cells[i] = components.Cell{
			Text:     ch.Word,
			Selected: m.pane == paneResults && i == m.resCursor,
		}
	}
	b.WriteString(grid(2).Render(cells, width-4, m.paneHeight()-2))

	if m.pane == paneResults && m.resCursor < len(m.state.Results) {
		ch := m.state.Results[m.resCursor]
		b.WriteString("\n\n")
		b.WriteString(valueStyle.Render(ch.Word + " " + ch.Pinyin))
	}

	style := boxStyle
	if m.pane == paneResults {
		style = focusedBoxStyle
	}
	return style.Width(width).Height(m.paneHeight()).Render(b.String())
}
