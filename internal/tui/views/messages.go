package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/bushou/internal/hanzi"
)

// OpenDetailMsg asks the app to show ch in the detail view, stepping
// through results.
type OpenDetailMsg struct {
	Character hanzi.Character
	Results   []hanzi.Character
}

// CloseDetailMsg asks the app to return from the detail view.
type CloseDetailMsg struct{}

// FavoritesChangedMsg tells views that the favorites list changed.
type FavoritesChangedMsg struct{}

type clearStatusMsg struct {
	owner string
	id    int
}

func clearStatusAfter(owner string, id int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{owner: owner, id: id}
	})
}

func openDetail(ch hanzi.Character, results []hanzi.Character) tea.Cmd {
	return func() tea.Msg {
		return OpenDetailMsg{Character: ch, Results: results}
	}
}

func favoritesChanged() tea.Msg {
	return FavoritesChangedMsg{}
}

// status is a transient message line shared by the views.
type status struct {
	owner string
	id    int
	text  string
	err   bool
}

func (s *status) set(text string, isErr bool) tea.Cmd {
	s.id++
	s.text = text
	s.err = isErr
	return clearStatusAfter(s.owner, s.id, 3*time.Second)
}

func (s *status) clear(msg clearStatusMsg) {
	if msg.owner == s.owner && msg.id == s.id {
		s.text = ""
	}
}

func (s status) View() string {
	if s.text == "" {
		return ""
	}
	if s.err {
		return errorStyle.Render(s.text)
	}
	return statusStyle.Render(s.text)
}
