package views

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/f3rmion/bushou/internal/corpus"
	"github.com/f3rmion/bushou/internal/favorites"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/f3rmion/bushou/internal/radical"
	"github.com/f3rmion/bushou/internal/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOracle = oracle.Static{
	"好": {Radicals: []string{"女", "子"}, Element: hanzi.Water, Strokes: 6, Pinyin: "hǎo"},
	"女": {Radicals: []string{"女"}, Element: hanzi.Earth, Strokes: 3, Pinyin: "nǚ"},
	"木": {Radicals: []string{"木"}, Element: hanzi.Wood, Strokes: 4, Pinyin: "mù"},
	"林": {Radicals: []string{"木"}, Element: hanzi.Wood, Strokes: 8, Pinyin: "lín"},
	"子": {Radicals: []string{"子"}, Strokes: 3, Pinyin: "zǐ"},
}

var testCorpus = []hanzi.Character{
	{Word: "好", Pinyin: "hǎo", Explanation: "good"},
	{Word: "女", Pinyin: "nǚ", Explanation: "woman"},
	{Word: "木", Pinyin: "mù", Explanation: "tree"},
	{Word: "林", Pinyin: "lín", Explanation: "forest"},
}

func newSession() (*search.Session, *corpus.Loader) {
	loader := corpus.NewLoader(corpus.SourceFunc(func(context.Context) ([]hanzi.Character, error) {
		return testCorpus, nil
	}))
	deps := search.Deps{
		Corpus: loader,
		Index:  radical.NewBuilder(loader, testOracle),
		Oracle: testOracle,
	}
	return search.NewSession(deps, hanzi.ModeOr, hanzi.SortDefault), loader
}

func newStore(t *testing.T) *favorites.Store {
	t.Helper()
	store, err := favorites.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func words(records []hanzi.Character) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Word
	}
	return out
}

func loadedSearch(t *testing.T) SearchModel {
	t.Helper()
	session, _ := newSession()
	m := NewSearchModel(context.Background(), session)
	m.SetSize(100, 40)

	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	require.True(t, m.loaded)
	return m
}

func (m SearchModel) cursorTo(t *testing.T, r string) SearchModel {
	t.Helper()
	for i, x := range m.radicals {
		if x == r {
			m.radCursor = i
			return m
		}
	}
	t.Fatalf("radical %s not listed", r)
	return m
}

func TestSearchLoadsRadicals(t *testing.T) {
	m := loadedSearch(t)
	assert.ElementsMatch(t, []string{"女", "子", "木"}, m.radicals)
	assert.Equal(t, 2, m.counts[hanzi.Wood])
}

func TestSearchToggleRadicalAndElement(t *testing.T) {
	m := loadedSearch(t).cursorTo(t, "女")

	m, _ = m.Update(key(" "))
	assert.Equal(t, []string{"女"}, m.state.Radicals)
	assert.Equal(t, []string{"好", "女"}, words(m.state.Results))
	assert.Equal(t, 1, m.counts[hanzi.Water])

	m, _ = m.Update(key("S"))
	assert.Equal(t, []string{"好"}, words(m.state.Results))
	assert.Equal(t, 1, m.counts[hanzi.Earth])

	m, _ = m.Update(key("X"))
	assert.Equal(t, []string{"好", "女"}, words(m.state.Results))

	m, _ = m.Update(key("x"))
	assert.Empty(t, m.state.Radicals)
	assert.Empty(t, m.state.Results)
}

func TestSearchModeAndSortKeys(t *testing.T) {
	m := loadedSearch(t)

	m, _ = m.Update(key("a"))
	assert.Equal(t, hanzi.ModeAnd, m.state.Mode)

	m, _ = m.Update(key("M"))
	assert.Equal(t, []string{"木", "林"}, words(m.state.Results))

	m, _ = m.Update(key("o"))
	assert.Equal(t, hanzi.SortDefault.Next(), m.state.Sort)
}

func TestSearchEnterOpensDetail(t *testing.T) {
	m := loadedSearch(t).cursorTo(t, "女")
	m, _ = m.Update(key(" "))
	m, _ = m.Update(key("c"))

	_, cmd := m.Update(key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(OpenDetailMsg)
	require.True(t, ok)
	assert.Equal(t, "好", msg.Character.Word)
	assert.Len(t, msg.Results, 2)
}

func TestSearchFilterCapturesInput(t *testing.T) {
	m := loadedSearch(t)

	m, _ = m.Update(key("/"))
	assert.True(t, m.Capturing())

	m, _ = m.Update(key("z"))
	assert.Equal(t, []string{"子"}, m.radicals)
	// Typed letters go to the filter, not to the element keys.
	m, _ = m.Update(key("S"))
	assert.Empty(t, m.state.Elements)

	m, _ = m.Update(key("esc"))
	assert.False(t, m.Capturing())
}

func TestSearchView(t *testing.T) {
	m := loadedSearch(t).cursorTo(t, "木")
	m, _ = m.Update(key(" "))

	out := m.View()
	assert.Contains(t, out, "部首检字")
	assert.Contains(t, out, "2 个结果")
}

func TestDetailNavigationAndFavorite(t *testing.T) {
	store := newStore(t)
	m := NewDetailModel(testOracle, store, nil)
	m.SetSize(100, 40)
	m.Open(testCorpus[0], testCorpus[:2])
	require.True(t, m.IsOpen())
	assert.Equal(t, 6, m.info.Strokes)

	m, _ = m.Update(key("left"))
	assert.Equal(t, "好", m.info.Character.Word)

	m, _ = m.Update(key("right"))
	assert.Equal(t, "女", m.info.Character.Word)

	m, _ = m.Update(key("f"))
	assert.True(t, m.favorite)
	fav, err := store.IsFavorite("女")
	require.NoError(t, err)
	assert.True(t, fav)

	out := m.View()
	assert.Contains(t, out, "★")
	assert.Contains(t, out, "2 / 2")

	_, cmd := m.Update(key("b"))
	require.NotNil(t, cmd)
	assert.Equal(t, CloseDetailMsg{}, cmd())
}

func TestDetailWithoutStore(t *testing.T) {
	m := NewDetailModel(testOracle, nil, nil)
	m.Open(testCorpus[2], nil)

	m, _ = m.Update(key("f"))
	assert.False(t, m.favorite)
	assert.Contains(t, m.status.text, "unavailable")
}

func TestFavoritesRemoveAndClear(t *testing.T) {
	store := newStore(t)
	for _, ch := range testCorpus[:3] {
		_, err := store.Add(ch)
		require.NoError(t, err)
	}
	_, loader := newSession()
	m := NewFavoritesModel(context.Background(), store, loader)
	m.SetSize(100, 40)
	require.Len(t, m.list, 3)

	m, _ = m.Update(key("j"))
	m, _ = m.Update(key("d"))
	assert.Equal(t, []string{"好", "木"}, words(m.list))

	m, _ = m.Update(key("C"))
	assert.Len(t, m.list, 2)
	m, _ = m.Update(key("C"))
	assert.Empty(t, m.list)
}

func TestFavoritesImportText(t *testing.T) {
	store := newStore(t)
	_, loader := newSession()
	m := NewFavoritesModel(context.Background(), store, loader)

	m, _ = m.Update(key("i"))
	require.True(t, m.Capturing())
	m, _ = m.Update(key("好林猫 ok"))
	m, _ = m.Update(key("enter"))

	assert.False(t, m.Capturing())
	assert.Equal(t, []string{"好", "林"}, words(m.list))
	assert.True(t, strings.HasPrefix(m.status.text, "Added 2"))
}

func TestStatusClearIgnoresOtherOwners(t *testing.T) {
	s := status{owner: "search"}
	s.set("hi", false)

	s.clear(clearStatusMsg{owner: "detail", id: s.id})
	assert.Equal(t, "hi", s.text)

	s.clear(clearStatusMsg{owner: "search", id: s.id - 1})
	assert.Equal(t, "hi", s.text)

	s.clear(clearStatusMsg{owner: "search", id: s.id})
	assert.Empty(t, s.text)
}
