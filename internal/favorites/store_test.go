package favorites

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/f3rmion/bushou/internal/anki"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var corpus = []hanzi.Character{
	{Word: "好", Pinyin: "hǎo", Explanation: "优点多"},
	{Word: "女", Pinyin: "nǚ"},
	{Word: "木", Pinyin: "mù", Explanation: "树木"},
	{Word: "林", Pinyin: "lín"},
}

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func words(records []hanzi.Character) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Word
	}
	return out
}

func TestAddListRemove(t *testing.T) {
	s := openStore(t)

	added, err := s.Add(corpus[2])
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(corpus[0])
	require.NoError(t, err)
	assert.True(t, added)

	added, err = s.Add(corpus[2])
	require.NoError(t, err)
	assert.False(t, added)

	list, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"木", "好"}, words(list))
	assert.Equal(t, "树木", list[0].Explanation)

	fav, err := s.IsFavorite("木")
	require.NoError(t, err)
	assert.True(t, fav)

	require.NoError(t, s.Remove("木"))
	require.NoError(t, s.Remove("龍"))

	fav, err = s.IsFavorite("木")
	require.NoError(t, err)
	assert.False(t, fav)
}

func TestToggle(t *testing.T) {
	s := openStore(t)

	fav, err := s.Toggle(corpus[0])
	require.NoError(t, err)
	assert.True(t, fav)

	fav, err = s.Toggle(corpus[0])
	require.NoError(t, err)
	assert.False(t, fav)

	list, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestClear(t *testing.T) {
	s := openStore(t)
	for _, ch := range corpus {
		_, err := s.Add(ch)
		require.NoError(t, err)
	}
	require.NoError(t, s.Clear())

	list, err := s.List()
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestIdeographs(t *testing.T) {
	assert.Equal(t, []string{"好", "木", "林"}, Ideographs("好 abc 木,好林！"))
	assert.Empty(t, Ideographs("hello 123"))
	// U+9FA6 and above are outside the basic block.
	assert.Empty(t, Ideographs("龦"))
}

func TestAddFromText(t *testing.T) {
	s := openStore(t)
	_, err := s.Add(corpus[0])
	require.NoError(t, err)

	res, err := s.AddFromText("好木林龍 木 hello", corpus)
	require.NoError(t, err)
	assert.Equal(t, ImportResult{Added: 2, Skipped: 1, Invalid: 1}, res)

	list, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"好", "木", "林"}, words(list))
}

func TestPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.db")

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Add(corpus[3])
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	list, err := s.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"林"}, words(list))
}

func TestExportThenImportDeck(t *testing.T) {
	src := openStore(t)
	for _, ch := range corpus[:3] {
		_, err := src.Add(ch)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "favorites.apkg")
	n, err := src.ExportDeck(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	pkg, err := anki.OpenPackage(path)
	require.NoError(t, err)
	defer pkg.Close()

	dst := openStore(t)
	_, err = dst.Add(corpus[1])
	require.NoError(t, err)

	res, err := dst.ImportDeck(pkg, corpus)
	require.NoError(t, err)
	// 优点多 and 树 from the explanations are not in the test corpus.
	assert.Equal(t, 2, res.Added)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 4, res.Invalid)

	list, err := dst.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"女", "好", "木"}, words(list))
}

func TestConcurrentAdds(t *testing.T) {
	s := openStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Add(corpus[i%len(corpus)])
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	list, err := s.List()
	require.NoError(t, err)
	assert.Len(t, list, len(corpus))
}
