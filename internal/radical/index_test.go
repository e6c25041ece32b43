package radical

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hao = hanzi.Character{Word: "好", Pinyin: "hǎo"}
	nv  = hanzi.Character{Word: "女", Pinyin: "nǚ"}
	mu  = hanzi.Character{Word: "木", Pinyin: "mù"}
	lin = hanzi.Character{Word: "林", Pinyin: "lín"}
	zi  = hanzi.Character{Word: "字", Pinyin: "zì"}
	yi  = hanzi.Character{Word: "一", Pinyin: "yī"}
)

var testOracle = oracle.Static{
	"好": {Radicals: []string{"女", "子"}},
	"女": {Radicals: []string{"女"}},
	"木": {Radicals: []string{"木"}},
	"林": {Radicals: []string{"木", "木"}},
	"字": {Radicals: []string{"宀", "子"}},
	"一": {},
}

func words(records []hanzi.Character) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Word
	}
	return out
}

func scenarioIndex() *Index {
	return BuildIndex([]hanzi.Character{hao, nv, mu}, testOracle)
}

func TestSearchScenario(t *testing.T) {
	idx := scenarioIndex()

	assert.Equal(t, []string{"好", "女"}, words(idx.Search([]string{"女"}, hanzi.ModeOr)))
	assert.Equal(t, []string{"好"}, words(idx.Search([]string{"女", "子"}, hanzi.ModeAnd)))
	assert.Empty(t, idx.Search([]string{"女", "木"}, hanzi.ModeAnd))
}

func TestSearchEmptyCriteriaMatchesNothing(t *testing.T) {
	idx := scenarioIndex()
	for _, mode := range []hanzi.Mode{hanzi.ModeAnd, hanzi.ModeOr} {
		got := idx.Search(nil, mode)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	}
}

func TestBuildIndexSkipsCharactersWithoutRadicals(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{yi, mu}, testOracle)
	assert.Equal(t, 1, idx.Len())
	assert.Equal(t, []string{"木"}, words(idx.Bucket("木")))
}

func TestBuildIndexRepeatedRadicalIndexesOnce(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{mu, lin}, testOracle)
	assert.Equal(t, []string{"木", "林"}, words(idx.Bucket("木")))
}

func TestBucketKeepsCorpusOrder(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{zi, hao, nv}, testOracle)
	assert.Equal(t, []string{"字", "好"}, words(idx.Bucket("子")))
	assert.True(t, idx.Contains("子", "好"))
	assert.False(t, idx.Contains("子", "女"))
}

func TestSearchOrUnionOrder(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{hao, nv, mu, zi}, testOracle)

	// Radicals are walked in the order given, buckets in corpus order.
	got := idx.Search([]string{"子", "女"}, hanzi.ModeOr)
	assert.Equal(t, []string{"好", "字", "女"}, words(got))
}

func TestSearchAndFollowsFirstRadicalOrder(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{zi, hao, nv}, testOracle)
	got := idx.Search([]string{"子", "女"}, hanzi.ModeAnd)
	assert.Equal(t, []string{"好"}, words(got))
}

func TestSearchUnknownRadical(t *testing.T) {
	idx := scenarioIndex()
	assert.Equal(t, []string{"木"}, words(idx.Search([]string{"龍", "木"}, hanzi.ModeOr)))
	assert.Empty(t, idx.Search([]string{"木", "龍"}, hanzi.ModeAnd))
	assert.Empty(t, idx.Search([]string{"龍"}, hanzi.ModeAnd))
}

func TestSearchAndSingleRadicalIsBucket(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{hao, nv, mu, zi}, testOracle)
	assert.Equal(t, idx.Bucket("女"), idx.Search([]string{"女"}, hanzi.ModeAnd))
}

func TestSearchProperties(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{hao, nv, mu, lin, zi, yi}, testOracle)
	sets := [][]string{{"女"}, {"子"}, {"女", "子"}, {"木", "子"}, {"子", "宀"}, {"宀", "子", "女"}, {"龍", "木"}}

	for _, radicals := range sets {
		or := idx.Search(radicals, hanzi.ModeOr)
		and := idx.Search(radicals, hanzi.ModeAnd)

		seen := map[string]bool{}
		for _, ch := range or {
			assert.False(t, seen[ch.Word], "duplicate %s in OR %v", ch.Word, radicals)
			seen[ch.Word] = true

			hit := false
			for _, r := range radicals {
				hit = hit || idx.Contains(r, ch.Word)
			}
			assert.True(t, hit, "%s matches none of %v", ch.Word, radicals)
		}

		for _, ch := range and {
			for _, r := range radicals {
				assert.True(t, idx.Contains(r, ch.Word), "%s missing %s", ch.Word, r)
			}
			assert.True(t, seen[ch.Word], "AND result %s not in OR result", ch.Word)
		}
	}
}

func TestSearchDoesNotAliasIndex(t *testing.T) {
	idx := scenarioIndex()
	got := idx.Search([]string{"女"}, hanzi.ModeAnd)
	got[0] = mu
	assert.Equal(t, "好", idx.Bucket("女")[0].Word)
}

func TestRadicalsSortedAndCopied(t *testing.T) {
	idx := BuildIndex([]hanzi.Character{hao, nv, mu, zi}, testOracle)
	radicals := idx.Radicals()
	require.Len(t, radicals, 4)
	assert.ElementsMatch(t, []string{"女", "子", "木", "宀"}, radicals)

	sorted := append([]string(nil), radicals...)
	SortStrings(sorted)
	assert.Equal(t, sorted, radicals)

	radicals[0] = "x"
	assert.NotEqual(t, "x", idx.Radicals()[0])
}

func TestComparerOrdersPinyin(t *testing.T) {
	cmp := Comparer()
	assert.Negative(t, cmp("hǎo", "lín"))
	assert.Negative(t, cmp("lín", "mù"))
	assert.Positive(t, cmp("mù", "hǎo"))
	assert.Zero(t, cmp("mù", "mù"))
}

type fakeCorpus struct {
	calls   atomic.Int32
	records []hanzi.Character
	err     error
	delay   time.Duration
}

func (f *fakeCorpus) Fetch(ctx context.Context) ([]hanzi.Character, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func TestBuilderMemoizes(t *testing.T) {
	c := &fakeCorpus{records: []hanzi.Character{hao, nv, mu}}
	b := NewBuilder(c, testOracle)

	first, err := b.Build(context.Background())
	require.NoError(t, err)
	second, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), c.calls.Load())

	radicals, err := b.AllRadicals(context.Background())
	require.NoError(t, err)
	assert.Len(t, radicals, 3)
}

func TestBuilderDoesNotCacheFailure(t *testing.T) {
	c := &fakeCorpus{err: errors.New("offline")}
	b := NewBuilder(c, testOracle)

	_, err := b.Build(context.Background())
	require.Error(t, err)

	c.err = nil
	c.records = []hanzi.Character{mu}
	got, err := b.Search(context.Background(), []string{"木"}, hanzi.ModeOr)
	require.NoError(t, err)
	assert.Equal(t, []string{"木"}, words(got))
	assert.Equal(t, int32(2), c.calls.Load())
}

func TestBuilderConcurrentFirstUseBuildsOnce(t *testing.T) {
	c := &fakeCorpus{records: []hanzi.Character{hao, nv, mu}, delay: 50 * time.Millisecond}
	b := NewBuilder(c, testOracle)

	var wg sync.WaitGroup
	results := make([]*Index, 6)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx, err := b.Build(context.Background())
			assert.NoError(t, err)
			results[i] = idx
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), c.calls.Load())
	for _, idx := range results {
		assert.Same(t, results[0], idx)
	}
}

func TestBuilderSearchEmptySkipsBuild(t *testing.T) {
	c := &fakeCorpus{}
	b := NewBuilder(c, testOracle)
	got, err := b.Search(context.Background(), nil, hanzi.ModeAnd)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, int32(0), c.calls.Load())
}
