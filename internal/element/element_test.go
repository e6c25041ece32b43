package element

import (
	"testing"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOracle = oracle.Static{
	"好": {Element: hanzi.Water},
	"木": {Element: hanzi.Wood},
	"林": {Element: hanzi.Wood},
	"火": {Element: hanzi.Fire},
	"一": {},
	"怪": {Element: "风"},
}

func chars(words ...string) []hanzi.Character {
	out := make([]hanzi.Character, len(words))
	for i, w := range words {
		out[i] = hanzi.Character{Word: w}
	}
	return out
}

func words(records []hanzi.Character) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Word
	}
	return out
}

func TestFilterScenario(t *testing.T) {
	got := Filter(chars("好", "木", "林"), []hanzi.Element{hanzi.Wood}, testOracle)
	assert.Equal(t, []string{"木", "林"}, words(got))
}

func TestFilterEmptyWantedIsNoop(t *testing.T) {
	in := chars("好", "木", "好", "一")
	got := Filter(in, nil, testOracle)
	assert.Equal(t, in, got)
}

func TestFilterDedupes(t *testing.T) {
	got := Filter(chars("木", "林", "木"), []hanzi.Element{hanzi.Wood}, testOracle)
	assert.Equal(t, []string{"木", "林"}, words(got))
}

func TestFilterMultipleElements(t *testing.T) {
	got := Filter(chars("火", "好", "木", "一"), []hanzi.Element{hanzi.Wood, hanzi.Fire}, testOracle)
	assert.Equal(t, []string{"火", "木"}, words(got))
}

func TestFilterSkipsUnclassified(t *testing.T) {
	got := Filter(chars("一", "怪", "未"), hanzi.Elements(), testOracle)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCountEmpty(t *testing.T) {
	counts := Count(nil, testOracle)
	require.Len(t, counts, 5)
	for _, e := range hanzi.Elements() {
		assert.Zero(t, counts[e], e)
	}
}

func TestCount(t *testing.T) {
	records := chars("好", "木", "林", "火", "一", "怪")
	counts := Count(records, testOracle)

	assert.Equal(t, 2, counts[hanzi.Wood])
	assert.Equal(t, 1, counts[hanzi.Water])
	assert.Equal(t, 1, counts[hanzi.Fire])
	assert.Equal(t, 0, counts[hanzi.Metal])
	assert.Len(t, counts, 5)

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.LessOrEqual(t, total, len(hanzi.Dedupe(records)))
}

type panicOracle struct{ oracle.Static }

func (panicOracle) ElementOf(string) (hanzi.Element, bool) { panic("boom") }

func TestCountSurvivesOraclePanic(t *testing.T) {
	counts := Count(chars("木"), panicOracle{})
	assert.Zero(t, counts[hanzi.Wood])
	assert.Empty(t, Filter(chars("木"), []hanzi.Element{hanzi.Wood}, panicOracle{}))
}

func TestDistribute(t *testing.T) {
	d := Distribute(chars("好", "木", "林", "一"), testOracle)

	assert.Equal(t, 4, d.Total)
	assert.Equal(t, 3, d.Classified)
	assert.Equal(t, 1, d.Unclassified)
	require.Len(t, d.Shares, 5)
	assert.Equal(t, hanzi.Metal, d.Shares[0].Element)

	wood := d.Shares[1]
	assert.Equal(t, hanzi.Wood, wood.Element)
	assert.Equal(t, 2, wood.Count)
	assert.InDelta(t, 50.0, wood.Percent, 0.001)
}

func TestDistributeEmpty(t *testing.T) {
	d := Distribute(nil, testOracle)
	assert.Zero(t, d.Total)
	for _, s := range d.Shares {
		assert.Zero(t, s.Percent)
	}
}
