package detail

import (
	"testing"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOracle = oracle.Static{
	"好": {Radicals: []string{"女", "子"}, Element: hanzi.Water, Strokes: 6, Pinyin: "hǎo", Structure: "左右结构"},
	"女": {Radicals: []string{"女"}, Strokes: 3, Pinyin: "nǚ"},
	"子": {Strokes: 3, Pinyin: "zǐ"},
}

func results(words ...string) []hanzi.Character {
	out := make([]hanzi.Character, len(words))
	for i, w := range words {
		out[i] = hanzi.Character{Word: w}
	}
	return out
}

func TestDescribe(t *testing.T) {
	info := Describe(hanzi.Character{Word: "好", Pinyin: "hǎo"}, testOracle)

	assert.Equal(t, "hǎo", info.Pinyin)
	assert.Equal(t, 6, info.Strokes)
	assert.True(t, info.HasElement)
	assert.Equal(t, hanzi.Water, info.Element)
	assert.Equal(t, "水", info.ElementLabel())
	assert.Equal(t, "左右结构", info.Structure)
	assert.Equal(t, "女(3画)、子(3画)", info.RadicalSummary())
}

func TestDescribeUnknown(t *testing.T) {
	info := Describe(hanzi.Character{Word: "龘", Strokes: "48"}, testOracle)

	assert.Equal(t, 48, info.Strokes)
	assert.Empty(t, info.Pinyin)
	assert.False(t, info.HasElement)
	assert.Equal(t, Unknown, info.ElementLabel())
	assert.Equal(t, Unknown, info.RadicalSummary())
	assert.Empty(t, info.Structure)
}

func TestDescribePinyinFallsBackToOracle(t *testing.T) {
	info := Describe(hanzi.Character{Word: "女"}, testOracle)
	assert.Equal(t, "nǚ", info.Pinyin)
}

func TestPanelSelectAndClear(t *testing.T) {
	var p Panel
	assert.False(t, p.IsOpen())
	_, ok := p.Selected()
	assert.False(t, ok)

	p.Select(hanzi.Character{Word: "好"})
	require.True(t, p.IsOpen())
	ch, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, "好", ch.Word)

	p.Clear()
	assert.False(t, p.IsOpen())
}

func TestPanelNavigation(t *testing.T) {
	list := results("好", "女", "木")
	var p Panel
	p.Select(list[0])

	i, first, last := p.Position(list)
	assert.Equal(t, 0, i)
	assert.True(t, first)
	assert.False(t, last)

	assert.False(t, p.Previous(list))
	assert.True(t, p.Next(list))
	assert.True(t, p.Next(list))

	ch, _ := p.Selected()
	assert.Equal(t, "木", ch.Word)
	_, _, last = p.Position(list)
	assert.True(t, last)
	assert.False(t, p.Next(list))

	assert.True(t, p.Previous(list))
	ch, _ = p.Selected()
	assert.Equal(t, "女", ch.Word)
}

func TestPanelNavigationNoops(t *testing.T) {
	var p Panel
	assert.False(t, p.Next(results("好")))

	i, first, last := p.Position(results("好"))
	assert.Equal(t, -1, i)
	assert.True(t, first)
	assert.True(t, last)

	p.Select(hanzi.Character{Word: "林"})
	assert.False(t, p.Next(results("好", "女")))
	assert.False(t, p.Previous(results("好", "女")))
	assert.False(t, p.Next(nil))

	ch, _ := p.Selected()
	assert.Equal(t, "林", ch.Word)
}
