// Package search holds the selection state behind a radical/element query
// and the pipeline that derives its results.
package search

import (
	"context"
	"fmt"
	"sort"

	"github.com/f3rmion/bushou/internal/element"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
	"github.com/f3rmion/bushou/internal/oracle"
	"github.com/f3rmion/bushou/internal/radical"
)

// Corpus returns the full deduplicated record set, empty on failure.
// corpus.Loader satisfies it.
type Corpus interface {
	Load(ctx context.Context) []hanzi.Character
}

// Index answers radical queries. radical.Builder satisfies it.
type Index interface {
	Search(ctx context.Context, radicals []string, mode hanzi.Mode) ([]hanzi.Character, error)
	AllRadicals(ctx context.Context) ([]string, error)
}

// Deps are the collaborators a query needs.
type Deps struct {
	Corpus Corpus
	Index  Index
	Oracle oracle.Oracle
}

// State is one snapshot of the selection and its derived results.
// Radicals and Elements are insertion-ordered sets.
type State struct {
	Radicals []string
	Elements []hanzi.Element
	Mode     hanzi.Mode
	Sort     hanzi.SortMode
	Results  []hanzi.Character
}

// HasRadical reports whether r is selected.
func (s State) HasRadical(r string) bool {
	return indexOf(s.Radicals, r) >= 0
}

// HasElement reports whether e is selected.
func (s State) HasElement(e hanzi.Element) bool {
	return indexOf(s.Elements, e) >= 0
}

// Empty reports whether nothing is selected.
func (s State) Empty() bool {
	return len(s.Radicals) == 0 && len(s.Elements) == 0
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	out := s
	out.Radicals = append([]string(nil), s.Radicals...)
	out.Elements = append([]hanzi.Element(nil), s.Elements...)
	out.Results = append([]hanzi.Character{}, s.Results...)
	return out
}

// Recompute derives the results for s's selection:
//
//   - nothing selected: no results
//   - radicals selected: radical search under s.Mode, else the whole corpus
//   - then the element filter, then the sort
//
// Any failure along the way is logged and yields empty results.
func Recompute(ctx context.Context, s State, d Deps) (out State) {
	out = s.Clone()
	out.Results = []hanzi.Character{}
	if s.Empty() {
		return out
	}

	defer func() {
		if r := recover(); r != nil {
			logging.Error("Query pipeline failed", "radicals", s.Radicals, "elements", s.Elements, "error", fmt.Sprint(r))
			out.Results = []hanzi.Character{}
		}
	}()

	var base []hanzi.Character
	if len(s.Radicals) > 0 {
		found, err := d.Index.Search(ctx, s.Radicals, s.Mode)
		if err != nil {
			logging.Error("Radical search failed", "radicals", s.Radicals, "mode", s.Mode, "error", err)
			return out
		}
		base = found
	} else {
		base = d.Corpus.Load(ctx)
	}

	filtered := element.Filter(base, s.Elements, d.Oracle)
	out.Results = ApplySort(filtered, s.Sort, d.Oracle)
	return out
}

// ApplySort returns a stably sorted copy of results. Stroke modes compare
// the oracle's stroke counts; pinyin modes compare the record's pinyin
// (or the oracle's romanization when the record has none) with Chinese
// collation.
func ApplySort(results []hanzi.Character, mode hanzi.SortMode, o oracle.Oracle) []hanzi.Character {
	out := make([]hanzi.Character, len(results))
	copy(out, results)
	o = oracle.Guard(o)

	switch mode {
	case hanzi.SortStrokeAsc, hanzi.SortStrokeDesc:
		strokes := make(map[string]int, len(out))
		for _, rec := range out {
			strokes[rec.Word] = o.StrokeCountOf(rec.Word)
		}
		desc := mode == hanzi.SortStrokeDesc
		sort.SliceStable(out, func(i, j int) bool {
			a, b := strokes[out[i].Word], strokes[out[j].Word]
			if desc {
				return a > b
			}
			return a < b
		})

	case hanzi.SortPinyinAsc, hanzi.SortPinyinDesc:
		keys := make(map[string]string, len(out))
		for _, rec := range out {
			keys[rec.Word] = romanization(rec, o)
		}
		compare := radical.Comparer()
		desc := mode == hanzi.SortPinyinDesc
		sort.SliceStable(out, func(i, j int) bool {
			c := compare(keys[out[i].Word], keys[out[j].Word])
			if desc {
				return c > 0
			}
			return c < 0
		})
	}
	return out
}

func romanization(rec hanzi.Character, o oracle.Oracle) string {
	if rec.Pinyin != "" {
		return rec.Pinyin
	}
	return o.RomanizationOf(rec.Word)
}

func indexOf[T comparable](set []T, v T) int {
	for i, x := range set {
		if x == v {
			return i
		}
	}
	return -1
}

// toggle returns a copy of set with v removed if present, else appended.
func toggle[T comparable](set []T, v T) []T {
	out := make([]T, 0, len(set)+1)
	if i := indexOf(set, v); i >= 0 {
		out = append(out, set[:i]...)
		return append(out, set[i+1:]...)
	}
	out = append(out, set...)
	return append(out, v)
}
