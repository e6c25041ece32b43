// Package element filters and counts characters by their five-element
// classification.
package element

import (
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
)

// Filter keeps the records whose element is in wanted, in input order and
// deduplicated by character. An empty wanted set applies no filter and
// returns records unchanged.
func Filter(records []hanzi.Character, wanted []hanzi.Element, o oracle.Oracle) []hanzi.Character {
	if len(wanted) == 0 {
		return records
	}

	o = oracle.Guard(o)
	want := make(map[hanzi.Element]struct{}, len(wanted))
	for _, e := range wanted {
		want[e] = struct{}{}
	}

	seen := make(map[string]struct{})
	out := []hanzi.Character{}
	for _, rec := range records {
		if _, dup := seen[rec.Word]; dup {
			continue
		}
		e, ok := o.ElementOf(rec.Word)
		if !ok {
			continue
		}
		if _, hit := want[e]; !hit {
			continue
		}
		seen[rec.Word] = struct{}{}
		out = append(out, rec)
	}
	return out
}

// Count returns a histogram over all five elements. Every label is present;
// records without a recognized element are not counted.
func Count(records []hanzi.Character, o oracle.Oracle) map[hanzi.Element]int {
	o = oracle.Guard(o)
	counts := make(map[hanzi.Element]int, 5)
	for _, e := range hanzi.Elements() {
		counts[e] = 0
	}
	for _, rec := range records {
		if e, ok := o.ElementOf(rec.Word); ok {
			counts[e]++
		}
	}
	return counts
}

// Share is one row of a Distribution.
type Share struct {
	Element hanzi.Element
	Count   int
	Percent float64
}

// Distribution is the element histogram of a record set in canonical
// element order, with each count's share of the total record count.
type Distribution struct {
	Total        int
	Classified   int
	Unclassified int
	Shares       []Share
}

// Distribute computes the Distribution of records.
func Distribute(records []hanzi.Character, o oracle.Oracle) Distribution {
	counts := Count(records, o)

	d := Distribution{Total: len(records)}
	for _, e := range hanzi.Elements() {
		n := counts[e]
		d.Classified += n

		var pct float64
		if d.Total > 0 {
			pct = float64(n) * 100 / float64(d.Total)
		}
		d.Shares = append(d.Shares, Share{Element: e, Count: n, Percent: pct})
	}
	d.Unclassified = d.Total - d.Classified
	return d
}
