// Package radical builds the radical → characters index and answers
// AND/OR queries over it.
package radical

import (
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
)

// Index maps a radical glyph to the characters containing it, in corpus
// order. A character appears under every radical the oracle decomposes it
// into; characters with no radicals are not indexed. Immutable once built.
type Index struct {
	buckets  map[string][]hanzi.Character
	members  map[string]map[string]struct{}
	radicals []string
}

// BuildIndex indexes records using the oracle's radical decomposition.
func BuildIndex(records []hanzi.Character, o oracle.Oracle) *Index {
	o = oracle.Guard(o)
	idx := &Index{
		buckets: make(map[string][]hanzi.Character),
		members: make(map[string]map[string]struct{}),
	}

	for _, rec := range records {
		for _, r := range o.RadicalsOf(rec.Word) {
			if r == "" {
				continue
			}
			set, ok := idx.members[r]
			if !ok {
				set = make(map[string]struct{})
				idx.members[r] = set
			}
			// A decomposition listing the same radical twice still indexes once.
			if _, dup := set[rec.Word]; dup {
				continue
			}
			set[rec.Word] = struct{}{}
			idx.buckets[r] = append(idx.buckets[r], rec)
		}
	}

	keys := make([]string, 0, len(idx.buckets))
	for k := range idx.buckets {
		keys = append(keys, k)
	}
	SortStrings(keys)
	idx.radicals = keys

	return idx
}

// Bucket returns the characters indexed under radical, or nil when the
// radical never occurs in the corpus.
func (idx *Index) Bucket(radical string) []hanzi.Character {
	return idx.buckets[radical]
}

// Contains reports whether char is indexed under radical.
func (idx *Index) Contains(radical, char string) bool {
	_, ok := idx.members[radical][char]
	return ok
}

// Radicals returns every indexed radical in collated order.
func (idx *Index) Radicals() []string {
	out := make([]string, len(idx.radicals))
	copy(out, idx.radicals)
	return out
}

// Len returns the number of distinct radicals.
func (idx *Index) Len() int {
	return len(idx.buckets)
}

// Search returns the characters matching radicals under mode.
//
// No radicals matches nothing. OR is the deduplicated union in
// first-encountered order. AND keeps the first radical's bucket order,
// retaining only characters present under every other radical; with a
// single radical that is the bucket itself. Unknown radicals act as
// empty buckets.
func (idx *Index) Search(radicals []string, mode hanzi.Mode) []hanzi.Character {
	if len(radicals) == 0 {
		return []hanzi.Character{}
	}

	if mode == hanzi.ModeAnd {
		return idx.intersect(radicals)
	}
	return idx.union(radicals)
}

func (idx *Index) union(radicals []string) []hanzi.Character {
	seen := make(map[string]struct{})
	results := []hanzi.Character{}
	for _, r := range radicals {
		for _, ch := range idx.buckets[r] {
			if _, ok := seen[ch.Word]; ok {
				continue
			}
			seen[ch.Word] = struct{}{}
			results = append(results, ch)
		}
	}
	return results
}

func (idx *Index) intersect(radicals []string) []hanzi.Character {
	first := idx.buckets[radicals[0]]
	if len(radicals) == 1 {
		out := make([]hanzi.Character, len(first))
		copy(out, first)
		return out
	}

	results := []hanzi.Character{}
	for _, ch := range first {
		keep := true
		for _, r := range radicals[1:] {
			if !idx.Contains(r, ch.Word) {
				keep = false
				break
			}
		}
		if keep {
			results = append(results, ch)
		}
	}
	return results
}
