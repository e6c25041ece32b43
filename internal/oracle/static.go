package oracle

import "github.com/f3rmion/bushou/internal/hanzi"

// Entry is the fixed answer set for one character in a Static oracle.
type Entry struct {
	Radicals  []string
	Element   hanzi.Element
	Strokes   int
	Pinyin    string
	Structure string
}

// Static is a map-backed Oracle with deterministic answers. Characters
// missing from the map get the empty answers.
type Static map[string]Entry

// RadicalsOf returns the entry's radicals.
func (s Static) RadicalsOf(char string) []string { return s[char].Radicals }

// ElementOf returns the entry's element; an empty label counts as none.
func (s Static) ElementOf(char string) (hanzi.Element, bool) {
	e := s[char].Element
	return e, e != ""
}

// StrokeCountOf returns the entry's stroke count.
func (s Static) StrokeCountOf(char string) int { return s[char].Strokes }

// RomanizationOf returns the entry's pinyin.
func (s Static) RomanizationOf(char string) string { return s[char].Pinyin }

// StructureOf returns the entry's structure label.
func (s Static) StructureOf(char string) string { return s[char].Structure }
