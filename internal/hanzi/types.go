// Package hanzi provides the core value types shared by the bushou index and query engine.
package hanzi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownElement = errors.New("unknown element")
	ErrUnknownMode    = errors.New("unknown search mode")
	ErrUnknownSort    = errors.New("unknown sort mode")
)

// Character is one dictionary entry from the chinese-xinhua word corpus.
// Identity is the glyph in Word; all other fields are informational.
type Character struct {
	Word        string `json:"word" yaml:"word"`                     // The character itself (primary key)
	OldWord     string `json:"oldword" yaml:"oldword"`               // Traditional/historical form
	Strokes     string `json:"strokes" yaml:"strokes"`               // Stroke count as published in the corpus
	Pinyin      string `json:"pinyin" yaml:"pinyin"`                 // Romanized pronunciation
	Radicals    string `json:"radicals" yaml:"radicals"`             // Free-text radical annotation, not indexed
	Explanation string `json:"explanation" yaml:"explanation"`       // Definition text
	More        string `json:"more,omitempty" yaml:"more,omitempty"` // Optional extra info
}

// Dedupe returns records with duplicate identities removed, keeping the first occurrence.
func Dedupe(records []Character) []Character {
	seen := make(map[string]struct{}, len(records))
	out := make([]Character, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Word]; ok {
			continue
		}
		seen[r.Word] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Element is one of the five elemental classifications (五行).
type Element string

const (
	Metal Element = "金"
	Wood  Element = "木"
	Water Element = "水"
	Fire  Element = "火"
	Earth Element = "土"
)

var elementOrder = []Element{Metal, Wood, Water, Fire, Earth}

var elementNames = map[Element]string{
	Metal: "metal",
	Wood:  "wood",
	Water: "water",
	Fire:  "fire",
	Earth: "earth",
}

// Elements returns the five labels in their canonical order.
func Elements() []Element {
	out := make([]Element, len(elementOrder))
	copy(out, elementOrder)
	return out
}

// Valid reports whether e is one of the five labels.
func (e Element) Valid() bool {
	_, ok := elementNames[e]
	return ok
}

// Name returns the English name of the element.
func (e Element) Name() string {
	return elementNames[e]
}

// ParseElement accepts either the glyph (木) or the English name (wood).
func ParseElement(s string) (Element, error) {
	s = strings.TrimSpace(s)
	if e := Element(s); e.Valid() {
		return e, nil
	}
	for e, name := range elementNames {
		if strings.EqualFold(s, name) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

// Mode is the combination mode applied to a multi-radical query.
type Mode string

const (
	ModeAnd Mode = "AND" // Intersection
	ModeOr  Mode = "OR"  // Union
)

// ParseMode parses "and"/"or" case-insensitively. Empty input yields ModeOr.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "OR":
		return ModeOr, nil
	case "AND":
		return ModeAnd, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// SortMode orders a result collection.
type SortMode string

const (
	SortDefault    SortMode = "default"     // Pipeline order
	SortStrokeAsc  SortMode = "stroke-asc"  // Fewest strokes first
	SortStrokeDesc SortMode = "stroke-desc" // Most strokes first
	SortPinyinAsc  SortMode = "pinyin-asc"  // Collated pinyin, A→Z
	SortPinyinDesc SortMode = "pinyin-desc" // Collated pinyin, Z→A
)

var sortModes = []SortMode{SortDefault, SortStrokeAsc, SortStrokeDesc, SortPinyinAsc, SortPinyinDesc}

// SortModes returns every sort mode in display order.
func SortModes() []SortMode {
	out := make([]SortMode, len(sortModes))
	copy(out, sortModes)
	return out
}

// Next cycles to the following sort mode, wrapping around.
func (s SortMode) Next() SortMode {
	for i, m := range sortModes {
		if m == s {
			return sortModes[(i+1)%len(sortModes)]
		}
	}
	return SortDefault
}

// ParseSortMode parses a sort mode name. Empty input yields SortDefault.
func ParseSortMode(s string) (SortMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return SortDefault, nil
	}
	for _, m := range sortModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSort, s)
}
