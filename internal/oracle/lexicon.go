package oracle

import (
	"github.com/f3rmion/bushou/internal/config"
	"github.com/f3rmion/bushou/internal/decomp"
	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/pinyin"
)

// Lexicon is the production Oracle.
//
// Radicals, strokes and structure come from the Make Me a Hanzi dictionary;
// romanization comes from go-pinyin; the element comes from the explicit
// character table, falling back to the first of the character's radicals
// (or the character itself) listed in the radical table.
type Lexicon struct {
	dict     *decomp.Dictionary
	parser   *pinyin.Parser
	elements *config.ElementTable
}

// NewLexicon builds a Lexicon. Nil arguments are replaced with an empty
// dictionary and the built-in element table.
func NewLexicon(dict *decomp.Dictionary, elements *config.ElementTable) *Lexicon {
	if dict == nil {
		dict = decomp.NewDictionary()
	}
	if elements == nil {
		elements = config.DefaultElements()
	}
	return &Lexicon{
		dict:     dict,
		parser:   pinyin.NewParser(),
		elements: elements,
	}
}

// RadicalsOf returns the dictionary radical plus the IDS components.
func (l *Lexicon) RadicalsOf(char string) []string {
	entry := l.dict.Lookup(char)
	if entry == nil {
		return nil
	}
	return entry.Radicals()
}

// ElementOf classifies char into one of the five elements.
func (l *Lexicon) ElementOf(char string) (hanzi.Element, bool) {
	if e, ok := l.elements.Characters[char]; ok {
		return e, true
	}
	if e, ok := l.elements.Radicals[char]; ok {
		return e, true
	}
	for _, r := range l.RadicalsOf(char) {
		if e, ok := l.elements.Radicals[r]; ok {
			return e, true
		}
	}
	return "", false
}

// StrokeCountOf returns the stroke count, or 0 when the dictionary lacks char.
func (l *Lexicon) StrokeCountOf(char string) int {
	entry := l.dict.Lookup(char)
	if entry == nil {
		return 0
	}
	return entry.StrokeCount()
}

// RomanizationOf returns the primary tone-marked pinyin reading.
func (l *Lexicon) RomanizationOf(char string) string {
	return l.parser.Primary(char)
}

// StructureOf returns a structure label such as 左右结构.
func (l *Lexicon) StructureOf(char string) string {
	entry := l.dict.Lookup(char)
	if entry == nil {
		return ""
	}
	return decomp.Structure(entry.Decomposition)
}

// Spell returns the toneless reading used by the radical picker filter.
func (l *Lexicon) Spell(char string) string {
	return l.parser.Spell(char)
}
