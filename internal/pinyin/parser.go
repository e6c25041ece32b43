// Package pinyin handles pinyin lookup for single characters.
package pinyin

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Parser handles pinyin conversion.
type Parser struct {
	toned    gopinyin.Args
	toneless gopinyin.Args
}

// NewParser creates a new pinyin parser.
func NewParser() *Parser {
	toned := gopinyin.NewArgs()
	toned.Style = gopinyin.Tone // Returns tone marks: zhōng
	toned.Heteronym = true      // Return all possible readings

	toneless := gopinyin.NewArgs()
	toneless.Style = gopinyin.Normal // zhong
	toneless.Heteronym = true

	return &Parser{toned: toned, toneless: toneless}
}

// GetPinyin returns all tone-marked readings for a character.
func (p *Parser) GetPinyin(char string) []string {
	result := gopinyin.Pinyin(char, p.toned)
	if len(result) == 0 {
		return nil
	}
	return result[0]
}

// Primary returns the first tone-marked reading, or "" when the character
// has none.
func (p *Parser) Primary(char string) string {
	readings := p.GetPinyin(char)
	if len(readings) == 0 {
		return ""
	}
	return readings[0]
}

// Spell returns every toneless lowercase reading of char joined together,
// which is what the radical picker filter matches against.
func (p *Parser) Spell(char string) string {
	result := gopinyin.Pinyin(char, p.toneless)
	if len(result) == 0 {
		return ""
	}
	return strings.ToLower(strings.Join(result[0], ""))
}

// StripTones removes tone marks from a pinyin syllable (hǎo -> hao, lǜ -> lü).
func StripTones(s string) string {
	var b strings.Builder
	for _, r := range s {
		if base, ok := toneMarks[r]; ok {
			b.WriteRune(base)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var toneMarks = map[rune]rune{
	'ā': 'a', 'á': 'a', 'ǎ': 'a', 'à': 'a',
	'ē': 'e', 'é': 'e', 'ě': 'e', 'è': 'e',
	'ī': 'i', 'í': 'i', 'ǐ': 'i', 'ì': 'i',
	'ō': 'o', 'ó': 'o', 'ǒ': 'o', 'ò': 'o',
	'ū': 'u', 'ú': 'u', 'ǔ': 'u', 'ù': 'u',
	'ǖ': 'ü', 'ǘ': 'ü', 'ǚ': 'ü', 'ǜ': 'ü',
}
