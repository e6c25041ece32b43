// Package decomp handles Chinese character decomposition using Make Me a Hanzi data.
package decomp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// DictionaryEntry represents a single entry from Make Me a Hanzi dictionary.txt.
type DictionaryEntry struct {
	Character     string     `json:"character"`
	Definition    string     `json:"definition"`
	Pinyin        []string   `json:"pinyin"`
	Decomposition string     `json:"decomposition"`
	Etymology     *Etymology `json:"etymology,omitempty"`
	Radical       string     `json:"radical"`
	Matches       []any      `json:"matches,omitempty"` // One entry per stroke
}

// Etymology from Make Me a Hanzi.
type Etymology struct {
	Type     string `json:"type"`               // pictophonetic, pictographic, ideographic
	Semantic string `json:"semantic,omitempty"` // meaning component
	Phonetic string `json:"phonetic,omitempty"` // sound component
	Hint     string `json:"hint,omitempty"`
}

// StrokeCount is the number of strokes, taken from the per-stroke match list.
func (e *DictionaryEntry) StrokeCount() int {
	return len(e.Matches)
}

// Radicals returns the Kangxi radical followed by the decomposition's
// components, without duplicates.
func (e *DictionaryEntry) Radicals() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if s == "" || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, s)
	}

	add(e.Radical)
	for _, c := range ExtractComponents(e.Decomposition) {
		add(c)
	}
	return out
}

// Dictionary holds all character data keyed by glyph.
type Dictionary struct {
	entries map[string]*DictionaryEntry
}

// NewDictionary creates an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{
		entries: make(map[string]*DictionaryEntry),
	}
}

// LoadFromFile loads the dictionary from a Make Me a Hanzi dictionary.txt file.
func (d *Dictionary) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening dictionary file: %w", err)
	}
	defer file.Close()

	return d.Load(file)
}

// Load reads one JSON object per line. Malformed lines are skipped.
func (d *Dictionary) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var entry DictionaryEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.Character == "" {
			continue
		}

		d.entries[entry.Character] = &entry
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading dictionary file: %w", err)
	}

	return nil
}

// Add inserts or replaces an entry.
func (d *Dictionary) Add(entry *DictionaryEntry) {
	d.entries[entry.Character] = entry
}

// Lookup returns the dictionary entry for a character, or nil.
func (d *Dictionary) Lookup(char string) *DictionaryEntry {
	return d.entries[char]
}

// Size returns the number of entries in the dictionary.
func (d *Dictionary) Size() int {
	return len(d.entries)
}

// IDS (Ideographic Description Sequence) operators and the structure
// label each one implies.
var idsChars = map[rune]string{
	'⿰': "左右结构",
	'⿱': "上下结构",
	'⿲': "左中右结构",
	'⿳': "上中下结构",
	'⿴': "全包围结构",
	'⿵': "上三包围结构",
	'⿶': "下三包围结构",
	'⿷': "左三包围结构",
	'⿸': "左上包围结构",
	'⿹': "右上包围结构",
	'⿺': "左下包围结构",
	'⿻': "镶嵌结构",
}

// ExtractComponents extracts the component characters from an IDS decomposition string.
func ExtractComponents(decomposition string) []string {
	if decomposition == "" || decomposition == "？" {
		return nil
	}

	var components []string
	for _, r := range decomposition {
		if _, isIDS := idsChars[r]; isIDS {
			continue
		}
		if r == '？' {
			continue
		}
		if unicode.Is(unicode.Han, r) || isRadicalChar(r) {
			components = append(components, string(r))
		}
	}

	return components
}

// isRadicalChar checks if a rune is in the CJK Radicals Supplement or Kangxi Radicals blocks.
func isRadicalChar(r rune) bool {
	return (r >= 0x2E80 && r <= 0x2EFF) || (r >= 0x2F00 && r <= 0x2FDF)
}

// Structure returns the structure label of the outermost IDS operator,
// "独体字" for a single-component character and "" when unknown.
func Structure(decomposition string) string {
	if decomposition == "" || decomposition == "？" {
		return ""
	}

	for _, r := range decomposition {
		if desc, ok := idsChars[r]; ok {
			return desc
		}
	}

	return "独体字"
}

// FormatDecomposition returns a human-readable decomposition description.
func FormatDecomposition(decomposition string) string {
	components := ExtractComponents(decomposition)
	if len(components) == 0 {
		return "No decomposition available"
	}

	return fmt.Sprintf("%s: %s", Structure(decomposition), strings.Join(components, " + "))
}
