// Package detail derives the metadata shown for a single selected character
// and tracks the selection as the user steps through a result list.
package detail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/oracle"
)

// Unknown is shown for metadata the oracle can't supply.
const Unknown = "未知"

// Radical is one component of a character with its own stroke count.
type Radical struct {
	Glyph   string
	Strokes int
}

// Info is everything the detail view shows for one character.
type Info struct {
	Character  hanzi.Character
	Pinyin     string
	Strokes    int
	Element    hanzi.Element
	HasElement bool
	Structure  string
	Radicals   []Radical
}

// Describe collects ch's metadata. Pinyin prefers the corpus reading, and
// the stroke count falls back to the corpus value when the oracle has none.
func Describe(ch hanzi.Character, o oracle.Oracle) Info {
	o = oracle.Guard(o)

	info := Info{
		Character: ch,
		Pinyin:    ch.Pinyin,
		Strokes:   o.StrokeCountOf(ch.Word),
		Structure: o.StructureOf(ch.Word),
	}
	if info.Pinyin == "" {
		info.Pinyin = o.RomanizationOf(ch.Word)
	}
	if info.Strokes == 0 {
		if n, err := strconv.Atoi(strings.TrimSpace(ch.Strokes)); err == nil && n > 0 {
			info.Strokes = n
		}
	}
	info.Element, info.HasElement = o.ElementOf(ch.Word)

	for _, r := range o.RadicalsOf(ch.Word) {
		info.Radicals = append(info.Radicals, Radical{Glyph: r, Strokes: o.StrokeCountOf(r)})
	}
	return info
}

// RadicalSummary renders the radicals as 女(3画)、子(3画), or 未知.
func (i Info) RadicalSummary() string {
	if len(i.Radicals) == 0 {
		return Unknown
	}
	parts := make([]string, len(i.Radicals))
	for n, r := range i.Radicals {
		parts[n] = fmt.Sprintf("%s(%d画)", r.Glyph, r.Strokes)
	}
	return strings.Join(parts, "、")
}

// ElementLabel returns the element glyph, or 未知.
func (i Info) ElementLabel() string {
	if !i.HasElement {
		return Unknown
	}
	return string(i.Element)
}

// Panel is the open/closed state of the detail view.
type Panel struct {
	selected *hanzi.Character
}

// Select opens the panel on ch.
func (p *Panel) Select(ch hanzi.Character) {
	p.selected = &ch
}

// Clear closes the panel.
func (p *Panel) Clear() {
	p.selected = nil
}

// IsOpen reports whether a character is selected.
func (p *Panel) IsOpen() bool {
	return p.selected != nil
}

// Selected returns the selected character.
func (p *Panel) Selected() (hanzi.Character, bool) {
	if p.selected == nil {
		return hanzi.Character{}, false
	}
	return *p.selected, true
}

// Position locates the selection in results. index is -1 when nothing is
// selected or the selection isn't in results; first and last are then both
// true so navigation in either direction is disabled.
func (p *Panel) Position(results []hanzi.Character) (index int, first, last bool) {
	if p.selected == nil || len(results) == 0 {
		return -1, true, true
	}
	index = -1
	for i, r := range results {
		if r.Word == p.selected.Word {
			index = i
			break
		}
	}
	return index, index <= 0, index < 0 || index >= len(results)-1
}

// Previous moves the selection one step back in results. It does nothing at
// the start of the list or when the selection isn't in it.
func (p *Panel) Previous(results []hanzi.Character) bool {
	i, first, _ := p.Position(results)
	if i < 0 || first {
		return false
	}
	p.Select(results[i-1])
	return true
}

// Next moves the selection one step forward in results.
func (p *Panel) Next(results []hanzi.Character) bool {
	i, _, last := p.Position(results)
	if i < 0 || last {
		return false
	}
	p.Select(results[i+1])
	return true
}
