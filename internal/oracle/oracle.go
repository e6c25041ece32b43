// Package oracle defines the per-character linguistics capability the index
// and query engine consume, plus the production adapter built on the Make Me
// a Hanzi dictionary, go-pinyin and the five-element table.
package oracle

import (
	"fmt"

	"github.com/f3rmion/bushou/internal/hanzi"
	"github.com/f3rmion/bushou/internal/logging"
)

// Oracle answers questions about a single character glyph.
// Implementations may panic; wrap them with Guard before use.
type Oracle interface {
	RadicalsOf(char string) []string
	ElementOf(char string) (hanzi.Element, bool)
	StrokeCountOf(char string) int
	RomanizationOf(char string) string
	StructureOf(char string) string
}

// Guard wraps o so that every call recovers from panics, logs them and
// returns the documented empty value (nil, none, 0, "").
func Guard(o Oracle) Oracle {
	if g, ok := o.(guarded); ok {
		return g
	}
	return guarded{inner: o}
}

type guarded struct {
	inner Oracle
}

func recovered(op, char string) {
	if r := recover(); r != nil {
		logging.Warn("oracle call failed", "op", op, "char", char, "error", fmt.Sprint(r))
	}
}

func (g guarded) RadicalsOf(char string) (out []string) {
	defer recovered("radicals", char)
	return g.inner.RadicalsOf(char)
}

func (g guarded) ElementOf(char string) (e hanzi.Element, ok bool) {
	defer recovered("element", char)
	e, ok = g.inner.ElementOf(char)
	if !ok || !e.Valid() {
		return "", false
	}
	return e, true
}

func (g guarded) StrokeCountOf(char string) (n int) {
	defer recovered("strokes", char)
	n = g.inner.StrokeCountOf(char)
	if n < 0 {
		return 0
	}
	return n
}

func (g guarded) RomanizationOf(char string) (s string) {
	defer recovered("romanization", char)
	return g.inner.RomanizationOf(char)
}

func (g guarded) StructureOf(char string) (s string) {
	defer recovered("structure", char)
	return g.inner.StructureOf(char)
}
