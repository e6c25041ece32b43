package radical

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation order for glyphs and pinyin. A Collator is not safe for
// concurrent use, so each call builds its own.
var collationTag = language.SimplifiedChinese

func newCollator() *collate.Collator {
	return collate.New(collationTag)
}

// SortStrings sorts ss in place using Chinese collation rather than code
// point order.
func SortStrings(ss []string) {
	newCollator().SortStrings(ss)
}

// Comparer returns a three-way string comparison using Chinese collation.
// The returned function must not be shared between goroutines.
func Comparer() func(a, b string) int {
	c := newCollator()
	return c.CompareString
}
