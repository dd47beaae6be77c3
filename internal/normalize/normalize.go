// Package normalize canonicalizes text for accent- and case-insensitive matching.
package normalize

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the Combining Diacritical Marks block.
var combiningMarks = runes.Predicate(func(r rune) bool {
	return r >= 0x0300 && r <= 0x036f
})

// Transformers and casers carry state, so each goroutine borrows its own.
var pool = sync.Pool{
	New: func() any {
		return transform.Chain(norm.NFD, runes.Remove(combiningMarks), cases.Lower(language.Und))
	},
}

// Text decomposes s, strips combining diacritics and lower-cases the result.
// Text(Text(s)) == Text(s) for every s.
func Text(s string) string {
	if s == "" {
		return s
	}
	t := pool.Get().(transform.Transformer)
	defer pool.Put(t)

	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
