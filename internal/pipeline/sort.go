package pipeline

import (
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collator used for alphabetical ordering. The site is French-first, so
// accented titles sort the way a French reader expects.
var frCollator = collate.New(language.French, collate.Loose)

// Alphabetical orders items by a string key with locale-aware comparison.
func Alphabetical[T any](key func(T) string) LessFunc[T] {
	return func(a, b T) bool {
		return frCollator.CompareString(key(a), key(b)) < 0
	}
}

// Newest orders items by a date key, most recent first.
func Newest[T any](key func(T) time.Time) LessFunc[T] {
	return func(a, b T) bool {
		return key(a).After(key(b))
	}
}

// ByRank orders items by an integer rank key, lowest rank first. Used for
// derived categorical keys such as content type (video before image before
// plain text).
func ByRank[T any](rank func(T) int) LessFunc[T] {
	return func(a, b T) bool {
		return rank(a) < rank(b)
	}
}
