// Package pipeline implements the list presentation pipeline shared by every
// list screen: predicate composition over a fetched collection, stable
// sorting, and windowed pagination. The same parameterized pipeline serves
// blogs, formations, portfolio entries, reservations and the request queues.
package pipeline

import (
	"sort"
	"strings"
)

// Predicate reports whether an item satisfies one active criterion.
type Predicate[T any] func(T) bool

// Criteria combines a free-text search term with named categorical
// selectors. All active criteria must hold (logical AND); within the term,
// any searchable field may match (case-insensitive substring). Blank or
// absent criteria do not filter.
type Criteria[T any] struct {
	term      string
	fields    func(T) []string
	selectors map[string]Predicate[T]
}

// NewCriteria builds an empty criteria set. fields extracts the textual
// fields the free-text term is matched against; nil disables text search.
func NewCriteria[T any](fields func(T) []string) *Criteria[T] {
	return &Criteria[T]{fields: fields, selectors: make(map[string]Predicate[T])}
}

// SetTerm sets the free-text search term. Blank terms match everything.
func (c *Criteria[T]) SetTerm(term string) {
	c.term = strings.TrimSpace(term)
}

// Term returns the active search term.
func (c *Criteria[T]) Term() string { return c.term }

// SetSelector activates a named categorical selector; a nil predicate
// removes it.
func (c *Criteria[T]) SetSelector(name string, pred Predicate[T]) {
	if pred == nil {
		delete(c.selectors, name)
		return
	}
	c.selectors[name] = pred
}

// ClearSelector removes a named selector.
func (c *Criteria[T]) ClearSelector(name string) {
	delete(c.selectors, name)
}

// Matches reports whether one item satisfies every active criterion.
func (c *Criteria[T]) Matches(item T) bool {
	for _, pred := range c.selectors {
		if !pred(item) {
			return false
		}
	}
	if c.term == "" || c.fields == nil {
		return true
	}
	needle := strings.ToLower(c.term)
	for _, field := range c.fields(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Apply filters the source collection. The result is a fresh slice; the
// source is never mutated and an empty result is a valid state.
func (c *Criteria[T]) Apply(src []T) []T {
	out := make([]T, 0, len(src))
	for _, item := range src {
		if c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// LessFunc is a strict-weak ordering over items.
type LessFunc[T any] func(a, b T) bool

// SortStable orders items in place with a stable sort, so equal keys keep
// their pre-sort relative order. A nil less is a no-op.
func SortStable[T any](items []T, less LessFunc[T]) {
	if less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		return less(items[i], items[j])
	})
}
