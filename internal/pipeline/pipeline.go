package pipeline

// Pipeline composes filtering, sorting and pagination over one fetched
// collection. Every list screen owns one; the source is replaced on each
// refetch and everything derived is recomputed from it.
//
// Any criterion change (term, selector or sort key) resets to page 1.
// Sorting always runs after filtering.
type Pipeline[T any] struct {
	source   []T
	criteria *Criteria[T]
	less     LessFunc[T]
	page     int
	pageSize int

	filtered []T
	dirty    bool
}

// View is the renderable output of a pipeline pass.
type View[T any] struct {
	Items  []T
	Window PageWindow
}

// New builds a pipeline with the given page size. fields extracts the
// text-searchable fields; nil disables free-text search.
func New[T any](pageSize int, fields func(T) []string) *Pipeline[T] {
	return &Pipeline[T]{
		criteria: NewCriteria(fields),
		page:     1,
		pageSize: pageSize,
		dirty:    true,
	}
}

// SetSource replaces the backing collection, keeping the current page so a
// post-save refetch does not yank the user back to page 1.
func (p *Pipeline[T]) SetSource(items []T) {
	p.source = items
	p.dirty = true
}

// SetTerm updates the search term and resets to page 1.
func (p *Pipeline[T]) SetTerm(term string) {
	p.criteria.SetTerm(term)
	p.page = 1
	p.dirty = true
}

// Term returns the active search term.
func (p *Pipeline[T]) Term() string { return p.criteria.Term() }

// SetFilter activates (or, with a nil predicate, removes) a named selector
// and resets to page 1.
func (p *Pipeline[T]) SetFilter(name string, pred Predicate[T]) {
	p.criteria.SetSelector(name, pred)
	p.page = 1
	p.dirty = true
}

// SetSort sets the comparator and resets to page 1. A nil comparator keeps
// original collection order.
func (p *Pipeline[T]) SetSort(less LessFunc[T]) {
	p.less = less
	p.page = 1
	p.dirty = true
}

// Page returns the current 1-based page.
func (p *Pipeline[T]) Page() int { return p.page }

// PageSize returns the window size.
func (p *Pipeline[T]) PageSize() int { return p.pageSize }

// GoToPage moves to the requested page. Requests outside [1, TotalPages]
// are ignored so a shrinking collection cannot trigger a feedback loop.
// It reports whether the page changed.
func (p *Pipeline[T]) GoToPage(page int) bool {
	total := p.window().TotalPages()
	if page < 1 || page > total || page == p.page {
		return false
	}
	p.page = page
	return true
}

// NextPage advances one page when possible.
func (p *Pipeline[T]) NextPage() bool { return p.GoToPage(p.page + 1) }

// PrevPage steps back one page when possible.
func (p *Pipeline[T]) PrevPage() bool { return p.GoToPage(p.page - 1) }

// StepBackIfEmpty steps back one page when the current window is empty and
// we are past page 1; applied after a delete empties the tail page.
func (p *Pipeline[T]) StepBackIfEmpty() {
	for p.page > 1 && len(Slice(p.run(), p.window())) == 0 {
		p.page--
	}
}

// View runs the pipeline: filter, then stable sort, then slice.
func (p *Pipeline[T]) View() View[T] {
	filtered := p.run()
	window := p.window()
	return View[T]{Items: Slice(filtered, window), Window: window}
}

// Filtered returns the full filtered and sorted collection.
func (p *Pipeline[T]) Filtered() []T {
	return p.run()
}

func (p *Pipeline[T]) run() []T {
	if p.dirty {
		p.filtered = p.criteria.Apply(p.source)
		SortStable(p.filtered, p.less)
		p.dirty = false
	}
	return p.filtered
}

func (p *Pipeline[T]) window() PageWindow {
	return PageWindow{
		CurrentPage:  p.page,
		ItemsPerPage: p.pageSize,
		TotalItems:   len(p.run()),
	}
}
