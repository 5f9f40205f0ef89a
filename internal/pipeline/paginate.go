package pipeline

// PageWindow is the derived pagination state over a filtered collection.
// It is recomputed whenever the filtered set changes and never persisted.
type PageWindow struct {
	CurrentPage  int // 1-based
	ItemsPerPage int
	TotalItems   int
}

// TotalPages is ceil(TotalItems/ItemsPerPage), never less than 1: an empty
// collection still renders as a single empty page rather than an error.
func (w PageWindow) TotalPages() int {
	if w.ItemsPerPage <= 0 {
		return 1
	}
	pages := (w.TotalItems + w.ItemsPerPage - 1) / w.ItemsPerPage
	if pages < 1 {
		return 1
	}
	return pages
}

// Slice returns the visible window of src. Out-of-range pages yield an
// empty window, not an error.
func Slice[T any](src []T, w PageWindow) []T {
	if w.ItemsPerPage <= 0 || w.CurrentPage < 1 {
		return nil
	}
	start := (w.CurrentPage - 1) * w.ItemsPerPage
	if start >= len(src) {
		return nil
	}
	end := start + w.ItemsPerPage
	if end > len(src) {
		end = len(src)
	}
	return src[start:end]
}

// Controls is the bounded page-number strip: at most maxVisible numbered
// buttons centered on the current page, with first/last anchors and
// ellipsis markers when the strip does not touch the edges.
type Controls struct {
	Pages         []int
	ShowFirst     bool
	FirstEllipsis bool
	ShowLast      bool
	LastEllipsis  bool
	StartItem     int // 1-based index of the first visible item
	EndItem       int // 1-based index of the last visible item
}

// Controls computes the page-number strip for the window.
func (w PageWindow) Controls(maxVisible int) Controls {
	var c Controls
	totalPages := w.TotalPages()
	if totalPages <= 1 {
		return c
	}
	if maxVisible < 1 {
		maxVisible = 1
	}

	c.StartItem = (w.CurrentPage-1)*w.ItemsPerPage + 1
	c.EndItem = min(w.CurrentPage*w.ItemsPerPage, w.TotalItems)

	start := max(1, w.CurrentPage-maxVisible/2)
	end := min(totalPages, start+maxVisible-1)
	if end-start+1 < maxVisible {
		start = max(1, end-maxVisible+1)
	}
	for i := start; i <= end; i++ {
		c.Pages = append(c.Pages, i)
	}

	c.ShowFirst = start > 1
	c.FirstEllipsis = start > 2
	c.ShowLast = end < totalPages
	c.LastEllipsis = end < totalPages-1
	return c
}
