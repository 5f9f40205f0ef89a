package pipeline

import (
	"sync"
	"time"

	"github.com/romdo/go-debounce"
)

// Searcher coalesces rapid keystrokes into one search dispatch and tags
// each dispatch with a generation token, so an async completion that lost
// the race can be dropped instead of clobbering newer results.
type Searcher struct {
	mu        sync.Mutex
	term      string
	gen       uint64
	apply     func(term string, gen uint64)
	debounced func()
	cancel    func()
}

// DefaultSearchWait is how long typing has to pause before a search fires.
const DefaultSearchWait = 250 * time.Millisecond

// NewSearcher builds a debounced searcher. apply receives the latest term
// together with its generation token once typing pauses for wait.
func NewSearcher(wait time.Duration, apply func(term string, gen uint64)) *Searcher {
	if wait <= 0 {
		wait = DefaultSearchWait
	}
	s := &Searcher{apply: apply}
	s.debounced, s.cancel = debounce.New(wait, s.fire)
	return s
}

// Type records a keystroke. Each call supersedes the previous term and
// invalidates any in-flight completion.
func (s *Searcher) Type(term string) {
	s.mu.Lock()
	s.term = term
	s.gen++
	s.mu.Unlock()
	s.debounced()
}

// IsCurrent reports whether a completion holding gen is still the latest
// dispatch. Stale completions must be discarded by the caller.
func (s *Searcher) IsCurrent(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.gen
}

// Close cancels any pending dispatch.
func (s *Searcher) Close() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Searcher) fire() {
	s.mu.Lock()
	term, gen := s.term, s.gen
	s.mu.Unlock()
	s.apply(term, gen)
}
