package wp

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// Filter tags applied by the post fields.
const (
	FilterTitle   = "the_title"
	FilterContent = "the_content"
	FilterExcerpt = "the_excerpt"
)

// FilterFunc transforms a value on its way to the reader. post is the record
// the value belongs to and must not be modified.
type FilterFunc func(ctx context.Context, value string, post *Post) string

type filter struct {
	priority int
	seq      int
	fn       FilterFunc
}

// Filters holds named filter chains. Within a chain, filters run by ascending
// priority and, for equal priorities, in the order they were added.
type Filters struct {
	mu     sync.RWMutex
	seq    int
	chains map[string][]filter
}

func NewFilters() *Filters {
	return &Filters{chains: make(map[string][]filter)}
}

// DefaultFilters returns the chains a stock site runs: paragraph formatting of
// content and excerpts, and whitespace trimming of titles.
func DefaultFilters() *Filters {
	f := NewFilters()
	f.Add(FilterTitle, 10, func(_ context.Context, v string, _ *Post) string { return strings.TrimSpace(v) })
	f.Add(FilterContent, 10, func(_ context.Context, v string, _ *Post) string { return Autop(v) })
	f.Add(FilterExcerpt, 10, func(_ context.Context, v string, _ *Post) string { return Autop(v) })
	return f
}

func (f *Filters) Add(tag string, priority int, fn FilterFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	chain := append(slices.Clone(f.chains[tag]), filter{priority: priority, seq: f.seq, fn: fn})
	slices.SortStableFunc(chain, func(a, b filter) int {
		if a.priority != b.priority {
			return a.priority - b.priority
		}
		return a.seq - b.seq
	})
	f.chains[tag] = chain
}

// Apply runs the chain registered for tag over value. A nil Filters or an
// empty chain returns value unchanged.
func (f *Filters) Apply(ctx context.Context, tag, value string, post *Post) string {
	if f == nil {
		return value
	}
	f.mu.RLock()
	chain := f.chains[tag]
	f.mu.RUnlock()
	for _, flt := range chain {
		value = flt.fn(ctx, value, post)
	}
	return value
}
