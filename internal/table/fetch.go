package table

import (
	"context"
	"sync/atomic"
	"time"
)

// Query is one list request: pagination plus whatever filters the screen has
// active. Filters with empty values are dropped by the API layer.
type Query struct {
	Page    int
	Size    int
	Filters map[string]string
}

// Page is a normalized list response.
type Page struct {
	Items         []Record
	TotalPages    int
	TotalElements int
}

// Fetcher performs one list round trip for an entity.
type Fetcher func(ctx context.Context, q Query) (Page, error)

// Cycle serializes the load/refresh round trips for one screen. Every reload
// takes a fresh sequence number; completions carrying a stale number are
// discarded, so a slow superseded request can never overwrite newer rows.
type Cycle struct {
	seq atomic.Uint64
}

// Next claims a new sequence number, superseding all in-flight fetches.
func (c *Cycle) Next() uint64 {
	return c.seq.Add(1)
}

// IsCurrent reports whether seq is still the latest claimed number.
func (c *Cycle) IsCurrent(seq uint64) bool {
	return c.seq.Load() == seq
}

// Query snapshots the state's current pagination and search into a Query.
func (s *State) Query() Query {
	q := Query{Page: s.CurrentPage, Size: s.PageSize, Filters: map[string]string{}}
	if s.SearchTerm != "" && s.SearchField != "" {
		q.Filters[s.SearchField] = s.SearchTerm
	}
	return q
}

// BeginLoad marks a fetch as started: loading on, prior list error cleared.
func (s *State) BeginLoad() {
	s.Loading = true
	s.Err = nil
}

// ApplyPage installs a successful result. Items and page metadata change
// together, so the render layer never sees new totals against old rows.
func (s *State) ApplyPage(p Page) {
	s.Items = p.Items
	s.TotalPages = p.TotalPages
	s.TotalElements = p.TotalElements
	if s.TotalPages > 0 && s.CurrentPage > s.TotalPages-1 {
		s.CurrentPage = s.TotalPages - 1
	}
	s.Loading = false
	s.Err = nil
	s.DeleteErr = nil
}

// ApplyError installs a failed result. Rows already on screen stay put, so a
// failed refresh does not blank a previously good view.
func (s *State) ApplyError(err *FetchError) {
	s.Err = err
	s.Loading = false
}

// ApplyDeleteError records a delete failure without touching the list error.
func (s *State) ApplyDeleteError(err *FetchError) {
	s.DeleteErr = err
}

// DismissError clears the list-load banner.
func (s *State) DismissError() { s.Err = nil }

// DismissDeleteError clears the delete banner.
func (s *State) DismissDeleteError() { s.DeleteErr = nil }

// DefaultFetchTimeout bounds one list round trip so a hung request cannot
// pin the screen in the loading state.
const DefaultFetchTimeout = 15 * time.Second
