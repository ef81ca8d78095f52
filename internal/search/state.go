// Package search holds the result list of one search session and the rules
// for growing it page by page.
package search

import (
	"slices"

	"hnsearch/internal/domain"
)

// State is the result list of the current session and its request flags.
//
// Page is nil until the first page has been received. IsLoading and
// IsError are never both set once a request has completed.
type State struct {
	Hits      []domain.Hit
	Page      *int
	IsLoading bool
	IsError   bool
}

// CurrentPage returns the last received page
func (s State) CurrentPage() (int, bool) {
	if s.Page == nil {
		return 0, false
	}
	return *s.Page, true
}

// Loading marks a request as in flight. A previous error is cleared so the
// list shows the pending request rather than the old failure.
func (s State) Loading() State {
	s.IsLoading = true
	s.IsError = false
	return s
}

// Replace starts the list over with the first page of a new query
func (s State) Replace(result domain.SearchResult) State {
	page := result.Page
	return State{
		Hits: slices.Clone(result.Hits),
		Page: &page,
	}
}

// Append adds a following page after the hits already received. Hits are
// not deduplicated.
func (s State) Append(result domain.SearchResult) State {
	hits := make([]domain.Hit, 0, len(s.Hits)+len(result.Hits))
	hits = append(hits, s.Hits...)
	hits = append(hits, result.Hits...)
	page := result.Page
	return State{
		Hits: hits,
		Page: &page,
	}
}

// Fail records a failed request; the hits and page stay as they were
func (s State) Fail() State {
	s.IsLoading = false
	s.IsError = true
	return s
}

// Apply picks the transition from the page that was requested, not from
// anything in the response
func (s State) Apply(requestedPage int, result domain.SearchResult) State {
	if requestedPage == 0 {
		return s.Replace(result)
	}
	return s.Append(result)
}
