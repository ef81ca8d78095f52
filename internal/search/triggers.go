package search

import "errors"

// Reasons a trigger did not issue a request. None of them change state.
var (
	ErrEmptyQuery    = errors.New("search: empty query")
	ErrNoPage        = errors.New("search: no page loaded yet")
	ErrBusy          = errors.New("search: request already in flight")
	ErrNoResults     = errors.New("search: no results to continue from")
	ErrInError       = errors.New("search: last request failed")
	ErrNotNearBottom = errors.New("search: not near the bottom")
	ErrNothingFailed = errors.New("search: no failed request to retry")
	ErrOtherQuery    = errors.New("search: page requested for another query")
	ErrLastPage      = errors.New("search: last page already loaded")
)

// Viewport describes the scroll position of the result list. Units only
// need to agree with each other: pixels in a browser, rows in a terminal.
type Viewport struct {
	Height   int // visible extent
	Offset   int // distance scrolled from the top
	Document int // total extent of the content
}

// NearBottom reports whether the visible part of the list ends within
// threshold of the end of the document
func NearBottom(vp Viewport, threshold int) bool {
	return vp.Height+vp.Offset >= vp.Document-threshold
}

// CanLoadMore reports whether a scroll observation may issue the next page
func (s State) CanLoadMore() error {
	switch {
	case s.IsLoading:
		return ErrBusy
	case s.IsError:
		return ErrInError
	case len(s.Hits) == 0:
		return ErrNoResults
	case s.Page == nil:
		return ErrNoPage
	}
	return nil
}

// ShowMore reports whether the "more" control should be offered. When
// errors are shown, the retry control takes its place after a failure.
func (s State) ShowMore(showsErrors bool) bool {
	if showsErrors && s.IsError {
		return false
	}
	return s.Page != nil && !s.IsLoading
}

// ShowRetry reports whether the error notice with its retry control should be offered
func (s State) ShowRetry() bool {
	return s.IsError && !s.IsLoading
}
