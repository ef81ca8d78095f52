package search

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"hnsearch/internal/domain"
	"hnsearch/internal/eventbus"
)

// Searcher fetches one page of results for a query
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*domain.SearchResult, error)
}

// Request identifies one fetch
type Request struct {
	Query string
	Page  int
	Retry bool
}

// Completion is the outcome of a Pending fetch
type Completion struct {
	Request Request
	Result  *domain.SearchResult
	Err     error
}

// Pending performs the request it was created for. It may run on any
// goroutine; its Completion must be handed back to Session.Complete.
type Pending func() Completion

// Session owns the State of one search UI. It is not safe for concurrent
// use: triggers and completions are expected to arrive on one goroutine,
// only the Pending functions run elsewhere.
//
// At most one request is in flight. Every trigger is refused with ErrBusy
// while one is pending.
type Session struct {
	searcher  Searcher
	bus       eventbus.EventBus
	log       logrus.FieldLogger
	threshold int

	state    State
	query    string   // query the received hits belong to
	nbPages  int      // page count reported with the last page, 0 if unknown
	inflight *Request // request whose completion is awaited
	failed   *Request // last request that failed, until something succeeds
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithEventBus publishes session events on bus
func WithEventBus(bus eventbus.EventBus) SessionOption {
	return func(s *Session) { s.bus = bus }
}

// WithLogger sets the session logger
func WithLogger(log logrus.FieldLogger) SessionOption {
	return func(s *Session) {
		if log != nil {
			s.log = log
		}
	}
}

// WithScrollThreshold sets the distance from the bottom at which Scroll
// loads the next page
func WithScrollThreshold(threshold int) SessionOption {
	return func(s *Session) { s.threshold = threshold }
}

// NewSession creates an empty session
func NewSession(searcher Searcher, opts ...SessionOption) *Session {
	s := &Session{
		searcher:  searcher,
		log:       logrus.StandardLogger(),
		threshold: 500,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.WithField("component", "session")
	return s
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Query returns the query the current result list belongs to. A new
// search only takes over once its first page arrives.
func (s *Session) Query() string {
	return s.query
}

// Threshold returns the scroll threshold
func (s *Session) Threshold() int {
	return s.threshold
}

// Fetch marks the state as loading and returns the request to run. Page 0
// starts a new session for query; later pages require a page of the same
// query to have been received already.
func (s *Session) Fetch(ctx context.Context, query string, page int) (Pending, error) {
	return s.fetch(ctx, Request{Query: query, Page: page})
}

func (s *Session) fetch(ctx context.Context, req Request) (Pending, error) {
	if req.Query == "" {
		return nil, ErrEmptyQuery
	}
	if s.state.IsLoading {
		return nil, ErrBusy
	}
	if req.Page > 0 {
		if s.state.Page == nil {
			return nil, ErrNoPage
		}
		if req.Query != s.query {
			return nil, ErrOtherQuery
		}
	}

	s.state = s.state.Loading()
	s.inflight = &req

	s.log.WithFields(logrus.Fields{
		"query": req.Query,
		"page":  req.Page,
		"retry": req.Retry,
	}).Debug("fetching page")
	s.publish(eventbus.PageRequestedEvent{Query: req.Query, Page: req.Page, Retry: req.Retry})

	searcher := s.searcher
	return func() Completion {
		result, err := searcher.Search(ctx, req.Query, req.Page)
		return Completion{Request: req, Result: result, Err: err}
	}, nil
}

// Complete applies the outcome of the in-flight request and returns the
// new state. Completions for any other request are ignored.
func (s *Session) Complete(c Completion) State {
	if s.inflight == nil || *s.inflight != c.Request {
		s.log.WithFields(logrus.Fields{
			"query": c.Request.Query,
			"page":  c.Request.Page,
		}).Warn("ignoring completion of a request that is not in flight")
		return s.state
	}
	s.inflight = nil

	if c.Err == nil && c.Result == nil {
		c.Err = ErrNoResults
	}

	if c.Err != nil {
		failed := c.Request
		failed.Retry = false
		s.failed = &failed
		s.state = s.state.Fail()

		s.log.WithFields(logrus.Fields{
			"query": c.Request.Query,
			"page":  c.Request.Page,
			"error": c.Err,
		}).Warn("fetch failed")
		s.publish(eventbus.FetchFailedEvent{Query: c.Request.Query, Page: c.Request.Page, Err: c.Err})
		return s.state
	}

	s.failed = nil
	s.query = c.Request.Query
	s.nbPages = c.Result.NbPages
	s.state = s.state.Apply(c.Request.Page, *c.Result)

	s.publish(eventbus.PageLoadedEvent{
		Query:     c.Request.Query,
		Page:      c.Request.Page,
		Received:  len(c.Result.Hits),
		TotalHits: len(s.state.Hits),
	})
	return s.state
}

// Submit starts a new session for query at page 0
func (s *Session) Submit(ctx context.Context, query string) (Pending, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	pending, err := s.fetch(ctx, Request{Query: query, Page: 0})
	if err != nil {
		return nil, err
	}
	s.publish(eventbus.SearchSubmittedEvent{Query: query})
	return pending, nil
}

// More requests the page after the last one received. After a failure it
// re-issues the failed request instead.
func (s *Session) More(ctx context.Context) (Pending, error) {
	if s.failed != nil && s.state.IsError {
		return s.Retry(ctx)
	}
	if s.query == "" {
		return nil, ErrEmptyQuery
	}
	page, ok := s.state.CurrentPage()
	if !ok {
		return nil, ErrNoPage
	}
	return s.fetch(ctx, Request{Query: s.query, Page: page + 1})
}

// Retry re-issues the request that failed last
func (s *Session) Retry(ctx context.Context) (Pending, error) {
	if s.failed == nil || !s.state.IsError {
		return nil, ErrNothingFailed
	}
	req := *s.failed
	req.Retry = true
	return s.fetch(ctx, req)
}

// Scroll loads the next page when vp has come within the threshold of the
// bottom, there are results to continue from and nothing is pending or failed
func (s *Session) Scroll(ctx context.Context, vp Viewport) (Pending, error) {
	if err := s.state.CanLoadMore(); err != nil {
		return nil, err
	}
	if page, _ := s.state.CurrentPage(); s.nbPages > 0 && page+1 >= s.nbPages {
		return nil, ErrLastPage
	}
	if !NearBottom(vp, s.threshold) {
		return nil, ErrNotNearBottom
	}
	return s.More(ctx)
}

func (s *Session) publish(event eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(event)
	}
}
