package search

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hnsearch/internal/domain"
	"hnsearch/internal/eventbus"
)

type call struct {
	Query string
	Page  int
}

// fakeSearcher answers from a table keyed by page and records every call
type fakeSearcher struct {
	mu      sync.Mutex
	pages   map[int]domain.SearchResult
	failing map[int]error
	calls   []call
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		pages:   make(map[int]domain.SearchResult),
		failing: make(map[int]error),
	}
}

func (f *fakeSearcher) Search(_ context.Context, query string, p int) (*domain.SearchResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Query: query, Page: p})
	if err, ok := f.failing[p]; ok {
		return nil, err
	}
	r, ok := f.pages[p]
	if !ok {
		r = page(p)
	}
	return &r, nil
}

func (f *fakeSearcher) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestSession(f *fakeSearcher, opts ...SessionOption) *Session {
	return NewSession(f, append([]SessionOption{WithLogger(quietLogger())}, opts...)...)
}

// run executes the pending fetch and feeds the completion back
func run(t *testing.T, s *Session, p Pending, err error) State {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, p)
	return s.Complete(p())
}

func TestSubmitEmptyQueryIssuesNothing(t *testing.T) {
	f := newFakeSearcher()
	s := newTestSession(f)

	for _, q := range []string{"", "   "} {
		p, err := s.Submit(context.Background(), q)
		assert.Nil(t, p)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}

	assert.Empty(t, f.Calls())
	if diff := cmp.Diff(State{}, s.State()); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
}

func TestSubmitSetsLoadingBeforeRequest(t *testing.T) {
	f := newFakeSearcher()
	s := newTestSession(f)

	p, err := s.Submit(context.Background(), "react")
	require.NoError(t, err)

	assert.True(t, s.State().IsLoading)
	assert.Empty(t, f.Calls(), "request must not be issued until the pending fetch runs")

	s.Complete(p())
	assert.False(t, s.State().IsLoading)
}

func TestSubmitThenPaginate(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = domain.SearchResult{Page: 0, Hits: []domain.Hit{{ObjectID: "1", Title: "Intro", URL: "http://x"}}}
	f.pages[1] = domain.SearchResult{Page: 1, Hits: []domain.Hit{{ObjectID: "2", Title: "Next", URL: "http://y"}}}
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "react")
	got := run(t, s, p, err)

	zero := 0
	want := State{Hits: []domain.Hit{{ObjectID: "1", Title: "Intro", URL: "http://x"}}, Page: &zero}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("after first page (-want +got):\n%s", diff)
	}

	p, err = s.More(ctx)
	got = run(t, s, p, err)

	require.Len(t, got.Hits, 2)
	assert.Equal(t, "1", got.Hits[0].ObjectID)
	assert.Equal(t, "2", got.Hits[1].ObjectID)
	assert.Equal(t, 1, *got.Page)
	assert.Equal(t, []call{{"react", 0}, {"react", 1}}, f.Calls())
}

func TestNewSubmitResetsSession(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	f.pages[1] = page(1, "2")
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "go")
	run(t, s, p, err)
	p, err = s.More(ctx)
	run(t, s, p, err)

	f.pages[0] = page(0, "x")
	p, err = s.Submit(ctx, "rust")
	got := run(t, s, p, err)

	assert.Equal(t, []domain.Hit{hit("x")}, got.Hits)
	assert.Equal(t, 0, *got.Page)
	assert.Equal(t, "rust", s.Query())
}

func TestMoreRequiresPage(t *testing.T) {
	s := newTestSession(newFakeSearcher())

	_, err := s.More(context.Background())
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = s.Fetch(context.Background(), "go", 3)
	assert.ErrorIs(t, err, ErrNoPage)
	assert.False(t, s.State().IsLoading)
}

func TestTriggersRefusedWhileLoading(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "go")
	run(t, s, p, err)

	pending, err := s.More(ctx)
	require.NoError(t, err)

	_, err = s.More(ctx)
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.Submit(ctx, "rust")
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.Scroll(ctx, Viewport{Height: 10, Offset: 0, Document: 1})
	assert.ErrorIs(t, err, ErrBusy)

	s.Complete(pending())
	assert.Equal(t, []call{{"go", 0}, {"go", 1}}, f.Calls())
}

func TestFailureKeepsHitsAndRetryReissuesRequest(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	f.failing[1] = errors.New("connection reset")
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "react")
	before := run(t, s, p, err)

	p, err = s.More(ctx)
	got := run(t, s, p, err)

	assert.True(t, got.IsError)
	assert.False(t, got.IsLoading)
	assert.Equal(t, before.Hits, got.Hits)
	assert.Equal(t, before.Page, got.Page)
	assert.True(t, got.ShowRetry())

	delete(f.failing, 1)
	f.pages[1] = page(1, "2")

	p, err = s.Retry(ctx)
	got = run(t, s, p, err)

	assert.False(t, got.IsError)
	assert.Len(t, got.Hits, 2)
	assert.Equal(t, []call{{"react", 0}, {"react", 1}, {"react", 1}}, f.Calls())
}

func TestMoreAfterFailureRetries(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	f.failing[1] = errors.New("timeout")
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "react")
	run(t, s, p, err)
	p, err = s.More(ctx)
	run(t, s, p, err)

	p, err = s.More(ctx)
	run(t, s, p, err)

	// page 1 twice, never page 2
	assert.Equal(t, []call{{"react", 0}, {"react", 1}, {"react", 1}}, f.Calls())
}

func TestRetryAfterFailedFirstPage(t *testing.T) {
	f := newFakeSearcher()
	f.failing[0] = errors.New("dns")
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "react")
	got := run(t, s, p, err)
	assert.True(t, got.IsError)
	assert.Nil(t, got.Page)

	delete(f.failing, 0)
	f.pages[0] = page(0, "1")
	p, err = s.More(ctx)
	got = run(t, s, p, err)

	assert.Equal(t, []domain.Hit{hit("1")}, got.Hits)
	assert.Equal(t, []call{{"react", 0}, {"react", 0}}, f.Calls())
}

func TestRetryWithoutFailure(t *testing.T) {
	s := newTestSession(newFakeSearcher())
	_, err := s.Retry(context.Background())
	assert.ErrorIs(t, err, ErrNothingFailed)
}

func TestScrollGates(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	s := newTestSession(f, WithScrollThreshold(500))
	ctx := context.Background()

	far := Viewport{Height: 800, Offset: 0, Document: 5000}
	near := Viewport{Height: 800, Offset: 3800, Document: 5000}

	_, err := s.Scroll(ctx, near)
	assert.ErrorIs(t, err, ErrNoResults, "no hits yet")

	p, err := s.Submit(ctx, "react")
	run(t, s, p, err)

	_, err = s.Scroll(ctx, far)
	assert.ErrorIs(t, err, ErrNotNearBottom)
	assert.Len(t, f.Calls(), 1)

	p, err = s.Scroll(ctx, near)
	run(t, s, p, err)
	assert.Equal(t, []call{{"react", 0}, {"react", 1}}, f.Calls())
}

func TestScrollRefusedInErrorState(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	f.failing[1] = errors.New("boom")
	s := newTestSession(f, WithScrollThreshold(5))
	ctx := context.Background()

	p, err := s.Submit(ctx, "go")
	run(t, s, p, err)
	p, err = s.More(ctx)
	run(t, s, p, err)

	_, err = s.Scroll(ctx, Viewport{Height: 10, Offset: 0, Document: 1})
	assert.ErrorIs(t, err, ErrInError)
	assert.Len(t, f.Calls(), 2)
}

func TestStaleCompletionIgnored(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	s := newTestSession(f)

	before := s.Complete(Completion{Request: Request{Query: "go", Page: 0}, Result: &domain.SearchResult{Hits: []domain.Hit{hit("9")}}})
	assert.Equal(t, State{}, before)

	p, err := s.Submit(context.Background(), "go")
	require.NoError(t, err)
	s.Complete(Completion{Request: Request{Query: "other", Page: 0}, Result: &domain.SearchResult{}})
	assert.True(t, s.State().IsLoading)

	got := s.Complete(p())
	assert.Equal(t, []domain.Hit{hit("1")}, got.Hits)
}

func TestSessionPublishesEvents(t *testing.T) {
	bus := eventbus.New(quietLogger())
	defer bus.Close()

	events := make(chan eventbus.DomainEvent, 16)
	for _, et := range []eventbus.EventType{
		eventbus.EventSearchSubmitted,
		eventbus.EventPageRequested,
		eventbus.EventPageLoaded,
		eventbus.EventFetchFailed,
	} {
		bus.Subscribe(et, func(e eventbus.DomainEvent) { events <- e })
	}

	f := newFakeSearcher()
	f.pages[0] = page(0, "1", "2")
	f.failing[1] = errors.New("boom")
	s := newTestSession(f, WithEventBus(bus))
	ctx := context.Background()

	p, err := s.Submit(ctx, "go")
	run(t, s, p, err)
	p, err = s.More(ctx)
	run(t, s, p, err)

	var got []eventbus.EventType
	timeout := time.After(time.Second)
	for len(got) < 5 {
		select {
		case e := <-events:
			got = append(got, e.Type())
			if loaded, ok := e.(eventbus.PageLoadedEvent); ok {
				assert.Equal(t, 2, loaded.Received)
			}
		case <-timeout:
			t.Fatalf("timed out, got %v", got)
		}
	}

	assert.Equal(t, []eventbus.EventType{
		eventbus.EventPageRequested,
		eventbus.EventSearchSubmitted,
		eventbus.EventPageLoaded,
		eventbus.EventPageRequested,
		eventbus.EventFetchFailed,
	}, got)
}

func TestFailedSearchKeepsQueryOfShownHits(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "react")
	run(t, s, p, err)

	f.failing[0] = errors.New("dns")
	p, err = s.Submit(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "react", s.Query(), "the list still belongs to react while go loads")
	got := s.Complete(p())

	assert.True(t, got.IsError)
	assert.Equal(t, []domain.Hit{hit("1")}, got.Hits)
	assert.Equal(t, "react", s.Query())

	delete(f.failing, 0)
	f.pages[0] = page(0, "2")
	p, err = s.More(ctx)
	got = run(t, s, p, err)

	assert.Equal(t, []domain.Hit{hit("2")}, got.Hits)
	assert.Equal(t, "go", s.Query())
	assert.Equal(t, []call{{"react", 0}, {"go", 0}, {"go", 0}}, f.Calls())
}

func TestFetchLaterPageOfOtherQueryRefused(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = page(0, "1")
	s := newTestSession(f)
	ctx := context.Background()

	p, err := s.Submit(ctx, "react")
	run(t, s, p, err)

	_, err = s.Fetch(ctx, "go", 1)
	assert.ErrorIs(t, err, ErrOtherQuery)
	assert.False(t, s.State().IsLoading)

	p, err = s.Fetch(ctx, "react", 1)
	run(t, s, p, err)
	assert.Equal(t, []call{{"react", 0}, {"react", 1}}, f.Calls())
}

func TestScrollStopsAfterLastPage(t *testing.T) {
	f := newFakeSearcher()
	f.pages[0] = domain.SearchResult{Page: 0, NbPages: 2, Hits: []domain.Hit{hit("1")}}
	f.pages[1] = domain.SearchResult{Page: 1, NbPages: 2, Hits: []domain.Hit{hit("2")}}
	s := newTestSession(f, WithScrollThreshold(5))
	ctx := context.Background()
	near := Viewport{Height: 10, Offset: 0, Document: 1}

	p, err := s.Submit(ctx, "react")
	run(t, s, p, err)
	p, err = s.Scroll(ctx, near)
	run(t, s, p, err)

	_, err = s.Scroll(ctx, near)
	assert.ErrorIs(t, err, ErrLastPage)
	assert.False(t, s.State().IsLoading)
	assert.Equal(t, []call{{"react", 0}, {"react", 1}}, f.Calls())

	// the more control is not gated
	p, err = s.More(ctx)
	require.NoError(t, err)
	assert.NotNil(t, p)
}
