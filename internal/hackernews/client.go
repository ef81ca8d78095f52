// Package hackernews is a small client for the Algolia Hacker News search API.
package hackernews

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"hnsearch/internal/domain"
)

// ErrFetch matches every failure of Search: transport errors, non-2xx
// responses and bodies that are not a search result
var ErrFetch = errors.New("fetch failed")

// FetchError carries the request that failed
type FetchError struct {
	Query  string
	Page   int
	Status int // 0 when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("search %q page %d: status %d: %v", e.Query, e.Page, e.Status, e.Err)
	}
	return fmt.Sprintf("search %q page %d: %v", e.Query, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

// Client queries the search endpoint
type Client struct {
	http        *resty.Client
	endpoint    string
	hitsPerPage int
	log         logrus.FieldLogger
}

// Option configures a Client
type Option func(*Client)

// WithHitsPerPage overrides the page size
func WithHitsPerPage(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.hitsPerPage = n
		}
	}
}

// WithTimeout bounds every request; zero keeps requests unbounded
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.SetTimeout(d)
		}
	}
}

// WithLogger routes request logging to log
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRestyClient replaces the underlying HTTP client, mostly for tests
func WithRestyClient(rc *resty.Client) Option {
	return func(c *Client) {
		if rc != nil {
			c.http = rc
		}
	}
}

// NewClient creates a client for endpoint, e.g. https://hn.algolia.com/api/v1/search
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		http:        resty.New(),
		endpoint:    endpoint,
		hitsPerPage: 100,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithField("component", "hackernews")

	c.http.
		SetLogger(c.log).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "hnsearch").
		OnBeforeRequest(c.onBeforeRequest).
		OnAfterResponse(c.onAfterResponse)

	return c
}

func (c *Client) onBeforeRequest(_ *resty.Client, req *resty.Request) error {
	c.log.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    req.URL,
	}).Debug("start request")
	return nil
}

func (c *Client) onAfterResponse(_ *resty.Client, res *resty.Response) error {
	c.log.WithFields(logrus.Fields{
		"url":      res.Request.URL,
		"status":   res.StatusCode(),
		"duration": res.Time(),
		"bytes":    len(res.Body()),
	}).Debug("end request")
	return nil
}

// HitsPerPage returns the configured page size
func (c *Client) HitsPerPage() int {
	return c.hitsPerPage
}

// SearchURL builds the request URL; it is a pure function of its arguments
// and the client's endpoint and page size
func (c *Client) SearchURL(query string, page int) string {
	sep := "?"
	if strings.Contains(c.endpoint, "?") {
		sep = "&"
	}
	return c.endpoint + sep +
		"query=" + url.QueryEscape(query) +
		"&page=" + strconv.Itoa(page) +
		"&hitsPerPage=" + strconv.Itoa(c.hitsPerPage)
}

// Search fetches one page of results. Any failure is a *FetchError
// matching ErrFetch.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.SearchResult, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.SearchURL(query, page))
	if err != nil {
		return nil, &FetchError{Query: query, Page: page, Err: err}
	}

	if res.StatusCode() < 200 || res.StatusCode() > 299 {
		return nil, &FetchError{
			Query:  query,
			Page:   page,
			Status: res.StatusCode(),
			Err:    fmt.Errorf("unexpected response: %s", strings.TrimSpace(res.Status())),
		}
	}

	var result domain.SearchResult
	if err := json.Unmarshal(res.Body(), &result); err != nil {
		return nil, &FetchError{Query: query, Page: page, Status: res.StatusCode(), Err: fmt.Errorf("decode response: %w", err)}
	}
	if result.Hits == nil {
		return nil, &FetchError{Query: query, Page: page, Status: res.StatusCode(), Err: errors.New("response has no hits")}
	}

	return &result, nil
}
