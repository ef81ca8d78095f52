//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// fakeAPI serves the search endpoint with generated stories titled
// "<query> story <page>-<index>"
type fakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	requests []string
	failOnce map[int]bool
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{failOnce: map[int]bool{}}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Close)
	return api
}

// FailOnce makes the next request for page fail with a 500
func (a *fakeAPI) FailOnce(page int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failOnce[page] = true
}

// Requests returns "query/page" for every request received
func (a *fakeAPI) Requests() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.requests...)
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("query")
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, err := strconv.Atoi(q.Get("hitsPerPage"))
	if err != nil || perPage <= 0 {
		perPage = 100
	}

	a.mu.Lock()
	a.requests = append(a.requests, fmt.Sprintf("%s/%d", query, page))
	fail := a.failOnce[page]
	delete(a.failOnce, page)
	a.mu.Unlock()

	if fail {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}

	hits := make([]map[string]any, perPage)
	for i := range hits {
		hits[i] = map[string]any{
			"objectID": fmt.Sprintf("%d%03d", page, i),
			"title":    fmt.Sprintf("%s story %d-%d", query, page, i),
			"url":      fmt.Sprintf("https://example.com/%d/%d", page, i),
			"author":   "pg",
			"points":   i,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"hits":    hits,
		"page":    page,
		"nbPages": 50,
		"nbHits":  50 * perPage,
	})
}
