package domain

import "time"

// Hit is one search result record
type Hit struct {
	URL         string    `json:"url"`
	ObjectID    string    `json:"objectID"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Points      int       `json:"points,omitempty"`
	NumComments int       `json:"num_comments,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// DiscussionURL returns the Hacker News item page for the hit
func (h Hit) DiscussionURL() string {
	return "https://news.ycombinator.com/item?id=" + h.ObjectID
}

// Link returns the story URL, falling back to the discussion page for
// text posts (Ask HN, Show HN without a link)
func (h Hit) Link() string {
	if h.URL != "" {
		return h.URL
	}
	return h.DiscussionURL()
}

// SearchResult is one page of results as returned by the search API
type SearchResult struct {
	Hits    []Hit `json:"hits"`
	Page    int   `json:"page"`
	NbPages int   `json:"nbPages"`
	NbHits  int   `json:"nbHits"`
}
