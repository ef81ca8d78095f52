package ui

import "hnsearch/internal/search"

// fetchDoneMsg carries the outcome of a page request back to Update
type fetchDoneMsg struct {
	completion search.Completion
}

// opsDoneMsg reports the result of an external operation
type opsDoneMsg struct {
	op     string // "open", "copy" or "pager"
	target string
	err    error
}

// clearStatusMsg clears the status line
type clearStatusMsg struct{}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
