package logic

import (
	"hnsearch/internal/search"
)

// Navigator tracks the cursor and the visible window of the result list.
// Each hit occupies one row.
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	count          int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{
		viewportHeight: 20, // until the first WindowSizeMsg
	}
}

// SelectedIndex returns the cursor position
func (n *Navigator) SelectedIndex() int {
	return n.selectedIndex
}

// ViewportOffset returns the index of the first visible row
func (n *Navigator) ViewportOffset() int {
	return n.viewportOffset
}

// ViewportHeight returns the number of visible rows
func (n *Navigator) ViewportHeight() int {
	return n.viewportHeight
}

// Count returns the number of rows
func (n *Navigator) Count() int {
	return n.count
}

// SetHeight updates the number of visible rows
func (n *Navigator) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.viewportHeight = height
	n.clamp()
}

// SetCount updates the number of rows, keeping the cursor where it was
// when possible
func (n *Navigator) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	n.count = count
	n.clamp()
}

// Reset moves back to the top, used when a new query replaces the list
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// Up moves the cursor one row up
func (n *Navigator) Up() {
	n.moveTo(n.selectedIndex - 1)
}

// Down moves the cursor one row down
func (n *Navigator) Down() {
	n.moveTo(n.selectedIndex + 1)
}

// PageUp moves the cursor up by one page
func (n *Navigator) PageUp() {
	n.moveTo(n.selectedIndex - n.pageSize())
}

// PageDown moves the cursor down by one page
func (n *Navigator) PageDown() {
	n.moveTo(n.selectedIndex + n.pageSize())
}

// Home moves to the first row
func (n *Navigator) Home() {
	n.moveTo(0)
}

// End moves to the last row
func (n *Navigator) End() {
	n.moveTo(n.count - 1)
}

// Scroll moves the visible window by delta rows and drags the cursor along
// when it would leave the window (mouse wheel)
func (n *Navigator) Scroll(delta int) {
	n.viewportOffset += delta
	n.clampOffset()
	if n.selectedIndex < n.viewportOffset {
		n.selectedIndex = n.viewportOffset
	}
	if last := n.viewportOffset + n.viewportHeight - 1; n.selectedIndex > last {
		n.selectedIndex = last
	}
	n.clampSelected()
}

// Viewport reports the scroll geometry in rows
func (n *Navigator) Viewport() search.Viewport {
	return search.Viewport{
		Height:   n.viewportHeight,
		Offset:   n.viewportOffset,
		Document: n.count,
	}
}

func (n *Navigator) pageSize() int {
	size := n.viewportHeight - 2 // keep some overlap
	if size < 1 {
		size = 1
	}
	return size
}

func (n *Navigator) moveTo(index int) {
	n.selectedIndex = index
	n.clampSelected()
	n.ensureSelectedVisible()
}

// ensureSelectedVisible adjusts the viewport to keep the selected item visible
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.selectedIndex - n.viewportHeight + 1
	}
	n.clampOffset()
}

func (n *Navigator) clamp() {
	n.clampSelected()
	n.clampOffset()
	n.ensureSelectedVisible()
}

func (n *Navigator) clampSelected() {
	if n.selectedIndex > n.count-1 {
		n.selectedIndex = n.count - 1
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}
}

func (n *Navigator) clampOffset() {
	maxOffset := n.count - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
