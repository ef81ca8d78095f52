package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"hnsearch/internal/domain"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// HitDetails is the body of the info popup for one hit
func (pr *PopupRenderer) HitDetails(hit domain.Hit) string {
	title := hit.Title
	if title == "" {
		title = "(untitled)"
	}

	lines := []string{
		pr.styles.PopupTitle.Render(title),
		"",
		pr.styles.HitHost.Render(hit.Link()),
		fmt.Sprintf("%d points by %s", hit.Points, hit.Author),
		fmt.Sprintf("%d comments", hit.NumComments),
	}
	if !hit.CreatedAt.IsZero() {
		lines = append(lines, hit.CreatedAt.Format("Mon, 02 Jan 2006 15:04 MST"))
	}
	lines = append(lines,
		pr.styles.Dim.Render(hit.DiscussionURL()),
		"",
		pr.styles.Help.Render("enter open • c comments • esc close"),
	)
	return strings.Join(lines, "\n")
}

// RenderPopupOverlay draws popupContent centered on top of mainContent,
// which is greyed out around it
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int) string {
	styled := pr.styles.Popup.Render(popupContent)
	popupLines := strings.Split(styled, "\n")

	modalW := lipgloss.Width(styled)
	modalH := len(popupLines)
	x := max((width-modalW)/2, 0)
	y := max((height-modalH)/2, 0)

	// The base layer is plain text so it can be cut at any column
	base := strings.Split(ansi.Strip(mainContent), "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	out := make([]string, len(base))
	for i, line := range base {
		if i < y || i >= y+modalH {
			out[i] = pr.styles.Greyed.Render(line)
			continue
		}

		left := runewidth.Truncate(line, x, "")
		left += strings.Repeat(" ", x-runewidth.StringWidth(left))
		var right string
		if runewidth.StringWidth(line) > x+modalW {
			right = runewidth.TruncateLeft(line, x+modalW, "")
		}
		out[i] = pr.styles.Greyed.Render(left) + popupLines[i-y] + pr.styles.Greyed.Render(right)
	}
	return strings.Join(out, "\n")
}
