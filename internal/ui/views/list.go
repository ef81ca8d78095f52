package views

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hnsearch/internal/domain"
)

// HitList is the base renderer: the visible window of hits, one per row
type HitList struct {
	styles *Styles
}

// NewHitList creates the base list renderer
func NewHitList(styles *Styles) *HitList {
	return &HitList{styles: styles}
}

// Render draws rows [Offset, Offset+Height) of the hits
func (l *HitList) Render(p Props) Frame {
	if len(p.Hits) == 0 {
		switch {
		case p.Page != nil:
			return Frame{Body: l.styles.Placeholder.Render("No results.")}
		case p.IsLoading, p.IsError:
			return Frame{}
		default:
			return Frame{Body: l.styles.Placeholder.Render("Press / to search Hacker News.")}
		}
	}

	start := p.Offset
	if start < 0 {
		start = 0
	}
	end := start + p.Height
	if p.Height <= 0 || end > len(p.Hits) {
		end = len(p.Hits)
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderHit(p.Hits[i], i, i == p.Selected, p.Width, p.ShowDetails))
	}
	return Frame{Body: strings.Join(lines, "\n")}
}

func (l *HitList) renderHit(hit domain.Hit, index int, selected bool, width int, details bool) string {
	cursor := "  "
	if selected {
		cursor = l.styles.Cursor.Render("> ")
	}

	title := hit.Title
	if title == "" {
		title = "(untitled)"
	}
	number := l.styles.Dim.Render(fmt.Sprintf("%4d. ", index+1))

	var suffix string
	if details {
		if host := Host(hit.URL); host != "" {
			suffix += " " + l.styles.HitHost.Render("("+host+")")
		}
		if hit.Points > 0 || hit.Author != "" {
			suffix += " " + l.styles.HitMeta.Render(fmt.Sprintf("%d points by %s", hit.Points, hit.Author))
		}
	}

	titleStyle := l.styles.HitTitle
	if selected {
		titleStyle = l.styles.SelectionBg
	}

	// Leave room for cursor, number and the main container padding
	if width > 0 {
		avail := width - 4 - lipgloss.Width(cursor) - lipgloss.Width(number) - lipgloss.Width(suffix)
		if avail < 10 {
			avail = 10
			suffix = ""
		}
		title = Truncate(title, avail)
	}

	return cursor + number + titleStyle.Render(title) + suffix
}

// Host returns the hostname of a story URL without a leading www.
func Host(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// Truncate shortens s to at most width cells, marking the cut with an ellipsis
func Truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 1 {
		return "…"
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
