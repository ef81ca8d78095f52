package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"hnsearch/internal/domain"
	"hnsearch/internal/ui/views"
)

// ResultsDocument renders every loaded hit for the pager, one block per hit
func ResultsDocument(query string, hits []domain.Hit, nbHits int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("208"))

	linkStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("39"))

	metaStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var doc strings.Builder

	header := fmt.Sprintf("Hacker News: %q  %d hits loaded", query, len(hits))
	if nbHits > 0 {
		header = fmt.Sprintf("Hacker News: %q  %d of %d hits loaded", query, len(hits), nbHits)
	}
	doc.WriteString(titleStyle.Render(header))
	doc.WriteString("\n\n")

	for i, hit := range hits {
		title := hit.Title
		if title == "" {
			title = "(untitled)"
		}
		doc.WriteString(fmt.Sprintf("%4d. %s", i+1, title))
		if host := views.Host(hit.URL); host != "" {
			doc.WriteString(" (" + host + ")")
		}
		doc.WriteString("\n")

		doc.WriteString("      " + linkStyle.Render(hit.Link()) + "\n")

		meta := fmt.Sprintf("%d points by %s, %d comments", hit.Points, hit.Author, hit.NumComments)
		if !hit.CreatedAt.IsZero() {
			meta += ", " + hit.CreatedAt.Format("2006-01-02")
		}
		doc.WriteString("      " + metaStyle.Render(meta) + "\n")
		doc.WriteString("      " + metaStyle.Render(hit.DiscussionURL()) + "\n\n")
	}

	return doc.String()
}
