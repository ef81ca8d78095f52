package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ReservedLines is the screen height taken by everything except the list:
// padding (2), title, search line, gap, two footer slots, status and help
const ReservedLines = 9

// ViewState contains all the state needed for rendering the screen
type ViewState struct {
	Width         int
	Height        int
	Variant       string
	Query         string // query the list belongs to
	InputView     string
	Searching     bool
	List          Frame
	HitCount      int
	Page          *int
	NbHits        int
	StatusMessage string
	HelpView      string
}

// Screen lays out the whole terminal
type Screen struct {
	styles *Styles
}

// NewScreen creates a new screen renderer
func NewScreen(styles *Styles) *Screen {
	return &Screen{styles: styles}
}

// Render produces the complete view
func (s *Screen) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(s.titleLine(state))
	content.WriteString("\n")

	prompt := s.styles.Prompt.Render("Search: ")
	if !state.Searching {
		prompt = s.styles.Dim.Render("Search: ")
	}
	content.WriteString(prompt + state.InputView)
	content.WriteString("\n\n")

	content.WriteString(state.List.String())

	bottom := []string{}
	if state.StatusMessage != "" {
		bottom = append(bottom, s.styles.Status.Render(state.StatusMessage))
	}
	if state.HelpView != "" {
		bottom = append(bottom, s.styles.Help.Render(state.HelpView))
	}

	if len(bottom) > 0 {
		// Push status and help to the bottom of the screen
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if padding := availableLines - currentLines - len(bottom); padding > 0 {
			content.WriteString(strings.Repeat("\n", padding))
		}
		content.WriteString("\n")
		content.WriteString(strings.Join(bottom, "\n"))
	}

	mainStyle := s.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

func (s *Screen) titleLine(state ViewState) string {
	logo := s.styles.Title.Render("hnsearch")

	var right []string
	if state.Query != "" {
		summary := fmt.Sprintf("%q  %d hits", state.Query, state.HitCount)
		if state.NbHits > 0 {
			summary = fmt.Sprintf("%q  %d of %d hits", state.Query, state.HitCount, state.NbHits)
		}
		if state.Page != nil {
			summary += fmt.Sprintf("  page %d", *state.Page)
		}
		right = append(right, s.styles.Dim.Render(summary))
	}
	if state.Variant != "" {
		right = append(right, s.styles.VariantBadge.Render("["+state.Variant+"]"))
	}
	if len(right) == 0 {
		return logo
	}

	rightContent := strings.Join(right, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth < 2 {
		paddingWidth = 2
	}
	return logo + strings.Repeat(" ", paddingWidth) + rightContent
}
