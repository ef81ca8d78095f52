package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Prompt       lipgloss.Style
	Dim          lipgloss.Style
	Status       lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Scroll       lipgloss.Style
	HitTitle     lipgloss.Style
	HitHost      lipgloss.Style
	HitMeta      lipgloss.Style
	SelectionBg  lipgloss.Style
	Cursor       lipgloss.Style
	Button       lipgloss.Style
	Key          lipgloss.Style
	StatusError  lipgloss.Style
	StatusLoad   lipgloss.Style
	Placeholder  lipgloss.Style
	VariantBadge lipgloss.Style
	Popup        lipgloss.Style
	PopupTitle   lipgloss.Style
	Greyed       lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("208")), // HN orange
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true),
		Dim:    lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2),
		Scroll:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		HitTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		HitHost:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		HitMeta:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		SelectionBg:  lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Cursor:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
		Button:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Key:          lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoad:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		VariantBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1),
		PopupTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		Greyed:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}
