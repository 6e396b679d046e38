package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
)

// Theme holds the colors used for ticket output. Styles are built from a
// renderer bound to the output writer, so pipes and buffers get plain text.
type Theme struct {
	renderer *lipgloss.Renderer

	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	Header     lipgloss.Color

	StatusNew         lipgloss.Color
	StatusAssigned    lipgloss.Color
	StatusInProgress  lipgloss.Color
	StatusResolved    lipgloss.Color
	StatusNotResolved lipgloss.Color

	PriorityLow      lipgloss.Color
	PriorityMedium   lipgloss.Color
	PriorityHigh     lipgloss.Color
	PriorityCritical lipgloss.Color
}

// DefaultTheme is a 256-color scheme for dark terminals.
func DefaultTheme(w io.Writer) Theme {
	return Theme{
		renderer: lipgloss.NewRenderer(w),

		NormalText: lipgloss.Color("252"),
		FaintText:  lipgloss.Color("245"),
		Header:     lipgloss.Color("255"),

		StatusNew:         lipgloss.Color("75"),  // blue
		StatusAssigned:    lipgloss.Color("141"), // light purple
		StatusInProgress:  lipgloss.Color("220"), // amber
		StatusResolved:    lipgloss.Color("114"), // green
		StatusNotResolved: lipgloss.Color("196"), // red

		PriorityLow:      lipgloss.Color("109"),
		PriorityMedium:   lipgloss.Color("75"),
		PriorityHigh:     lipgloss.Color("208"),
		PriorityCritical: lipgloss.Color("196"),
	}
}

func (theme Theme) StatusColor(s models.Status) lipgloss.Color {
	switch s {
	case models.StatusNew:
		return theme.StatusNew
	case models.StatusAssigned:
		return theme.StatusAssigned
	case models.StatusInProgress:
		return theme.StatusInProgress
	case models.StatusResolved:
		return theme.StatusResolved
	case models.StatusNotResolved:
		return theme.StatusNotResolved
	}
	return theme.FaintText
}

func (theme Theme) PriorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityLow:
		return theme.PriorityLow
	case models.PriorityMedium:
		return theme.PriorityMedium
	case models.PriorityHigh:
		return theme.PriorityHigh
	case models.PriorityCritical:
		return theme.PriorityCritical
	}
	return theme.FaintText
}

func (theme Theme) style() lipgloss.Style {
	if theme.renderer == nil {
		return lipgloss.NewStyle()
	}
	return theme.renderer.NewStyle()
}

func (theme Theme) status(s models.Status) string {
	return theme.style().Foreground(theme.StatusColor(s)).Bold(true).Render(s.Label())
}

func (theme Theme) priority(p models.Priority) string {
	return theme.style().Foreground(theme.PriorityColor(p)).Bold(p == models.PriorityCritical).Render(p.Label())
}

func (theme Theme) faint(s string) string {
	return theme.style().Foreground(theme.FaintText).Render(s)
}

func (theme Theme) header(s string) string {
	return theme.style().Foreground(theme.Header).Bold(true).Render(s)
}
