package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/helpdesk/internal/client/models"
)

const (
	timeLayout    = "2006-01-02 15:04"
	maxTitleWidth = 48
)

// renderTable prints tickets one per row. Cells may carry ANSI styling, so
// column widths are measured with lipgloss.Width.
func renderTable(w io.Writer, theme Theme, tickets []models.Ticket) {
	if len(tickets) == 0 {
		fmt.Fprintln(w, theme.faint("No tickets"))
		return
	}

	rows := [][]string{{
		theme.header("ID"), theme.header("STATUS"), theme.header("PRIORITY"),
		theme.header("ASSIGNEE"), theme.header("CREATED"), theme.header("TITLE"),
	}}
	for _, t := range tickets {
		rows = append(rows, []string{
			t.ID,
			theme.status(t.Status),
			theme.priority(t.Priority),
			t.AssignedTo.String(),
			formatTime(t.CreatedAt),
			truncateString(t.Title, maxTitleWidth),
		})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for _, row := range rows {
		var b strings.Builder
		for i, cell := range row {
			b.WriteString(cell)
			if i < len(row)-1 {
				b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)+2))
			}
		}
		fmt.Fprintln(w, b.String())
	}
}

// renderDetail prints one ticket with its comments.
func renderDetail(w io.Writer, theme Theme, t models.Ticket) {
	fmt.Fprintln(w, theme.header(t.Title))
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		theme.status(t.Status), theme.priority(t.Priority), orDash(t.Category), theme.faint(t.ID))
	fmt.Fprintf(w, "Created by %s on %s, updated %s\n",
		t.CreatedBy.String(), formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	fmt.Fprintf(w, "Assigned to %s\n", t.AssignedTo.String())

	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}

	fmt.Fprintln(w)
	if len(t.Comments) == 0 {
		fmt.Fprintln(w, theme.faint("No comments"))
		return
	}
	fmt.Fprintf(w, "Comments (%d):\n", len(t.Comments))
	for _, c := range t.Comments {
		fmt.Fprintf(w, "  %s %s: %s\n", theme.faint(formatTime(c.CreatedAt)), c.Author.String(), c.Text)
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// truncateString cuts text to maxWidth visible characters, marking the cut
// with an ellipsis.
func truncateString(text string, maxWidth int) string {
	if lipgloss.Width(text) <= maxWidth {
		return text
	}
	runes := []rune(text)
	for length := len(runes) - 1; length >= 0; length-- {
		candidate := string(runes[:length]) + "…"
		if lipgloss.Width(candidate) <= maxWidth {
			return candidate
		}
	}
	return ""
}
