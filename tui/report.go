package tui

import (
	"fmt"
	"strings"

	"github.com/bassamadnan/triage/processor"
	"github.com/charmbracelet/lipgloss"
)

// RenderReport formats the end-of-run summary printed to stdout.
func RenderReport(res processor.Result) string {
	if res.NoInquiries() {
		return ReportBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			TitleStyle.Render("triage"),
			SuccessStyle.Render("No new inquiries."),
			line("Rows in sheet", fmt.Sprint(res.Rows)),
		))
	}

	lines := []string{
		TitleStyle.Render("triage"),
		SuccessStyle.Render("All new entries processed."),
		line("Rows updated", fmt.Sprint(res.Updated)),
		line("Pending at start", fmt.Sprint(res.Pending)),
	}
	if res.ProcessedColumnCreated {
		lines = append(lines, MutedStyle.Render("Created the Processed column."))
	}
	if len(res.MarkFailures) > 0 {
		lines = append(lines, WarnStyle.Render("Not marked processed: rows "+joinInts(res.MarkFailures)))
	}
	if len(res.ArchiveFailures) > 0 {
		lines = append(lines, WarnStyle.Render("Not archived: rows "+joinInts(res.ArchiveFailures)))
	}
	return ReportBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func line(key, value string) string {
	return KeyStyle.Render(key+":") + " " + ValueStyle.Render(value)
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, ", ")
}
