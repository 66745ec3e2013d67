package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Run report
	ReportBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	KeyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	ValueStyle     = lipgloss.NewStyle()
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("28")).Bold(true)
	WarnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "244"})
)

// urgencyColor is the tview color tag for an urgency label.
func urgencyColor(urgency string) string {
	switch urgency {
	case "High":
		return "red"
	case "Medium":
		return "yellow"
	case "Low":
		return "green"
	default:
		return "gray"
	}
}
