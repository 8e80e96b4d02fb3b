package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1)

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	summaryStyle = lipgloss.NewStyle().MarginTop(1)
	tableStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
)

// Swatch renders a small block filled with hex. Empty hex renders a
// placeholder.
func Swatch(hex string) string {
	if hex == "" {
		return mutedStyle.Render("    ")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ")
}
