package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tokenhex/internal/report"
	"github.com/alexisbeaulieu97/tokenhex/internal/tui/components"
)

// View renders the current state of the model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sections []string

	sections = append(sections, titleStyle.Render(fmt.Sprintf("Tokenhex • %s", m.title())))

	coverage := components.NewCoverage(m.report.Summary.Total).View(m.report.Summary.Successful)
	sections = append(sections, sectionStyle.Render("Coverage"), coverage)

	heading := "Results"
	if m.failuresOnly {
		heading = "Results (failures only)"
	}
	sections = append(sections, sectionStyle.Render(heading), tableStyle.Render(m.table.View()))
	sections = append(sections, m.detail())

	summary := components.NewSummary(components.SummaryData{
		Total:      m.report.Summary.Total,
		Successful: m.report.Summary.Successful,
		Failed:     m.report.Summary.Failed,
	}).Headline()
	sections = append(sections, summaryStyle.Render(summary))
	sections = append(sections, mutedStyle.Render("↑/↓ move • f failures only • q quit"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) detail() string {
	res, ok := m.Selected()
	if !ok {
		return mutedStyle.Render("no results")
	}
	line := fmt.Sprintf("%s %s %s", StatusIcon(res.Status), res.Path, mutedStyle.Render(res.Source))
	if res.Status == report.StatusSuccess {
		return fmt.Sprintf("%s %s  %s", Swatch(res.Hex), res.Hex, line)
	}
	return fmt.Sprintf("%s  %s", line, failureStyle.Render(res.Error))
}

func (m Model) title() string {
	if strings.TrimSpace(m.source) != "" {
		return m.source
	}
	return "Color report"
}

// StatusIcon returns the glyph representing a result status.
func StatusIcon(status report.Status) string {
	switch status {
	case report.StatusSuccess:
		return successStyle.Render("✓")
	case report.StatusFailed:
		return failureStyle.Render("✗")
	default:
		return mutedStyle.Render("…")
	}
}
