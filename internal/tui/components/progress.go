package components

import (
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// Coverage renders the share of color tokens that converted.
type Coverage struct {
	bar   progress.Model
	total int
}

// NewCoverage creates a coverage bar for the given token total.
func NewCoverage(total int) Coverage {
	bar := progress.New(progress.WithGradient("#f87171", "#4ade80"))
	bar.Width = 30
	return Coverage{bar: bar, total: total}
}

// View renders the bar for the number of successful conversions.
func (c Coverage) View(successful int) string {
	ratio := 0.0
	if c.total > 0 {
		ratio = math.Min(1.0, float64(successful)/float64(c.total))
	}
	label := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d/%d converted", successful, c.total))
	return lipgloss.JoinHorizontal(lipgloss.Left, label, " ", c.bar.ViewAs(ratio))
}
