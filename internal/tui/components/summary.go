package components

import (
	"fmt"
	"strings"
)

// Failure is one failed token for summary rendering.
type Failure struct {
	Path   string
	Reason string
}

// SummaryData aggregates report counts for rendering summaries.
type SummaryData struct {
	Total      int
	Successful int
	Failed     int
	Failures   []Failure
}

// Summary renders a textual report summary.
type Summary struct {
	data SummaryData
}

// NewSummary creates a new Summary component.
func NewSummary(data SummaryData) Summary {
	return Summary{data: data}
}

// Headline is the one-line count summary.
func (s Summary) Headline() string {
	noun := "tokens"
	if s.data.Total == 1 {
		noun = "token"
	}
	return fmt.Sprintf("Converted %d color %s: %d successful, %d failed", s.data.Total, noun, s.data.Successful, s.data.Failed)
}

// FailureLines returns one "path: reason" line per failure.
func (s Summary) FailureLines() []string {
	lines := make([]string, 0, len(s.data.Failures))
	for _, f := range s.data.Failures {
		lines = append(lines, fmt.Sprintf("%s: %s", f.Path, f.Reason))
	}
	return lines
}

// View renders the headline followed by the failure list.
func (s Summary) View() string {
	lines := []string{s.Headline()}
	if len(s.data.Failures) > 0 {
		lines = append(lines, "Failures:")
		for _, line := range s.FailureLines() {
			lines = append(lines, "  ✗ "+line)
		}
	}
	return strings.Join(lines, "\n")
}
