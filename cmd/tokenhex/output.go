package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/tokenhex/internal/report"
	"github.com/alexisbeaulieu97/tokenhex/internal/tui/components"
)

var (
	headlineOKStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	headlineFailStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	failureLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	diffAddStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	diffDelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func summaryFor(rep *report.Report) components.Summary {
	failures := make([]components.Failure, 0, rep.Summary.Failed)
	for _, res := range rep.Failures() {
		failures = append(failures, components.Failure{Path: res.Path, Reason: res.Error})
	}
	return components.NewSummary(components.SummaryData{
		Total:      rep.Summary.Total,
		Successful: rep.Summary.Successful,
		Failed:     rep.Summary.Failed,
		Failures:   failures,
	})
}

// printOutcome writes the summary line to out and one "path: reason" line
// per failure to errOut.
func printOutcome(out, errOut io.Writer, rep *report.Report) {
	summary := summaryFor(rep)

	headline := summary.Headline()
	if isTerminal(out) {
		if rep.Summary.Failed > 0 {
			headline = headlineFailStyle.Render(headline)
		} else {
			headline = headlineOKStyle.Render(headline)
		}
	}
	fmt.Fprintln(out, headline)

	styled := isTerminal(errOut)
	for _, line := range summary.FailureLines() {
		if styled {
			line = failureLineStyle.Render(line)
		}
		fmt.Fprintln(errOut, line)
	}
}

func tableRows(rep *report.Report) []components.Row {
	rows := make([]components.Row, 0, len(rep.Results))
	for _, res := range rep.Results {
		rows = append(rows, components.Row{
			Path:   res.Path,
			Status: string(res.Status),
			Hex:    res.Hex,
			Error:  res.Error,
		})
	}
	return rows
}

// printDiff writes a result diff, colouring added and removed lines on a
// terminal.
func printDiff(out io.Writer, diff string) {
	if diff == "" {
		return
	}
	if !isTerminal(out) {
		fmt.Fprint(out, diff)
		return
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			line = diffAddStyle.Render(line)
		case strings.HasPrefix(line, "-"):
			line = diffDelStyle.Render(line)
		}
		fmt.Fprintln(out, line)
	}
}
