package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/tokenhex/internal/report"
)

const (
	defaultHeight = 20
	// Title, section headers, detail line and summary.
	chromeHeight = 10
)

// Model is the Bubbletea state for browsing a color report.
type Model struct {
	report       *report.Report
	source       string
	table        table.Model
	visible      []report.Result
	failuresOnly bool
	quitting     bool
}

// NewModel constructs a browser over rep. source names where the report came
// from and is shown in the title.
func NewModel(rep *report.Report, source string) Model {
	if rep == nil {
		rep = &report.Report{Results: []report.Result{}}
	}

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(defaultHeight-chromeHeight),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderStyle(lipgloss.NormalBorder()).BorderBottom(true)
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(styles)

	m := Model{report: rep, source: source, table: t}
	m.refreshRows()
	return m
}

// Init starts the Bubbletea program.
func (m Model) Init() tea.Cmd {
	return nil
}

// Visible returns the results currently listed in the table.
func (m Model) Visible() []report.Result {
	return m.visible
}

// FailuresOnly reports whether successful results are hidden.
func (m Model) FailuresOnly() bool {
	return m.failuresOnly
}

// Selected returns the highlighted result, if any.
func (m Model) Selected() (report.Result, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.visible) {
		return report.Result{}, false
	}
	return m.visible[idx], true
}

func (m *Model) refreshRows() {
	m.visible = make([]report.Result, 0, len(m.report.Results))
	rows := make([]table.Row, 0, len(m.report.Results))
	for _, res := range m.report.Results {
		if m.failuresOnly && res.Status != report.StatusFailed {
			continue
		}
		m.visible = append(m.visible, res)
		rows = append(rows, table.Row{res.Path, string(res.Status), res.Hex, res.Error})
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

// columns splits width between the four result columns.
func columns(width int) []table.Column {
	const (
		statusWidth = 8
		hexWidth    = 10
	)
	rest := max(width-statusWidth-hexWidth-10, 30)
	pathWidth := rest * 3 / 5
	return []table.Column{
		{Title: "Path", Width: pathWidth},
		{Title: "Status", Width: statusWidth},
		{Title: "Hex", Width: hexWidth},
		{Title: "Error", Width: rest - pathWidth},
	}
}
