package components

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Row is one plain-table line.
type Row struct {
	Path   string
	Status string
	Hex    string
	Error  string
}

// WriteTable prints rows as aligned columns for non-interactive output.
func WriteTable(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tSTATUS\tHEX\tERROR")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Path, row.Status, dash(row.Hex), dash(row.Error))
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
