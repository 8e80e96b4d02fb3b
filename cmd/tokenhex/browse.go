package main

import (
	"context"
	"errors"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	appreport "github.com/alexisbeaulieu97/tokenhex/internal/app/report"
	"github.com/alexisbeaulieu97/tokenhex/internal/report"
	"github.com/alexisbeaulieu97/tokenhex/internal/tui"
	"github.com/alexisbeaulieu97/tokenhex/internal/tui/components"
	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

type browseOptions struct {
	reportOptions
	ReportPath string
}

// runProgram is replaced in tests so no terminal is needed.
var runProgram = func(ctx context.Context, m tea.Model, cmd *cobra.Command) error {
	_, err := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	).Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func newBrowseCmd(root *rootFlags) *cobra.Command {
	opts := browseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse conversion results interactively",
		Long: `Browse converts the input document without writing a report and shows the
results in an interactive table. With --report an existing report file is
opened instead. When stdout is not a terminal a plain table is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(cmd, root, opts)
		},
	}

	bindSourceFlags(cmd, &opts.reportOptions)
	cmd.Flags().StringVar(&opts.ReportPath, "report", "", "Open an existing JSON report instead of converting the input")

	return cmd
}

func runBrowse(cmd *cobra.Command, root *rootFlags, opts browseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rep, source, err := loadBrowseReport(ctx, cmd, root, opts)
	if err != nil {
		return err
	}

	if !isTerminal(cmd.OutOrStdout()) {
		return components.WriteTable(cmd.OutOrStdout(), tableRows(rep))
	}
	return runProgram(ctx, tui.NewModel(rep, source), cmd)
}

func loadBrowseReport(ctx context.Context, cmd *cobra.Command, root *rootFlags, opts browseOptions) (*report.Report, string, error) {
	if opts.ReportPath != "" {
		rep, err := report.Read(opts.ReportPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, "", tokenerrors.NewInputNotFoundError(opts.ReportPath, "", err)
			}
			return nil, "", tokenerrors.NewParseError(opts.ReportPath, 0, err)
		}
		return rep, opts.ReportPath, nil
	}

	cfg, err := root.loadConfig()
	if err != nil {
		return nil, "", err
	}
	cfg.NoWrite = true
	cfg.MetricsFile = ""
	if err := applyReportFlags(cmd, cfg, opts.reportOptions); err != nil {
		return nil, "", err
	}

	log, err := root.newLogger(cmd, cfg.LogLevel)
	if err != nil {
		return nil, "", tokenerrors.NewValidationError("log_level", "invalid log level", err)
	}

	outcome, err := appreport.NewService(log).Run(ctx, requestFor(cfg, false))
	if err != nil {
		return nil, "", err
	}

	source := cfg.Input
	if cfg.Rev != "" {
		source = cfg.Input + "@" + cfg.Rev
	}
	return outcome.Report, source, nil
}
