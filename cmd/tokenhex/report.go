package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	appreport "github.com/alexisbeaulieu97/tokenhex/internal/app/report"
	"github.com/alexisbeaulieu97/tokenhex/internal/color"
	"github.com/alexisbeaulieu97/tokenhex/internal/config"
	"github.com/alexisbeaulieu97/tokenhex/internal/tokens"
	"github.com/alexisbeaulieu97/tokenhex/internal/watch"
	tokenerrors "github.com/alexisbeaulieu97/tokenhex/pkg/errors"
)

var reportCmdRunner = runReport

func newReportCmd(root *rootFlags) *cobra.Command {
	opts := reportOptions{}

	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"convert"},
		Short:   "Convert every color token to hex and write a JSON report",
		Long: `Report walks a JSON or YAML token document, converts each color token
(hex strings, oklch() strings and color objects) to a hex value and writes a
JSON report. Exits 1 when any token failed to convert, 2 when the input does
not exist and 3 on any other error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}
			if err := applyReportFlags(cmd, cfg, opts); err != nil {
				return err
			}
			if opts.Watch && cfg.Rev != "" {
				return tokenerrors.NewValidationError("watch", "--watch cannot be combined with --rev", nil)
			}
			return reportCmdRunner(cmd, root, cfg, opts)
		},
	}

	bindReportFlags(cmd, &opts)

	return cmd
}

func requestFor(cfg *config.Config, diff bool) appreport.Request {
	return appreport.Request{
		Input:       cfg.Input,
		Rev:         cfg.Rev,
		Format:      tokens.Format(cfg.Format),
		HexCase:     color.HexCase(cfg.HexCase),
		Output:      cfg.Output,
		NoWrite:     cfg.NoWrite,
		MetricsFile: cfg.MetricsFile,
		Diff:        diff,
	}
}

func runReport(cmd *cobra.Command, root *rootFlags, cfg *config.Config, opts reportOptions) error {
	log, err := root.newLogger(cmd, cfg.LogLevel)
	if err != nil {
		return tokenerrors.NewValidationError("log_level", "invalid log level", err)
	}

	svc := appreport.NewService(log)
	req := requestFor(cfg, opts.Diff)

	generate := func(ctx context.Context) error {
		outcome, err := svc.Run(ctx, req)
		if err != nil {
			return err
		}
		printOutcome(cmd.OutOrStdout(), cmd.ErrOrStderr(), outcome.Report)
		printDiff(cmd.OutOrStdout(), outcome.Diff)
		if outcome.Report.ExitCode() != 0 {
			return errConversionFailed
		}
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !opts.Watch {
		return generate(ctx)
	}

	if err := generate(ctx); err != nil && exitCode(err) != exitConversionFailed {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.New(cfg.Input, cfg.WatchDebounce, log, func(ctx context.Context) error {
		if err := generate(ctx); err != nil && exitCode(err) != exitConversionFailed {
			return err
		}
		return nil
	})
	return w.Run(ctx)
}
