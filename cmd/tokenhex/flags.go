package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenhex/internal/config"
)

type reportOptions struct {
	Input       string
	Output      string
	NoWrite     bool
	Rev         string
	HexCase     string
	Format      string
	MetricsFile string
	Watch       bool
	Diff        bool
}

// bindSourceFlags registers the flags that select and convert the input.
func bindSourceFlags(cmd *cobra.Command, opts *reportOptions) {
	defaults := config.Default()

	cmd.Flags().StringVarP(&opts.Input, "input", "i", defaults.Input, "Token document to read (JSON or YAML)")
	cmd.Flags().StringVar(&opts.Rev, "rev", "", "Read the input from a git revision instead of the working tree")
	cmd.Flags().StringVar(&opts.HexCase, "hex-case", defaults.HexCase, "Case of passed-through hex values: lower or preserve")
	cmd.Flags().StringVar(&opts.Format, "format", defaults.Format, "Input format: auto, json or yaml")
}

func bindReportFlags(cmd *cobra.Command, opts *reportOptions) {
	bindSourceFlags(cmd, opts)

	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.Default().Output, "Where to write the JSON report")
	cmd.Flags().BoolVar(&opts.NoWrite, "no-write", false, "Print the summary without writing the report file")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus textfile metrics to this path")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Regenerate the report whenever the input changes")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Print a diff of results against the existing report")
}

// applyReportFlags overrides cfg with every flag the user set explicitly and
// validates the result.
func applyReportFlags(cmd *cobra.Command, cfg *config.Config, opts reportOptions) error {
	changed := cmd.Flags().Changed

	if changed("input") {
		cfg.Input = opts.Input
	}
	if changed("output") {
		cfg.Output = opts.Output
	}
	if changed("no-write") {
		cfg.NoWrite = opts.NoWrite
	}
	if changed("rev") {
		cfg.Rev = opts.Rev
	}
	if changed("hex-case") {
		cfg.HexCase = opts.HexCase
	}
	if changed("format") {
		cfg.Format = opts.Format
	}
	if changed("metrics-file") {
		cfg.MetricsFile = opts.MetricsFile
	}

	if err := config.ValidateConfig(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
