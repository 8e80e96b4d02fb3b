package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/tokenhex/internal/config"
	"github.com/alexisbeaulieu97/tokenhex/internal/logger"
)

type rootFlags struct {
	verbose    bool
	logJSON    bool
	configPath string
	dotEnv     string
	lookupEnv  func(string) (string, bool)
}

func newRootCmd() *cobra.Command {
	return newRootCmdWithFlags(&rootFlags{dotEnv: ".env", lookupEnv: os.LookupEnv})
}

func newRootCmdWithFlags(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tokenhex",
		Short:         "Tokenhex converts design token colors into a hex report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.logJSON, "log-json", false, "Write logs as JSON instead of console text")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "Path to a config file (default "+config.DefaultFile+" when present)")

	cmd.AddCommand(newReportCmd(flags))
	cmd.AddCommand(newBrowseCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func (f *rootFlags) loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{
		File:   f.configPath,
		DotEnv: f.dotEnv,
		Lookup: f.lookupEnv,
	})
}

func (f *rootFlags) newLogger(cmd *cobra.Command, level string) (*logger.Logger, error) {
	if f.verbose {
		level = "debug"
	}
	return logger.New(logger.Options{
		Level:         level,
		HumanReadable: !f.logJSON,
		Writer:        cmd.ErrOrStderr(),
	})
}
