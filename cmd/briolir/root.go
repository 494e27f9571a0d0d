package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/briolir/briolir/internal/diag"
)

// rootOptions carries the flags shared by every subcommand.
type rootOptions struct {
	logLevel string
	noColor  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "briolir",
		Short:         "Convert three-address IR functions into SSA form",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "minimum log level: debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	cmd.AddCommand(newTransformCmd(opts))
	cmd.AddCommand(newDumpCmd(opts))
	cmd.AddCommand(newSelftestCmd(opts))

	return cmd
}

func (o *rootOptions) logger() *diag.Logger {
	return diag.NewLogger(os.Stderr, diag.ParseLevel(o.logLevel), o.noColor)
}
