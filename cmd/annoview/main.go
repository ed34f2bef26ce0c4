// Command annoview renders WebAnno TSV annotation files from the command line.
package main

import (
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "annoview",
		Short:        "Inspect and render WebAnno TSV annotation files",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	logger := func() *slog.Logger {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		return slog.New(log.NewWithOptions(os.Stderr, log.Options{
			Level:  level,
			Prefix: "annoview",
		}))
	}

	root.AddCommand(
		newRenderCmd(logger),
		newCheckCmd(logger),
		newLegendCmd(),
	)
	return root
}
