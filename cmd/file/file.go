package file

import (
	"github.com/spf13/cobra"

	"github.com/barknet/barknet-go/internal/analysis"
	"github.com/barknet/barknet-go/internal/conf"
)

// Command creates a new file command for analyzing a single detection log.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file [barks.log]",
		Short: "Analyze a detection log",
		Long:  `Analyze a recorded detection log for bark violations and print a report.`,
		Args:  cobra.ExactArgs(1), // the command expects exactly one argument
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			return analysis.FileAnalysis(settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the file command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().BoolVar(&settings.Output.SQLite.Enabled, "save", settings.Output.SQLite.Enabled, "Persist violations to the sqlite database")
	cmd.Flags().StringVar(&settings.Output.SQLite.Path, "db", settings.Output.SQLite.Path, "Path to sqlite database")
	cmd.Flags().Float64Var(&settings.Analysis.BarkDuration, "bark-duration", settings.Analysis.BarkDuration, "Nominal bark length for log entries, seconds")
}
