package realtime

import (
	"github.com/spf13/cobra"

	"github.com/barknet/barknet-go/internal/analysis"
	"github.com/barknet/barknet-go/internal/conf"
)

// Command creates the realtime command for continuous monitoring of a
// growing detection log.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realtime [barks.log]",
		Short: "Monitor a detection log continuously",
		Long: `Follow a growing detection log, reclassify violations at a fixed interval and render the final report on interrupt.

While monitoring, press Enter whenever you hear a bark: each input line records an operator mark for the live calibration loop, which scores marks against detections and adjusts the detection sensitivity.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings.Input.Path = args[0]
			return analysis.RealtimeAnalysis(settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().IntVar(&settings.Realtime.Interval, "interval", settings.Realtime.Interval, "Seconds between monitoring ticks")
	cmd.Flags().IntVar(&settings.Calibration.Live.Interval, "live-interval", settings.Calibration.Live.Interval, "Seconds between live calibration evaluations")
	cmd.Flags().BoolVar(&settings.Output.SQLite.Enabled, "save", settings.Output.SQLite.Enabled, "Persist violations to the sqlite database")
}
