package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/barknet/barknet-go/cmd/calibrate"
	"github.com/barknet/barknet-go/cmd/file"
	"github.com/barknet/barknet-go/cmd/groundtruth"
	"github.com/barknet/barknet-go/cmd/profile"
	"github.com/barknet/barknet-go/cmd/realtime"
	"github.com/barknet/barknet-go/cmd/report"
	"github.com/barknet/barknet-go/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "barknet",
		Short: "BarkNet CLI",
		Long:  "Detect, classify and document dog bark noise violations.",
	}

	// Set up the global flags for the root command.
	if err := setupFlags(rootCmd, settings); err != nil {
		cobra.CheckErr(err)
	}

	subcommands := []*cobra.Command{
		file.Command(settings),
		realtime.Command(settings),
		calibrate.Command(settings),
		report.Command(settings),
		profile.Command(settings),
		groundtruth.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) error {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", viper.GetBool("debug"), "Enable debug output")
	rootCmd.PersistentFlags().Float64VarP(&settings.Detector.Sensitivity, "sensitivity", "s", viper.GetFloat64("detector.sensitivity"), "Detection confidence threshold between 0.0 and 1.0")
	rootCmd.PersistentFlags().Float64Var(&settings.Analysis.SessionGap, "session-gap", viper.GetFloat64("analysis.sessiongap"), "Max gap between barks within one session, seconds")
	rootCmd.PersistentFlags().StringVar(&settings.Recordings.Dir, "recordings", viper.GetString("recordings.dir"), "Directory holding recorder output")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		return fmt.Errorf("error binding flags: %v", err)
	}

	return nil
}
