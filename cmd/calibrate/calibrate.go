package calibrate

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/barknet/barknet-go/internal/calibration"
	"github.com/barknet/barknet-go/internal/conf"
	"github.com/barknet/barknet-go/internal/correlation"
	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/groundtruth"
)

// Command creates the calibrate command. It sweeps the sensitivity
// range against a ground truth file and reports the best operating
// point.
func Command(settings *conf.Settings) *cobra.Command {
	var (
		groundTruthPath string
		saveProfile     string
	)

	cmd := &cobra.Command{
		Use:   "calibrate [barks.log]",
		Short: "Calibrate detection sensitivity against ground truth",
		Long:  `Replay a detection log at every sensitivity in the configured sweep range, score each against a ground truth file and report the setting with the best F1.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(settings, args[0], groundTruthPath, saveProfile)
		},
	}

	cmd.Flags().StringVarP(&groundTruthPath, "ground-truth", "g", "", "Path to ground truth JSON file (required)")
	cmd.Flags().StringVar(&saveProfile, "save-profile", "", "Store the result under this profile name")
	cmd.Flags().Float64Var(&settings.Calibration.Sweep.Min, "min", settings.Calibration.Sweep.Min, "Lowest sensitivity to try")
	cmd.Flags().Float64Var(&settings.Calibration.Sweep.Max, "max", settings.Calibration.Sweep.Max, "Highest sensitivity to try")
	cmd.Flags().Float64Var(&settings.Calibration.Sweep.Step, "step", settings.Calibration.Sweep.Step, "Sweep increment")
	cmd.Flags().Float64Var(&settings.Calibration.Tolerance, "tolerance", settings.Calibration.Tolerance, "Match tolerance in seconds")
	_ = cmd.MarkFlagRequired("ground-truth")

	return cmd
}

func runSweep(settings *conf.Settings, logPath, groundTruthPath, saveProfile string) error {
	truth, err := groundtruth.Load(groundTruthPath)
	if err != nil {
		return err
	}

	f, err := os.Open(logPath)
	if err != nil {
		return err
	}
	annotated, err := correlation.ParseLog(f, settings.Analysis.BarkDuration)
	f.Close()
	if err != nil {
		return err
	}

	events := make([]detection.Event, 0, len(annotated))
	for i := range annotated {
		events = append(events, annotated[i].Event)
	}

	outcome, err := calibration.Sweep(
		detection.NewStaticDetector(events),
		nil,
		truth.ReferenceTimes(),
		calibration.SweepConfig{
			Min:       settings.Calibration.Sweep.Min,
			Max:       settings.Calibration.Sweep.Max,
			Step:      settings.Calibration.Sweep.Step,
			Tolerance: settings.Calibration.Tolerance,
		})
	if err != nil {
		return err
	}

	printOutcome(outcome)

	if saveProfile != "" {
		return storeProfile(settings, saveProfile, outcome.Best.Sensitivity)
	}
	return nil
}

func printOutcome(outcome calibration.SweepOutcome) {
	fmt.Printf("%-12s %-8s %-8s %-8s %-8s\n", "sensitivity", "match", "fp", "miss", "f1")
	for _, step := range outcome.Steps {
		fmt.Printf("%-12.2f %-8d %-8d %-8d %-8.3f\n",
			step.Sensitivity, step.Result.Matches, step.Result.FalsePositives, step.Result.Misses, step.Result.F1)
	}
	fmt.Printf("\nBest sensitivity: %.2f (F1 %.3f, precision %.3f, recall %.3f)\n",
		outcome.Best.Sensitivity, outcome.Best.Result.F1, outcome.Best.Result.Precision, outcome.Best.Result.Recall)
}

func storeProfile(settings *conf.Settings, name string, sensitivity float64) error {
	store, err := calibration.NewProfileStore(settings.Calibration.ProfilesDir)
	if err != nil {
		return err
	}
	profile := &calibration.Profile{
		Name:                name,
		Sensitivity:         sensitivity,
		MinBarkDuration:     settings.Detector.MinBarkDuration,
		SessionGapThreshold: settings.Analysis.SessionGap,
	}
	if err := store.Save(profile); err != nil {
		return err
	}
	fmt.Printf("Saved calibration profile %q\n", name)
	return nil
}
