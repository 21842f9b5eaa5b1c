package groundtruth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barknet/barknet-go/internal/conf"
	"github.com/barknet/barknet-go/internal/groundtruth"
)

// Command creates the groundtruth command with subcommands for checking
// and repairing annotation files.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groundtruth",
		Short: "Validate and repair ground truth files",
	}

	cmd.AddCommand(
		validateCommand(),
		repairCommand(),
	)

	return cmd
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [truth.json]",
		Short: "Check a ground truth file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := groundtruth.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %d events, audio %q, duration %.1f s\n",
				args[0], len(f.Events), f.AudioFile, f.Duration)
			return nil
		},
	}
}

func repairCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "repair [truth.json]",
		Short: "Repair a ground truth file with malformed events",
		Long:  `Fix recoverable annotation mistakes, drop unusable events and report every decision. The input file is never modified unless --output points at it.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := groundtruth.Repair(args[0])
			if err != nil {
				return err
			}

			for _, outcome := range report.Outcomes {
				if outcome.Warning != "" {
					fmt.Printf("event %d: %s\n", outcome.Index, outcome.Warning)
				}
			}
			fmt.Printf("Processed %d events: %d fixed, %d dropped, %d kept\n",
				report.Processed, report.Fixed, report.Dropped, report.Processed-report.Dropped)

			if output != "" {
				if err := report.File.Save(output); err != nil {
					return err
				}
				fmt.Printf("Repaired file written to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the repaired file here")
	return cmd
}
