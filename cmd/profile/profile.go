package profile

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/barknet/barknet-go/internal/calibration"
	"github.com/barknet/barknet-go/internal/conf"
)

// Command creates the profile command with its subcommands for managing
// stored calibration profiles.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage calibration profiles",
	}

	cmd.AddCommand(
		listCommand(settings),
		showCommand(settings),
		applyCommand(settings),
		deleteCommand(settings),
	)

	return cmd
}

func openStore(settings *conf.Settings) (*calibration.ProfileStore, error) {
	return calibration.NewProfileStore(settings.Calibration.ProfilesDir)
}

func listCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(settings)
			if err != nil {
				return err
			}
			names, err := store.List()
			if err != nil {
				return err
			}
			if len(names) == 0 {
				fmt.Println("No profiles stored.")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func showCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(settings)
			if err != nil {
				return err
			}
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Name:                  %s\n", p.Name)
			fmt.Printf("Sensitivity:           %.2f\n", p.Sensitivity)
			fmt.Printf("Min bark duration:     %.2f s\n", p.MinBarkDuration)
			fmt.Printf("Session gap threshold: %.2f s\n", p.SessionGapThreshold)
			fmt.Printf("Background noise:      %.2f\n", p.BackgroundNoiseLevel)
			fmt.Printf("Created:               %s\n", p.CreatedDate)
			if p.Location != "" {
				fmt.Printf("Location:              %s\n", p.Location)
			}
			if p.Notes != "" {
				fmt.Printf("Notes:                 %s\n", p.Notes)
			}
			return nil
		},
	}
}

// applyCommand copies a profile's operating point into config.yaml so
// later runs pick it up without flags.
func applyCommand(settings *conf.Settings) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "apply [name]",
		Short: "Write a profile's settings into the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(settings)
			if err != nil {
				return err
			}
			p, err := store.Load(args[0])
			if err != nil {
				return err
			}
			settings.Detector.Sensitivity = p.Sensitivity
			settings.Detector.MinBarkDuration = p.MinBarkDuration
			settings.Analysis.SessionGap = p.SessionGapThreshold
			if err := conf.SaveYAMLConfig(configPath, settings); err != nil {
				return err
			}
			fmt.Printf("Applied profile %q to %s\n", p.Name, configPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "config.yaml", "Config file to update")
	return cmd
}

func deleteCommand(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(settings)
			if err != nil {
				return err
			}
			if err := store.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted profile %q\n", args[0])
			return nil
		},
	}
}
