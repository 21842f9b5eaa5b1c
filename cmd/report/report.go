package report

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/barknet/barknet-go/internal/analysis"
	"github.com/barknet/barknet-go/internal/conf"
	"github.com/barknet/barknet-go/internal/datastore"
	"github.com/barknet/barknet-go/internal/detection"
)

// Command creates the report command, which renders violations already
// persisted in the sqlite database.
func Command(settings *conf.Settings) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render stored violations",
		Long:  `Print violations persisted in the sqlite database, optionally filtered by date.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(settings, date)
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only show violations for this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&settings.Output.SQLite.Path, "db", settings.Output.SQLite.Path, "Path to sqlite database")

	return cmd
}

func runReport(settings *conf.Settings, date string) error {
	store := datastore.New(settings.Output.SQLite.Path, settings.Main.Name)
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(date)
	if err != nil {
		return err
	}

	return renderRecords(os.Stdout, records)
}

// renderRecords revives the stored clock strings back to seconds before
// rendering, so rows whose timestamps no longer parse are skipped with
// a warning instead of printed with bogus spans.
func renderRecords(w io.Writer, records []datastore.ViolationRecord) error {
	stored := make([]detection.Violation, 0, len(records))
	for i := range records {
		stored = append(stored, records[i].ToViolation())
	}

	revived, skipped := analysis.Revive(stored)
	if skipped > 0 {
		fmt.Fprintf(w, "Warning: skipped %d stored violation(s) with unparseable timestamps\n\n", skipped)
	}
	if len(revived) == 0 {
		_, err := fmt.Fprintln(w, "No stored violations found.")
		return err
	}

	for i := range revived {
		v := &revived[i]
		fmt.Fprintf(w, "%d. [%s] %s violation %s - %s (%.0f s, %d barks, avg conf %.2f, peak %.2f)\n",
			i+1, v.Date, v.Type, v.StartTime, v.EndTime, v.SpanSeconds(), v.TotalBarks, v.AvgConfidence, v.PeakConfidence)
		for j := range v.Files {
			f := &v.Files[j]
			fmt.Fprintf(w, "   %s [%s - %s]\n", f.FileName, f.StartTime, f.EndTime)
		}
	}
	return nil
}
