package report

import (
	"fmt"
	"io"
	"strings"
)

// Render writes a plain-text violation report. The layout is meant to
// be readable when pasted into a complaint or read aloud.
func Render(w io.Writer, nodeName, date string, data ReportData) error {
	header := fmt.Sprintf("%s bark violation report for %s", nodeName, date)
	if _, err := fmt.Fprintf(w, "%s\n%s\n\n", header, strings.Repeat("=", len(header))); err != nil {
		return err
	}

	fmt.Fprintf(w, "Violations: %d (%d constant, %d intermittent)\n",
		data.Summary.TotalViolations, data.Summary.Constant, data.Summary.Intermittent)
	fmt.Fprintf(w, "Total barks: %d\n\n", data.Summary.TotalBarks)

	for i := range data.Violations {
		d := &data.Violations[i]
		v := &d.Violation
		fmt.Fprintf(w, "%d. %s violation %s - %s (%d barks, avg conf %.2f, peak %.2f)\n",
			i+1, v.Type, v.StartTime, v.EndTime, v.TotalBarks, v.AvgConfidence, v.PeakConfidence)

		for j := range d.Files {
			f := &d.Files[j]
			name := f.FileName
			if name == "" {
				name = "(no recording)"
			}
			fmt.Fprintf(w, "   %s [%s - %s]\n", name, f.StartTime, f.EndTime)
			for _, b := range f.Barks {
				if b.Offset != "" {
					fmt.Fprintf(w, "      %s  at %s in file  conf %.2f  intensity %.2f\n",
						b.ClockTime, b.Offset, b.Confidence, b.Intensity)
				} else {
					fmt.Fprintf(w, "      %s  conf %.2f  intensity %.2f\n",
						b.ClockTime, b.Confidence, b.Intensity)
				}
			}
		}
		fmt.Fprintln(w)
	}

	if len(data.Violations) == 0 {
		if _, err := fmt.Fprintln(w, "No violations found."); err != nil {
			return err
		}
	}
	return nil
}
