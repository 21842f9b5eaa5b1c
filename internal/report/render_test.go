package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barknet/barknet-go/internal/detection"
)

func TestRenderListsViolationsAndFiles(t *testing.T) {
	t.Parallel()

	data := ReportData{
		Summary: Summary{TotalViolations: 1, Constant: 1, TotalBarks: 3},
		Violations: []ViolationDetail{
			{
				Violation: detection.Violation{
					Type:           detection.ViolationConstant,
					StartTime:      "06:25:00.000",
					EndTime:        "06:32:10.500",
					TotalBarks:     3,
					AvgConfidence:  0.8,
					PeakConfidence: 0.95,
				},
				Files: []FileDetail{
					{
						FileName:  "bark_recording_20250601_062500.wav",
						StartTime: "06:25:10.000",
						EndTime:   "06:29:40.000",
						Barks: []BarkRow{
							{ClockTime: "06:25:10.000", Offset: "00:00:10.000", Confidence: 0.9, Intensity: 0.7},
							{ClockTime: "06:29:40.000", Confidence: 0.7, Intensity: 0.4},
						},
					},
				},
			},
		},
	}

	var sb strings.Builder
	require.NoError(t, Render(&sb, "Backyard", "2025-06-01", data))
	out := sb.String()

	assert.Contains(t, out, "Backyard bark violation report for 2025-06-01")
	assert.Contains(t, out, "Violations: 1 (1 constant, 0 intermittent)")
	assert.Contains(t, out, "Constant violation 06:25:00.000 - 06:32:10.500")
	assert.Contains(t, out, "bark_recording_20250601_062500.wav [06:25:10.000 - 06:29:40.000]")
	assert.Contains(t, out, "at 00:00:10.000 in file")
}

func TestRenderEmptyReport(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	require.NoError(t, Render(&sb, "Backyard", "2025-06-01", ReportData{}))
	assert.Contains(t, sb.String(), "No violations found.")
}
