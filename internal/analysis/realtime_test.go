package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barknet/barknet-go/internal/observability"
)

func realtimeMonitor(t *testing.T) *monitor {
	t.Helper()

	settings := testSettings(t)
	settings.Detector.Sensitivity = 0.5
	settings.Calibration.Tolerance = 2
	settings.Calibration.Live.Interval = 30
	settings.Calibration.Live.Step = 0.05
	settings.Calibration.Live.MinDelta = 0.01
	settings.Calibration.Live.MinSensitivity = 0.1
	settings.Calibration.Live.MaxSensitivity = 0.95
	settings.Realtime.Interval = 30

	return newMonitor(settings, observability.NewTestMetrics())
}

func TestTickFeedsDetectionsToLiveLoop(t *testing.T) {
	t.Parallel()

	f := realtimeMonitor(t)
	f.settings.Input.Path = writeDetectionLog(t,
		"2025-06-01 06:25:10,000 - INFO - Bark detected! Confidence: 0.91, Intensity: 0.64",
		"2025-06-01 06:25:20,000 - INFO - Bark detected! Confidence: 0.72, Intensity: 0.41",
	)
	f.tick()

	// marks at the detection times balance the score, so the loop holds
	f.live.AddMark(float64(6*3600 + 25*60 + 10))
	f.live.AddMark(float64(6*3600 + 25*60 + 20))
	result, sensitivity, changed := f.live.Evaluate()
	assert.False(t, changed)
	assert.Equal(t, 2, result.Matches)
	assert.InDelta(t, 0.5, sensitivity, 0.001)
}

func TestMonitorAppliesSensitivityToSettings(t *testing.T) {
	t.Parallel()

	f := realtimeMonitor(t)
	// marks with no matching detections: misses dominate, nudge up
	f.live.AddMark(100)
	f.live.AddMark(200)

	_, sensitivity, changed := f.live.Evaluate()
	require.True(t, changed)
	assert.InDelta(t, 0.55, sensitivity, 0.001)
	assert.InDelta(t, 0.55, f.settings.Detector.Sensitivity, 0.001,
		"committed sensitivity must reach the running configuration")
}

func TestReadMarksRecordsEachLine(t *testing.T) {
	t.Parallel()

	f := realtimeMonitor(t)
	f.readMarks(strings.NewReader("m\nm\nm\n"))

	// three marks and no detections: the loop sees three misses
	result, _, _ := f.live.Evaluate()
	assert.Equal(t, 3, result.Misses)
}

func TestIngestResumesFromOffsetAndHandlesRotation(t *testing.T) {
	t.Parallel()

	f := realtimeMonitor(t)
	f.settings.Input.Path = writeDetectionLog(t,
		"2025-06-01 06:25:10,000 - INFO - Bark detected! Confidence: 0.91, Intensity: 0.64",
	)

	added, err := f.ingest()
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	// nothing new appended
	added, err = f.ingest()
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Len(t, f.events, 1)
}
