package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDuration(t *testing.T) {
	t.Parallel()

	e := Event{StartTime: 10.0, EndTime: 11.5, Confidence: 0.9}
	assert.InDelta(t, 1.5, e.Duration(), 1e-9)
	assert.True(t, e.Valid())

	assert.False(t, Event{StartTime: 5, EndTime: 5}.Valid())
	assert.False(t, Event{StartTime: 5, EndTime: 2}.Valid())
}

func TestNewSessionStatistics(t *testing.T) {
	t.Parallel()

	events := []Event{
		{StartTime: 10, EndTime: 11, Confidence: 0.8, Intensity: 2.0},
		{StartTime: 15, EndTime: 16, Confidence: 0.6, Intensity: 4.0},
		{StartTime: 19, EndTime: 20, Confidence: 0.9, Intensity: 3.0},
	}

	s := NewSession(events)

	assert.InDelta(t, 10.0, s.StartTime, 1e-9)
	assert.InDelta(t, 20.0, s.EndTime, 1e-9)
	assert.Equal(t, 3, s.TotalBarks)
	// total duration is the sum of event durations, not the span
	assert.InDelta(t, 3.0, s.TotalDuration, 1e-9)
	assert.InDelta(t, (0.8+0.6+0.9)/3, s.AvgConfidence, 1e-9)
	assert.InDelta(t, 0.9, s.PeakConfidence, 1e-9)
	assert.InDelta(t, 3.0/10.0, s.BarksPerSecond, 1e-9)
	assert.InDelta(t, 3.0, s.Intensity, 1e-9)
}

func TestNewSessionZeroSpan(t *testing.T) {
	t.Parallel()

	s := NewSession([]Event{{StartTime: 5, EndTime: 5, Confidence: 0.5}})
	assert.Zero(t, s.BarksPerSecond)
}

func TestStaticDetectorFiltersBySensitivity(t *testing.T) {
	t.Parallel()

	d := NewStaticDetector([]Event{
		{StartTime: 3, EndTime: 4, Confidence: 0.9},
		{StartTime: 1, EndTime: 2, Confidence: 0.4},
		{StartTime: 5, EndTime: 6, Confidence: 0.7},
	})

	strict, err := d.Detect(nil, 0.8)
	require.NoError(t, err)
	require.Len(t, strict, 1)
	assert.InDelta(t, 3.0, strict[0].StartTime, 1e-9)

	loose, err := d.Detect(nil, 0.3)
	require.NoError(t, err)
	require.Len(t, loose, 3)
	// chronological regardless of input order
	assert.InDelta(t, 1.0, loose[0].StartTime, 1e-9)

	// monotonic: lower sensitivity never yields fewer detections
	for s := 1.0; s >= 0.0; s -= 0.1 {
		events, err := d.Detect(nil, s)
		require.NoError(t, err)
		next, err := d.Detect(nil, s-0.1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(next), len(events))
	}
}

func TestStaticDetectorSensitivityCommand(t *testing.T) {
	t.Parallel()

	d := NewStaticDetector(nil)
	require.NoError(t, d.AdjustSensitivity(SensitivityCommand{Sensitivity: 0.72, Reason: "false positives dominate"}))
	assert.InDelta(t, 0.72, d.Sensitivity(), 1e-9)
}

func TestViolationRenderTimes(t *testing.T) {
	t.Parallel()

	v := Violation{StartSeconds: 3661.5, EndSeconds: 3725.0}
	v.RenderTimes()

	assert.Equal(t, "01:01:01.500", v.StartTime)
	assert.Equal(t, "01:02:05.000", v.EndTime)
	assert.InDelta(t, 63.5, v.SpanSeconds(), 1e-9)
}
