package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barknet/barknet-go/internal/detection"
)

func testClassifier() *Classifier {
	return NewClassifier(ClassifierConfig{
		SessionGap:          10,
		ConstantMinDuration: 300, // 5 minutes
		MinViolationSpan:    60,
	})
}

// alternatingGapEvents spaces ten-second bark bursts with alternating 5s
// and 10s gaps so no gap ever exceeds the threshold.
func alternatingGapEvents(count int) []detection.Event {
	events := make([]detection.Event, 0, count)
	start := 0.0
	for i := 0; i < count; i++ {
		events = append(events, detection.Event{
			StartTime:  start,
			EndTime:    start + 10,
			Confidence: 0.85,
			Intensity:  1.5,
		})
		if i%2 == 0 {
			start += 10 + 5
		} else {
			start += 10 + 10
		}
	}
	return events
}

func TestClassifyConstantViolation(t *testing.T) {
	t.Parallel()

	// 18 events, gaps never exceed 10s, wall clock span well over 5 minutes
	events := alternatingGapEvents(18)
	span := events[len(events)-1].EndTime - events[0].StartTime
	require.Greater(t, span, 300.0)

	violations := testClassifier().Classify("2024-06-01", events)

	require.Len(t, violations, 1)
	v := violations[0]
	assert.Equal(t, detection.ViolationConstant, v.Type)
	assert.Equal(t, "2024-06-01", v.Date)
	assert.Equal(t, 18, v.TotalBarks)
	assert.InDelta(t, span, v.SpanSeconds(), 1e-9)
	assert.NotEmpty(t, v.StartTime)
	assert.NotEmpty(t, v.EndTime)
}

func TestClassifyIntermittentViolation(t *testing.T) {
	t.Parallel()

	// 90 second run: reportable but under the constant threshold
	events := eventsAt(0, 9, 18, 27, 36, 45, 54, 63, 72, 81, 89)
	violations := testClassifier().Classify("2024-06-01", events)

	require.Len(t, violations, 1)
	assert.Equal(t, detection.ViolationIntermittent, violations[0].Type)
}

func TestClassifyDropsShortRuns(t *testing.T) {
	t.Parallel()

	// 21 second run, under the 60s minimum reportable span
	violations := testClassifier().Classify("2024-06-01", eventsAt(0, 10, 20))
	assert.Empty(t, violations)
}

func TestClassifySplitsRunsAcrossLargeGaps(t *testing.T) {
	t.Parallel()

	// two 90s runs separated by a 10-minute quiet period
	var events []detection.Event
	events = append(events, eventsAt(0, 9, 18, 27, 36, 45, 54, 63, 72, 81, 89)...)
	events = append(events, eventsAt(700, 709, 718, 727, 736, 745, 754, 763, 772, 781, 789)...)

	violations := testClassifier().Classify("2024-06-01", events)

	require.Len(t, violations, 2)
	assert.Equal(t, detection.ViolationIntermittent, violations[0].Type)
	assert.Equal(t, detection.ViolationIntermittent, violations[1].Type)
}

func TestClassifyGapAtThresholdStaysInRun(t *testing.T) {
	t.Parallel()

	// gap of exactly 10s between event end and next start
	events := eventsAt(0, 11, 22, 33, 44, 55, 66)
	violations := testClassifier().Classify("2024-06-01", events)

	require.Len(t, violations, 1)
	assert.Equal(t, 7, violations[0].TotalBarks)
}

func TestClassifySessionsEquivalentToFlatEvents(t *testing.T) {
	t.Parallel()

	events := alternatingGapEvents(18)
	sessions := BuildSessions(events, 10)

	flat := testClassifier().Classify("2024-06-01", events)
	fromSessions := testClassifier().ClassifySessions("2024-06-01", sessions)

	require.Equal(t, len(flat), len(fromSessions))
	for i := range flat {
		assert.Equal(t, flat[i].Type, fromSessions[i].Type)
		assert.InDelta(t, flat[i].StartSeconds, fromSessions[i].StartSeconds, 1e-9)
		assert.InDelta(t, flat[i].EndSeconds, fromSessions[i].EndSeconds, 1e-9)
	}
}

func TestClassifyEmptyInput(t *testing.T) {
	t.Parallel()

	assert.Empty(t, testClassifier().Classify("2024-06-01", nil))
}

func TestReviveSkipsUnparseableViolations(t *testing.T) {
	t.Parallel()

	stored := []detection.Violation{
		{Date: "2024-06-01", StartTime: "06:25:10.000", EndTime: "06:31:40.500"},
		{Date: "2024-06-01", StartTime: "06:25:10,000", EndTime: "06:31:40"}, // legacy comma millis
		{Date: "2024-06-01", StartTime: "garbled", EndTime: "06:31:40.500"},
	}

	revived, skipped := Revive(stored)

	assert.Equal(t, 1, skipped)
	require.Len(t, revived, 2)
	assert.InDelta(t, 6*3600+25*60+10, revived[0].StartSeconds, 1e-9)
	assert.InDelta(t, 6*3600+31*60+40.5, revived[0].EndSeconds, 1e-9)
	assert.InDelta(t, 6*3600+25*60+10, revived[1].StartSeconds, 1e-9)
}
