package calibration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/observability"
)

func testLiveConfig() LiveConfig {
	return LiveConfig{
		Interval:       10 * time.Millisecond,
		Tolerance:      3,
		Step:           0.05,
		MinDelta:       0.02,
		MinSensitivity: 0.1,
		MaxSensitivity: 0.9,
	}
}

func TestEvaluateNudgesDownOnFalsePositives(t *testing.T) {
	t.Parallel()

	controller := detection.NewStaticDetector(nil)
	loop := NewLiveLoop(testLiveConfig(), controller, 0.5, observability.NewTestMetrics())

	loop.AddMark(10)
	loop.AddDetection(10.5)
	loop.AddDetection(50)
	loop.AddDetection(70)

	result, sensitivity, committed := loop.Evaluate()

	assert.Equal(t, 2, result.FalsePositives)
	assert.Zero(t, result.Misses)
	assert.True(t, committed)
	assert.InDelta(t, 0.45, sensitivity, 1e-9)
	assert.InDelta(t, 0.45, controller.Sensitivity(), 1e-9)
}

func TestEvaluateNudgesUpOnMisses(t *testing.T) {
	t.Parallel()

	controller := detection.NewStaticDetector(nil)
	loop := NewLiveLoop(testLiveConfig(), controller, 0.5, nil)

	loop.AddMark(10)
	loop.AddMark(30)
	loop.AddDetection(10.5)

	result, sensitivity, committed := loop.Evaluate()

	assert.Equal(t, 1, result.Misses)
	assert.Zero(t, result.FalsePositives)
	assert.True(t, committed)
	assert.InDelta(t, 0.55, sensitivity, 1e-9)
}

func TestEvaluateHoldsWhenBalanced(t *testing.T) {
	t.Parallel()

	controller := detection.NewStaticDetector(nil)
	loop := NewLiveLoop(testLiveConfig(), controller, 0.5, nil)

	loop.AddMark(10)
	loop.AddMark(90)      // miss
	loop.AddDetection(10) // match
	loop.AddDetection(50) // false positive

	_, sensitivity, committed := loop.Evaluate()

	assert.False(t, committed)
	assert.InDelta(t, 0.5, sensitivity, 1e-9)
}

func TestEvaluateClampsToRange(t *testing.T) {
	t.Parallel()

	cfg := testLiveConfig()
	controller := detection.NewStaticDetector(nil)
	loop := NewLiveLoop(cfg, controller, cfg.MinSensitivity, nil)

	// false positives dominate but we are already at the floor
	loop.AddDetection(50)

	_, sensitivity, committed := loop.Evaluate()

	assert.False(t, committed)
	assert.InDelta(t, cfg.MinSensitivity, sensitivity, 1e-9)
}

func TestEvaluateSkipsSubMinDeltaChanges(t *testing.T) {
	t.Parallel()

	cfg := testLiveConfig()
	cfg.MinDelta = 0.1 // larger than the step
	controller := detection.NewStaticDetector(nil)
	loop := NewLiveLoop(cfg, controller, 0.5, nil)

	loop.AddDetection(50)

	_, sensitivity, committed := loop.Evaluate()

	assert.False(t, committed)
	assert.InDelta(t, 0.5, sensitivity, 1e-9)
}

func TestLiveLoopStopsWithinBoundedLatency(t *testing.T) {
	t.Parallel()

	controller := detection.NewStaticDetector(nil)
	loop := NewLiveLoop(testLiveConfig(), controller, 0.5, nil)

	loop.Start()

	done := make(chan struct{})
	go func() {
		loop.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("live loop did not stop within bounded latency")
	}
}

func TestLiveLoopAdjustsWhileRunning(t *testing.T) {
	t.Parallel()

	controller := detection.NewStaticDetector(nil)
	loop := NewLiveLoop(testLiveConfig(), controller, 0.5, nil)

	for _, det := range []float64{50, 60, 70} {
		loop.AddDetection(det)
	}

	loop.Start()
	defer loop.Stop()

	require.Eventually(t, func() bool {
		return loop.Sensitivity() < 0.5
	}, time.Second, 5*time.Millisecond)
}
