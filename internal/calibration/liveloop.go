package calibration

import (
	"sync"
	"time"

	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/observability"
)

// LiveConfig controls the real-time human-feedback calibration loop.
type LiveConfig struct {
	Interval       time.Duration // evaluation period
	Tolerance      float64       // match tolerance in seconds
	Step           float64       // nudge size per evaluation
	MinDelta       float64       // smallest change worth committing
	MinSensitivity float64
	MaxSensitivity float64
}

// LiveLoop re-scores operator bark marks against live detections on a
// fixed interval and nudges the detector's sensitivity through its
// controller: down when false positives dominate, up when misses
// dominate. Changes are clamped to the configured range and committed
// only when they exceed MinDelta, so the loop cannot oscillate on noise.
//
// The loop is cooperative polling, not true concurrency: it owns no
// detector state and reacts to Stop within one interval.
type LiveLoop struct {
	cfg        LiveConfig
	controller detection.SensitivityController
	metrics    *observability.Metrics

	mu          sync.Mutex
	marks       []float64
	detections  []float64
	sensitivity float64

	quit chan struct{}
	wg   sync.WaitGroup
}

// NewLiveLoop creates a loop starting from the given sensitivity. The
// metrics argument may be nil.
func NewLiveLoop(cfg LiveConfig, controller detection.SensitivityController, startSensitivity float64, metrics *observability.Metrics) *LiveLoop {
	return &LiveLoop{
		cfg:         cfg,
		controller:  controller,
		metrics:     metrics,
		sensitivity: startSensitivity,
		quit:        make(chan struct{}),
	}
}

// AddMark records a human "bark happened now" mark, in seconds.
func (l *LiveLoop) AddMark(t float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.marks = append(l.marks, t)
}

// AddDetection records a detector event time, in seconds.
func (l *LiveLoop) AddDetection(t float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.detections = append(l.detections, t)
	if l.metrics != nil {
		l.metrics.DetectionsProcessed.Inc()
	}
}

// Sensitivity returns the loop's current operating point.
func (l *LiveLoop) Sensitivity() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sensitivity
}

// Start launches the polling loop.
func (l *LiveLoop) Start() {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ticker := time.NewTicker(l.cfg.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-l.quit:
				return
			case <-ticker.C:
				l.Evaluate()
			}
		}
	}()
}

// Stop signals the loop and waits for it to exit. Latency is bounded by
// one polling interval.
func (l *LiveLoop) Stop() {
	close(l.quit)
	l.wg.Wait()
}

// Evaluate performs one scoring-and-nudge step. It is exported so a
// single step can be driven directly in tests and by UI refresh handlers.
// It returns the match result, the sensitivity now in effect and whether
// a change was committed to the controller.
func (l *LiveLoop) Evaluate() (MatchResult, float64, bool) {
	l.mu.Lock()
	marks := make([]float64, len(l.marks))
	copy(marks, l.marks)
	detections := make([]float64, len(l.detections))
	copy(detections, l.detections)
	current := l.sensitivity
	l.mu.Unlock()

	result := Score(marks, detections, l.cfg.Tolerance)

	candidate := current
	switch {
	case result.FalsePositives > result.Misses:
		candidate = current - l.cfg.Step
	case result.Misses > result.FalsePositives:
		candidate = current + l.cfg.Step
	}
	candidate = clamp(candidate, l.cfg.MinSensitivity, l.cfg.MaxSensitivity)

	if diff := candidate - current; diff < l.cfg.MinDelta && diff > -l.cfg.MinDelta {
		return result, current, false
	}

	if err := l.controller.AdjustSensitivity(detection.SensitivityCommand{
		Sensitivity: candidate,
		Reason:      nudgeReason(result),
	}); err != nil {
		logger.Error("sensitivity adjustment rejected", "error", err, "candidate", candidate)
		return result, current, false
	}

	l.mu.Lock()
	l.sensitivity = candidate
	l.mu.Unlock()

	if l.metrics != nil {
		l.metrics.CalibrationAdjustments.Inc()
		l.metrics.CurrentSensitivity.Set(candidate)
	}

	logger.Info("sensitivity adjusted",
		"from", current,
		"to", candidate,
		"false_positives", result.FalsePositives,
		"misses", result.Misses)

	return result, candidate, true
}

func nudgeReason(r MatchResult) string {
	if r.FalsePositives > r.Misses {
		return "false positives dominate"
	}
	return "misses dominate"
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}
