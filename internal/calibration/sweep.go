package calibration

import (
	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/errors"
)

// SweepConfig controls a file-based sensitivity sweep.
type SweepConfig struct {
	Min       float64 // lowest sensitivity to try
	Max       float64 // highest sensitivity to try
	Step      float64 // sweep increment
	Tolerance float64 // match tolerance in seconds
}

// SweepStep is the scored outcome of one sensitivity setting.
type SweepStep struct {
	Sensitivity float64
	Result      MatchResult
}

// SweepOutcome is the full sweep record plus the F1-maximizing step.
type SweepOutcome struct {
	Best  SweepStep
	Steps []SweepStep
}

// Sweep re-runs detection across the configured sensitivity range and
// scores each step against the reference times, returning the step that
// maximizes F1. Ties keep the first-found value. The detector only needs
// to be deterministic for fixed inputs; strict monotonicity in
// sensitivity is not assumed.
func Sweep(det detection.Detector, pcm []float32, references []float64, cfg SweepConfig) (SweepOutcome, error) {
	if cfg.Step <= 0 || cfg.Max < cfg.Min {
		return SweepOutcome{}, errors.Newf("invalid sweep range [%f, %f] step %f", cfg.Min, cfg.Max, cfg.Step).
			Category(errors.CategoryCalibration).
			Build()
	}

	outcome := SweepOutcome{Best: SweepStep{Sensitivity: cfg.Min, Result: MatchResult{F1: -1}}}

	for sensitivity := cfg.Min; sensitivity <= cfg.Max+cfg.Step/2; sensitivity += cfg.Step {
		events, err := det.Detect(pcm, sensitivity)
		if err != nil {
			return SweepOutcome{}, errors.New(err).
				Category(errors.CategoryCalibration).
				Context("sensitivity", sensitivity).
				Build()
		}

		detected := make([]float64, 0, len(events))
		for _, e := range events {
			detected = append(detected, e.StartTime)
		}

		step := SweepStep{Sensitivity: sensitivity, Result: Score(references, detected, cfg.Tolerance)}
		outcome.Steps = append(outcome.Steps, step)

		logger.Debug("sweep step scored",
			"sensitivity", sensitivity,
			"f1", step.Result.F1,
			"matches", step.Result.Matches,
			"false_positives", step.Result.FalsePositives,
			"misses", step.Result.Misses)

		if step.Result.F1 > outcome.Best.Result.F1 {
			outcome.Best = step
		}
	}

	logger.Info("sweep complete",
		"steps", len(outcome.Steps),
		"best_sensitivity", outcome.Best.Sensitivity,
		"best_f1", outcome.Best.Result.F1)

	return outcome, nil
}
