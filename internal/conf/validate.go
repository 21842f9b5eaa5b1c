package conf

import (
	"fmt"

	"github.com/barknet/barknet-go/internal/errors"
)

// ValidateSettings checks the loaded settings for values that would make
// analysis or calibration misbehave.
func ValidateSettings(settings *Settings) error {
	var problems []string

	if settings.Detector.Sensitivity < 0 || settings.Detector.Sensitivity > 1 {
		problems = append(problems, fmt.Sprintf("detector.sensitivity must be between 0 and 1, got %g", settings.Detector.Sensitivity))
	}
	if settings.Detector.MinBarkDuration < 0 {
		problems = append(problems, fmt.Sprintf("detector.minbarkduration must not be negative, got %g", settings.Detector.MinBarkDuration))
	}

	if settings.Analysis.SessionGap <= 0 {
		problems = append(problems, fmt.Sprintf("analysis.sessiongap must be positive, got %g", settings.Analysis.SessionGap))
	}
	if settings.Analysis.MinViolationSpan < 0 {
		problems = append(problems, fmt.Sprintf("analysis.minviolationspan must not be negative, got %g", settings.Analysis.MinViolationSpan))
	}
	if settings.Analysis.ConstantMinDuration < settings.Analysis.MinViolationSpan {
		problems = append(problems, fmt.Sprintf("analysis.constantminduration (%g) must not be below analysis.minviolationspan (%g)",
			settings.Analysis.ConstantMinDuration, settings.Analysis.MinViolationSpan))
	}
	if settings.Analysis.BarkDuration <= 0 {
		problems = append(problems, fmt.Sprintf("analysis.barkduration must be positive, got %g", settings.Analysis.BarkDuration))
	}

	if settings.Calibration.Tolerance <= 0 {
		problems = append(problems, fmt.Sprintf("calibration.tolerance must be positive, got %g", settings.Calibration.Tolerance))
	}
	sweep := settings.Calibration.Sweep
	if sweep.Step <= 0 {
		problems = append(problems, fmt.Sprintf("calibration.sweep.step must be positive, got %g", sweep.Step))
	}
	if sweep.Min > sweep.Max {
		problems = append(problems, fmt.Sprintf("calibration.sweep.min (%g) must not exceed calibration.sweep.max (%g)", sweep.Min, sweep.Max))
	}
	live := settings.Calibration.Live
	if live.Interval <= 0 {
		problems = append(problems, fmt.Sprintf("calibration.live.interval must be positive, got %d", live.Interval))
	}
	if live.MinSensitivity >= live.MaxSensitivity {
		problems = append(problems, fmt.Sprintf("calibration.live.minsensitivity (%g) must be below calibration.live.maxsensitivity (%g)",
			live.MinSensitivity, live.MaxSensitivity))
	}

	if settings.Realtime.Interval <= 0 {
		problems = append(problems, fmt.Sprintf("realtime.interval must be positive, got %d", settings.Realtime.Interval))
	}

	if settings.Recordings.FallbackDuration <= 0 {
		problems = append(problems, fmt.Sprintf("recordings.fallbackduration must be positive, got %g", settings.Recordings.FallbackDuration))
	}

	if len(problems) > 0 {
		return errors.Newf("invalid configuration: %v", problems).
			Category(errors.CategoryConfiguration).
			Build()
	}
	return nil
}
