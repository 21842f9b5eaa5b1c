package analysis

import (
	"github.com/barknet/barknet-go/internal/detection"
)

// ClassifierConfig carries the legal thresholds for violation
// classification. The numeric values are municipal-ordinance dependent and
// always come from configuration, never from constants.
type ClassifierConfig struct {
	// SessionGap is the largest inter-event gap, in seconds, that keeps a
	// run accumulating. A gap exactly at the threshold stays in the run.
	SessionGap float64
	// ConstantMinDuration is the wall-clock span, in seconds, at which an
	// accumulated run becomes a Constant violation.
	ConstantMinDuration float64
	// MinViolationSpan is the minimum wall-clock span for a run to be
	// reportable at all. Shorter runs are dropped silently.
	MinViolationSpan float64
}

// Classifier turns a chronological detection stream into violations. It
// re-derives gap grouping with the same rule the session builder uses, so
// it does not require sessions to have been built first.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify scans events in order, accumulating runs while the inter-event
// gap stays within SessionGap. A run is finalized when a gap exceeds the
// threshold or input is exhausted. Runs spanning at least
// ConstantMinDuration are Constant, runs reaching MinViolationSpan are
// Intermittent, shorter runs are not violations. The date is attached for
// presentation; event times are seconds of that day.
func (c *Classifier) Classify(date string, events []detection.Event) []detection.Violation {
	if len(events) == 0 {
		return nil
	}

	var violations []detection.Violation
	run := []detection.Event{events[0]}

	finalize := func() {
		if v, ok := c.finalizeRun(date, run); ok {
			violations = append(violations, v)
		}
	}

	for _, event := range events[1:] {
		gap := event.StartTime - run[len(run)-1].EndTime
		if gap <= c.cfg.SessionGap {
			run = append(run, event)
			continue
		}
		finalize()
		run = []detection.Event{event}
	}
	finalize()

	return violations
}

// ClassifySessions classifies already gap-grouped sessions, merging
// adjacent sessions whose boundary gap stays within SessionGap. It is
// equivalent to flattening the sessions and calling Classify.
func (c *Classifier) ClassifySessions(date string, sessions []detection.Session) []detection.Violation {
	var events []detection.Event
	for _, s := range sessions {
		events = append(events, s.Events...)
	}
	return c.Classify(date, events)
}

// finalizeRun types an accumulated run, or reports that it is too short to
// be a violation.
func (c *Classifier) finalizeRun(date string, run []detection.Event) (detection.Violation, bool) {
	span := run[len(run)-1].EndTime - run[0].StartTime
	if span < c.cfg.MinViolationSpan {
		logger.Debug("dropping sub-minimum run",
			"span_seconds", span,
			"events", len(run))
		return detection.Violation{}, false
	}

	vtype := detection.ViolationIntermittent
	if span >= c.cfg.ConstantMinDuration {
		vtype = detection.ViolationConstant
	}

	events := make([]detection.Event, len(run))
	copy(events, run)

	v := detection.Violation{
		Type:         vtype,
		Date:         date,
		StartSeconds: run[0].StartTime,
		EndSeconds:   run[len(run)-1].EndTime,
		TotalBarks:   len(run),
		Events:       events,
	}

	var confidenceSum float64
	for _, e := range run {
		confidenceSum += e.Confidence
		if e.Confidence > v.PeakConfidence {
			v.PeakConfidence = e.Confidence
		}
	}
	v.AvgConfidence = confidenceSum / float64(len(run))
	v.RenderTimes()

	logger.Info("violation finalized",
		"type", string(v.Type),
		"date", v.Date,
		"start", v.StartTime,
		"end", v.EndTime,
		"barks", v.TotalBarks)

	return v, true
}
