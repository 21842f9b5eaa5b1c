// Package detection defines the core entities of the bark monitoring
// pipeline: individual detection events, barking sessions and the
// capability interface the ML detector is consumed through.
package detection

import (
	"github.com/barknet/barknet-go/internal/timecode"
)

// Event is a single detected bark. Times are decimal seconds relative to
// either the recording or the start of day, depending on context; the
// producer decides, consumers only rely on ordering and differences.
// Events are immutable once created.
type Event struct {
	StartTime  float64
	EndTime    float64
	Confidence float64
	Intensity  float64
	// Diagnostic only: which classifier labels triggered and their scores.
	Labels      []string
	LabelScores map[string]float64
}

// Duration returns the event's length in seconds.
func (e Event) Duration() float64 {
	return e.EndTime - e.StartTime
}

// Valid reports whether the event's interval is well formed.
func (e Event) Valid() bool {
	return e.EndTime > e.StartTime
}

// Session is a maximal run of events whose consecutive gaps never exceed
// the session gap threshold. Sessions are never mutated after construction.
type Session struct {
	StartTime      float64
	EndTime        float64
	Events         []Event
	TotalBarks     int
	TotalDuration  float64 // sum of event durations, not wall-clock span
	AvgConfidence  float64
	PeakConfidence float64
	BarksPerSecond float64
	Intensity      float64 // mean of event intensities
}

// NewSession builds a Session from a non-empty chronological event run and
// computes its derived statistics.
func NewSession(events []Event) Session {
	s := Session{
		StartTime:  events[0].StartTime,
		EndTime:    events[len(events)-1].EndTime,
		Events:     events,
		TotalBarks: len(events),
	}

	var confidenceSum, intensitySum float64
	for _, e := range events {
		s.TotalDuration += e.Duration()
		confidenceSum += e.Confidence
		intensitySum += e.Intensity
		if e.Confidence > s.PeakConfidence {
			s.PeakConfidence = e.Confidence
		}
	}
	s.AvgConfidence = confidenceSum / float64(len(events))
	s.Intensity = intensitySum / float64(len(events))

	if span := s.EndTime - s.StartTime; span > 0 {
		s.BarksPerSecond = float64(s.TotalBarks) / span
	}
	return s
}

// ViolationType classifies a reportable incident.
type ViolationType string

const (
	ViolationConstant     ViolationType = "Constant"
	ViolationIntermittent ViolationType = "Intermittent"
)

// FileSpan records one audio file's contribution to a violation window.
type FileSpan struct {
	FileName  string
	StartTime string // clock time within the violation window
	EndTime   string
}

// Violation is a classified, possibly multi-session barking incident.
// A finalized violation is immutable.
type Violation struct {
	Type           ViolationType
	Date           string // YYYY-MM-DD
	StartTime      string // day-relative clock time for presentation
	EndTime        string
	StartSeconds   float64 // full precision, used to resume classification
	EndSeconds     float64
	TotalBarks     int
	AvgConfidence  float64
	PeakConfidence float64
	Events         []Event
	Files          []FileSpan
}

// SpanSeconds returns the violation's wall-clock span.
func (v Violation) SpanSeconds() float64 {
	return v.EndSeconds - v.StartSeconds
}

// RenderTimes fills the presentation clock strings from the internal
// second values.
func (v *Violation) RenderTimes() {
	v.StartTime = timecode.SecondsToTimestamp(v.StartSeconds)
	v.EndTime = timecode.SecondsToTimestamp(v.EndSeconds)
}
