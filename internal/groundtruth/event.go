// Package groundtruth handles human-labeled bark intervals used to score
// detector accuracy, including the JSON file format and its repair rules.
package groundtruth

import (
	"encoding/json"

	"github.com/barknet/barknet-go/internal/errors"
	"github.com/barknet/barknet-go/internal/timecode"
)

// Event is one oracle-labeled bark interval. Times are normalized to
// float seconds at construction regardless of input representation, and
// the interval is validated then: construction fails unless start < end.
// Events are immutable.
type Event struct {
	startTime          float64
	endTime            float64
	Description        string
	ConfidenceExpected float64
}

// NewEvent validates and creates a ground-truth event.
func NewEvent(startTime, endTime float64, description string, confidenceExpected float64) (Event, error) {
	if startTime >= endTime {
		return Event{}, errors.ValidationError(
			"ground truth event start %f must be before end %f", startTime, endTime)
	}
	return Event{
		startTime:          startTime,
		endTime:            endTime,
		Description:        description,
		ConfidenceExpected: confidenceExpected,
	}, nil
}

// StartSeconds returns the event start in decimal seconds.
func (e Event) StartSeconds() float64 { return e.startTime }

// EndSeconds returns the event end in decimal seconds.
func (e Event) EndSeconds() float64 { return e.endTime }

// Duration returns the labeled interval length in seconds.
func (e Event) Duration() float64 { return e.endTime - e.startTime }

// StartTimestamp returns the start as HH:MM:SS.mmm.
func (e Event) StartTimestamp() string { return timecode.SecondsToTimestamp(e.startTime) }

// EndTimestamp returns the end as HH:MM:SS.mmm.
func (e Event) EndTimestamp() string { return timecode.SecondsToTimestamp(e.endTime) }

// eventRecord is the wire shape. Timestamps arrive as decimal seconds or
// formatted strings; the canonical write format is the string form.
type eventRecord struct {
	StartTime          timecode.TimeValue `json:"start_time"`
	EndTime            timecode.TimeValue `json:"end_time"`
	Description        string             `json:"description"`
	ConfidenceExpected float64            `json:"confidence_expected"`
}

// UnmarshalJSON accepts both timestamp representations and enforces the
// interval invariant.
func (e *Event) UnmarshalJSON(data []byte) error {
	var record eventRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return errors.New(err).Category(errors.CategoryFileParsing).Build()
	}

	start, err := record.StartTime.Normalize()
	if err != nil {
		return err
	}
	end, err := record.EndTime.Normalize()
	if err != nil {
		return err
	}

	event, err := NewEvent(start, end, record.Description, record.ConfidenceExpected)
	if err != nil {
		return err
	}
	*e = event
	return nil
}

// MarshalJSON writes the canonical string timestamp form.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventRecord{
		StartTime:          timecode.Seconds(e.startTime),
		EndTime:            timecode.Seconds(e.endTime),
		Description:        e.Description,
		ConfidenceExpected: e.ConfidenceExpected,
	})
}
