package groundtruth

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/barknet/barknet-go/internal/errors"
	"github.com/barknet/barknet-go/internal/timecode"
)

// minEventDuration is the shortest labeled interval considered a real
// bark; anything under 10 ms is annotation noise.
const minEventDuration = 0.010

// durationMistakeCeiling bounds the "end is really a duration" heuristic:
// an end value under 10 seconds sitting at or before its start was almost
// certainly meant as a duration.
const durationMistakeCeiling = 10.0

// RecordOutcome describes what happened to one event during repair.
type RecordOutcome struct {
	Index   int
	Kept    bool
	Fixed   bool
	Warning string
}

// RepairReport aggregates per-record outcomes; one bad record never
// aborts the batch.
type RepairReport struct {
	Processed int
	Fixed     int
	Dropped   int
	Outcomes  []RecordOutcome
	File      *File
}

// rawEvent mirrors the wire shape without interval validation so that
// malformed records can be inspected and fixed instead of rejected.
type rawEvent struct {
	StartTime          timecode.TimeValue `json:"start_time"`
	EndTime            timecode.TimeValue `json:"end_time"`
	Description        string             `json:"description"`
	ConfidenceExpected float64            `json:"confidence_expected"`
}

type rawFile struct {
	AudioFile     string     `json:"audio_file"`
	Duration      float64    `json:"duration"`
	Events        []rawEvent `json:"events"`
	FormatVersion string     `json:"format_version"`
}

// Repair reads a ground-truth file leniently, fixes the known quality
// issues and drops what cannot be saved:
//
//   - an "end" at or before its start that looks like a sub-10s duration
//     is treated as one and added to the start
//   - negative timestamps are dropped
//   - events past the known audio duration are dropped
//   - events shorter than 10 ms are dropped
//
// Each drop and fix is recorded in the report, never raised.
func Repair(path string) (*RepairReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("ground truth file %s not found", path)
		}
		return nil, errors.New(err).Category(errors.CategoryFileIO).FileContext(path).Build()
	}

	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.New(err).Category(errors.CategoryFileParsing).FileContext(path).Build()
	}

	report := &RepairReport{
		File: &File{
			AudioFile:     raw.AudioFile,
			Duration:      raw.Duration,
			FormatVersion: raw.FormatVersion,
		},
	}

	for i, record := range raw.Events {
		report.Processed++
		outcome := RecordOutcome{Index: i}

		start, errStart := record.StartTime.Normalize()
		end, errEnd := record.EndTime.Normalize()
		if errStart != nil || errEnd != nil {
			outcome.Warning = "unparseable timestamp"
			report.Dropped++
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		// end recorded as a duration rather than an absolute end
		if start >= end && end > 0 && end < durationMistakeCeiling {
			end = start + end
			outcome.Fixed = true
			report.Fixed++
		}

		switch {
		case start < 0 || end < 0:
			outcome.Warning = "negative timestamp"
		case start >= end:
			outcome.Warning = fmt.Sprintf("start %.3f not before end %.3f", start, end)
		case raw.Duration > 0 && end > raw.Duration:
			outcome.Warning = fmt.Sprintf("event ends at %.3f, past audio duration %.3f", end, raw.Duration)
		case end-start < minEventDuration:
			outcome.Warning = "event shorter than 10ms"
		}

		if outcome.Warning != "" {
			report.Dropped++
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		event, err := NewEvent(start, end, record.Description, record.ConfidenceExpected)
		if err != nil {
			outcome.Warning = err.Error()
			report.Dropped++
			report.Outcomes = append(report.Outcomes, outcome)
			continue
		}

		outcome.Kept = true
		report.File.Events = append(report.File.Events, event)
		report.Outcomes = append(report.Outcomes, outcome)
	}

	return report, nil
}
