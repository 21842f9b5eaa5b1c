// Package report converts violations and correlated events into the
// structured data any renderer needs. It performs no I/O; text, PDF and
// other layouts are the consumer's concern.
package report

import (
	"sort"

	"github.com/barknet/barknet-go/internal/correlation"
	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/timecode"
)

// BarkRow is one detection inside a violation, located in its recording.
type BarkRow struct {
	ClockTime  string // time of day
	Offset     string // offset within the file, empty when uncorrelated
	Confidence float64
	Intensity  float64
}

// FileDetail groups a violation's barks by contributing audio file, in
// chronological order within the file. An empty FileName collects barks
// no recording covered.
type FileDetail struct {
	FileName  string
	StartTime string // file's first bark within the violation window
	EndTime   string // file's last bark within the violation window
	Barks     []BarkRow
}

// ViolationDetail is one violation prepared for rendering.
type ViolationDetail struct {
	Violation detection.Violation
	Files     []FileDetail
}

// Summary holds the overall counts a report header needs.
type Summary struct {
	TotalViolations int
	Constant        int
	Intermittent    int
	TotalBarks      int
}

// ReportData is everything a renderer needs, fully computed.
type ReportData struct {
	Summary    Summary
	Violations []ViolationDetail
}

// Assemble builds report data from classified violations and the
// correlated event stream. Each violation's events are grouped by
// contributing file in file-then-chronological order.
func Assemble(violations []detection.Violation, events []correlation.AnnotatedEvent) ReportData {
	data := ReportData{}

	for _, v := range violations {
		data.Summary.TotalViolations++
		data.Summary.TotalBarks += v.TotalBarks
		switch v.Type {
		case detection.ViolationConstant:
			data.Summary.Constant++
		case detection.ViolationIntermittent:
			data.Summary.Intermittent++
		}

		detail := ViolationDetail{Violation: v}
		detail.Files = groupByFile(windowEvents(v, events))

		// contributing file spans travel with the violation record
		detail.Violation.Files = nil
		for _, fd := range detail.Files {
			if fd.FileName == "" {
				continue
			}
			detail.Violation.Files = append(detail.Violation.Files, detection.FileSpan{
				FileName:  fd.FileName,
				StartTime: fd.StartTime,
				EndTime:   fd.EndTime,
			})
		}

		data.Violations = append(data.Violations, detail)
	}

	return data
}

// windowEvents selects the correlated events inside a violation's window,
// chronologically.
func windowEvents(v detection.Violation, events []correlation.AnnotatedEvent) []correlation.AnnotatedEvent {
	var window []correlation.AnnotatedEvent
	for _, e := range events {
		if e.StartTime >= v.StartSeconds && e.StartTime <= v.EndSeconds {
			window = append(window, e)
		}
	}
	sort.SliceStable(window, func(i, j int) bool {
		return window[i].StartTime < window[j].StartTime
	})
	return window
}

// groupByFile splits a chronological event window into per-file groups
// ordered by each file's first bark.
func groupByFile(window []correlation.AnnotatedEvent) []FileDetail {
	index := make(map[string]int)
	var groups []FileDetail

	for _, e := range window {
		i, seen := index[e.File]
		if !seen {
			i = len(groups)
			index[e.File] = i
			groups = append(groups, FileDetail{FileName: e.File})
		}

		clock := timecode.SecondsToTimestamp(e.StartTime)
		groups[i].Barks = append(groups[i].Barks, BarkRow{
			ClockTime:  clock,
			Offset:     e.Offset,
			Confidence: e.Confidence,
			Intensity:  e.Intensity,
		})
		if groups[i].StartTime == "" {
			groups[i].StartTime = clock
		}
		groups[i].EndTime = clock
	}

	return groups
}
