// model.go this code defines the data model for the application
package datastore

import (
	"time"

	"github.com/barknet/barknet-go/internal/detection"
)

// ViolationRecord is a persisted legal violation with its bark events.
type ViolationRecord struct {
	ID             string `gorm:"primaryKey;type:varchar(36)"`
	SourceNode     string
	Type           string `gorm:"index:idx_violations_type"`
	Date           string `gorm:"index:idx_violations_date;index:idx_violations_date_type"`
	StartTime      string
	EndTime        string
	StartSeconds   float64
	EndSeconds     float64
	TotalBarks     int
	AvgConfidence  float64
	PeakConfidence float64
	CreatedAt      time.Time
	Barks          []BarkRecord       `gorm:"foreignKey:ViolationID;constraint:OnDelete:CASCADE"`
	Files          []ViolationFileRef `gorm:"foreignKey:ViolationID;constraint:OnDelete:CASCADE"`
}

// ToViolation converts a stored record back into its analysis form.
// The second values are left to be re-derived from the persisted clock
// strings, so stale or hand-edited rows surface as revival skips rather
// than silently wrong spans.
func (r *ViolationRecord) ToViolation() detection.Violation {
	v := detection.Violation{
		Type:           detection.ViolationType(r.Type),
		Date:           r.Date,
		StartTime:      r.StartTime,
		EndTime:        r.EndTime,
		TotalBarks:     r.TotalBarks,
		AvgConfidence:  r.AvgConfidence,
		PeakConfidence: r.PeakConfidence,
	}
	for i := range r.Barks {
		b := &r.Barks[i]
		v.Events = append(v.Events, detection.Event{
			StartTime:  b.StartTime,
			EndTime:    b.EndTime,
			Confidence: b.Confidence,
			Intensity:  b.Intensity,
		})
	}
	for i := range r.Files {
		f := &r.Files[i]
		v.Files = append(v.Files, detection.FileSpan{
			FileName:  f.FileName,
			StartTime: f.StartTime,
			EndTime:   f.EndTime,
		})
	}
	return v
}

// BarkRecord is one detected bark event inside a violation.
type BarkRecord struct {
	ID          uint   `gorm:"primaryKey"`
	ViolationID string `gorm:"index;not null;type:varchar(36)"`
	StartTime   float64
	EndTime     float64
	Confidence  float64
	Intensity   float64
	AudioFile   string
	FileOffset  string
}

// ViolationFileRef links a violation to an audio recording that covers
// part of its span.
// GORM will automatically create table name as 'violation_file_refs'
type ViolationFileRef struct {
	ID          uint   `gorm:"primaryKey"`
	ViolationID string `gorm:"index;not null;type:varchar(36)"`
	FileName    string
	StartTime   string
	EndTime     string
}
