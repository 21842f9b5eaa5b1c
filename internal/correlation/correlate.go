package correlation

import (
	"os"
	"path/filepath"
	"time"

	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/logging"
	"github.com/barknet/barknet-go/internal/timecode"
)

// RecordingFile is one candidate audio file with its parsed start time
// and duration in seconds (probed, or the fallback estimate).
type RecordingFile struct {
	Path     string
	Name     string
	Start    time.Time
	Duration float64
}

// End returns the file's recorded span end.
func (f RecordingFile) End() time.Time {
	return f.Start.Add(time.Duration(f.Duration * float64(time.Second)))
}

// AnnotatedEvent is a detection event with an absolute timestamp and,
// once correlated, the recording that captured it. File and Offset stay
// empty when no recording covers the event.
type AnnotatedEvent struct {
	detection.Event
	Timestamp time.Time
	File      string
	Offset    string // in-file offset as HH:MM:SS.mmm
}

// ScanRecordings builds the candidate file set from a directory, parsing
// start times from filenames and probing durations. Files that do not
// follow the naming convention are skipped.
func ScanRecordings(dir, prefix string, prober *DurationProber) ([]RecordingFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []RecordingFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		start, ok := ParseRecordingStart(entry.Name(), prefix)
		if !ok {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		files = append(files, RecordingFile{
			Path:     path,
			Name:     entry.Name(),
			Start:    start,
			Duration: prober.Duration(path),
		})
	}
	return files, nil
}

// Correlate maps each event to the recording whose span contains it. A
// file is a candidate when its span covers the event time and the
// offset-from-start does not exceed the file's actual duration; among
// candidates the closest preceding start wins. Events no file covers are
// returned unannotated.
func Correlate(events []AnnotatedEvent, files []RecordingFile) []AnnotatedEvent {
	annotated := make([]AnnotatedEvent, len(events))

	for i, event := range events {
		annotated[i] = event

		var best *RecordingFile
		var bestOffset float64
		for j := range files {
			f := &files[j]
			if event.Timestamp.Before(f.Start) || event.Timestamp.After(f.End()) {
				continue
			}
			offset := event.Timestamp.Sub(f.Start).Seconds()
			// double-check against clock drift and duration estimation error
			if offset > f.Duration {
				continue
			}
			if best == nil || offset < bestOffset {
				best = f
				bestOffset = offset
			}
		}

		if best == nil {
			logging.Debug("no recording covers event",
				"timestamp", event.Timestamp.Format("15:04:05"))
			continue
		}
		annotated[i].File = best.Name
		annotated[i].Offset = timecode.SecondsToTimestamp(bestOffset)
	}

	return annotated
}
