// file.go: one-shot analysis of a recorded detection log.
package analysis

import (
	"os"
	"time"

	"github.com/barknet/barknet-go/internal/conf"
	"github.com/barknet/barknet-go/internal/correlation"
	"github.com/barknet/barknet-go/internal/datastore"
	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/errors"
	"github.com/barknet/barknet-go/internal/report"
)

// FileAnalysis reads a detection log, classifies violations, correlates
// them with the recordings directory and writes a report to stdout.
func FileAnalysis(settings *conf.Settings) error {
	annotated, date, err := loadDetectionLog(settings)
	if err != nil {
		return err
	}

	annotated = correlateRecordings(settings, annotated)
	violations := classifyAnnotated(settings, date, annotated)

	data := report.Assemble(violations, annotated)
	if err := report.Render(os.Stdout, settings.Main.Name, date, data); err != nil {
		return err
	}

	if settings.Output.SQLite.Enabled {
		return persistViolations(settings, data, annotated)
	}
	return nil
}

// loadDetectionLog parses the configured input log. The report date is
// taken from the first detection, falling back to today for empty logs.
func loadDetectionLog(settings *conf.Settings) ([]correlation.AnnotatedEvent, string, error) {
	f, err := os.Open(settings.Input.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.NotFoundError("detection log %s not found", settings.Input.Path)
		}
		return nil, "", errors.New(err).
			Category(errors.CategoryFileIO).
			FileContext(settings.Input.Path).
			Build()
	}
	defer f.Close()

	annotated, err := correlation.ParseLog(f, settings.Analysis.BarkDuration)
	if err != nil {
		return nil, "", err
	}

	date := time.Now().Format("2006-01-02")
	if len(annotated) > 0 {
		date = annotated[0].Timestamp.Format("2006-01-02")
	}

	logger.Info("detection log loaded",
		"path", settings.Input.Path,
		"detections", len(annotated),
		"date", date)
	return annotated, date, nil
}

// correlateRecordings annotates the events with the recording files
// that cover them. A missing recordings directory is not an error, the
// report is simply rendered without file references.
func correlateRecordings(settings *conf.Settings, annotated []correlation.AnnotatedEvent) []correlation.AnnotatedEvent {
	prober := correlation.NewDurationProber(settings.Recordings.FallbackDuration)
	files, err := correlation.ScanRecordings(settings.Recordings.Dir, settings.Recordings.Prefix, prober)
	if err != nil {
		logger.Warn("recordings directory not scanned",
			"dir", settings.Recordings.Dir,
			"error", err)
		return annotated
	}
	return correlation.Correlate(annotated, files)
}

// classifyAnnotated runs the violation classifier over the raw events
// behind the annotated stream.
func classifyAnnotated(settings *conf.Settings, date string, annotated []correlation.AnnotatedEvent) []detection.Violation {
	events := make([]detection.Event, 0, len(annotated))
	for i := range annotated {
		events = append(events, annotated[i].Event)
	}

	classifier := NewClassifier(ClassifierConfig{
		SessionGap:          settings.Analysis.SessionGap,
		ConstantMinDuration: settings.Analysis.ConstantMinDuration,
		MinViolationSpan:    settings.Analysis.MinViolationSpan,
	})
	return classifier.Classify(date, events)
}

// persistViolations stores the assembled violations in the configured
// sqlite database. Assembly must have run first: it is what attaches
// the contributing file spans, and the annotated stream is what locates
// each bark in its recording.
func persistViolations(settings *conf.Settings, data report.ReportData, annotated []correlation.AnnotatedEvent) error {
	store := datastore.New(settings.Output.SQLite.Path, settings.Main.Name)
	if err := store.Open(); err != nil {
		return err
	}
	defer store.Close()

	for i := range data.Violations {
		record := datastore.FromViolation(&data.Violations[i].Violation, annotated, settings.Main.Name)
		if err := store.Save(&record); err != nil {
			return err
		}
	}

	logger.Info("violations persisted",
		"count", len(data.Violations),
		"database", settings.Output.SQLite.Path)
	return nil
}
