// interfaces.go: database access layer for persisted violations.
package datastore

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/barknet/barknet-go/internal/correlation"
	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/errors"
	"github.com/barknet/barknet-go/internal/logging"
)

// slowQueryThreshold defines the duration after which a query is
// considered slow and logged at warn level.
const slowQueryThreshold = 1 * time.Second

// Interface abstracts the underlying database implementation.
type Interface interface {
	Open() error
	Close() error
	Save(violation *ViolationRecord) error
	Get(id string) (ViolationRecord, error)
	List(date string) ([]ViolationRecord, error)
	Delete(id string) error
}

// DataStore implements the parts of Interface shared by all database
// backends.
type DataStore struct {
	DB *gorm.DB
}

// New creates the appropriate store for the configured backend. Only
// sqlite is supported.
func New(path, sourceNode string) Interface {
	return &SQLiteStore{Path: path, SourceNode: sourceNode}
}

// Save inserts a violation record together with its barks and file refs.
func (ds *DataStore) Save(violation *ViolationRecord) error {
	if ds.DB == nil {
		return errors.Newf("database connection is not initialized").
			Category(errors.CategoryDatabase).
			Build()
	}
	if violation.ID == "" {
		violation.ID = uuid.New().String()
	}
	if err := ds.DB.Create(violation).Error; err != nil {
		return errors.New(err).
			Category(errors.CategoryDatabase).
			Context("violation_id", violation.ID).
			Build()
	}
	return nil
}

// Get retrieves a violation with its barks and file refs by id.
func (ds *DataStore) Get(id string) (ViolationRecord, error) {
	var record ViolationRecord
	err := ds.DB.Preload("Barks").Preload("Files").First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ViolationRecord{}, errors.NotFoundError("violation %s not found", id)
		}
		return ViolationRecord{}, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("violation_id", id).
			Build()
	}
	return record, nil
}

// List returns all violations for a date, ordered by start time. An
// empty date returns every stored violation.
func (ds *DataStore) List(date string) ([]ViolationRecord, error) {
	var records []ViolationRecord
	query := ds.DB.Preload("Barks").Preload("Files").Order("start_seconds")
	if date != "" {
		query = query.Where("date = ?", date)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, errors.New(err).
			Category(errors.CategoryDatabase).
			Context("date", date).
			Build()
	}
	return records, nil
}

// Delete removes a violation and, through cascade, its barks and file
// refs.
func (ds *DataStore) Delete(id string) error {
	result := ds.DB.Delete(&ViolationRecord{}, "id = ?", id)
	if result.Error != nil {
		return errors.New(result.Error).
			Category(errors.CategoryDatabase).
			Context("violation_id", id).
			Build()
	}
	if result.RowsAffected == 0 {
		return errors.NotFoundError("violation %s not found", id)
	}
	return nil
}

// FromViolation converts an analysis result into its storage form. The
// annotated stream locates each bark in its recording; it may be nil
// when no recordings were correlated.
func FromViolation(v *detection.Violation, annotated []correlation.AnnotatedEvent, sourceNode string) ViolationRecord {
	located := make(map[float64]*correlation.AnnotatedEvent, len(annotated))
	for i := range annotated {
		if annotated[i].File != "" {
			located[annotated[i].StartTime] = &annotated[i]
		}
	}

	record := ViolationRecord{
		ID:             uuid.New().String(),
		SourceNode:     sourceNode,
		Type:           string(v.Type),
		Date:           v.Date,
		StartTime:      v.StartTime,
		EndTime:        v.EndTime,
		StartSeconds:   v.StartSeconds,
		EndSeconds:     v.EndSeconds,
		TotalBarks:     v.TotalBarks,
		AvgConfidence:  v.AvgConfidence,
		PeakConfidence: v.PeakConfidence,
	}
	for i := range v.Events {
		e := &v.Events[i]
		bark := BarkRecord{
			StartTime:  e.StartTime,
			EndTime:    e.EndTime,
			Confidence: e.Confidence,
			Intensity:  e.Intensity,
		}
		if ann, ok := located[e.StartTime]; ok {
			bark.AudioFile = ann.File
			bark.FileOffset = ann.Offset
		}
		record.Barks = append(record.Barks, bark)
	}
	for i := range v.Files {
		f := &v.Files[i]
		record.Files = append(record.Files, ViolationFileRef{
			FileName:  f.FileName,
			StartTime: f.StartTime,
			EndTime:   f.EndTime,
		})
	}
	return record
}

// createGormLogger configures and returns a new GORM logger instance
// that routes through the application's structured logger.
func createGormLogger() gormlogger.Interface {
	return gormlogger.New(
		&slogWriter{},
		gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

type slogWriter struct{}

func (w *slogWriter) Printf(format string, args ...any) {
	logging.Warn(fmt.Sprintf(format, args...), "service", "datastore")
}

// performAutoMigration automates database migrations with error handling.
func performAutoMigration(db *gorm.DB, debug bool, dbType, connectionInfo string) error {
	if err := db.AutoMigrate(&ViolationRecord{}, &BarkRecord{}, &ViolationFileRef{}); err != nil {
		return errors.Newf("failed to auto-migrate %s database: %v", dbType, err).
			Category(errors.CategoryDatabase).
			Context("connection", connectionInfo).
			Build()
	}
	if debug {
		logging.Debug("database connection initialized",
			"type", dbType,
			"connection", connectionInfo)
	}
	return nil
}
