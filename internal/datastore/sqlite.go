package datastore

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/barknet/barknet-go/internal/errors"
)

// SQLiteStore implements Interface for SQLite
type SQLiteStore struct {
	DataStore
	Path       string
	SourceNode string
	Debug      bool
}

// Open sets up the SQLite database connection and runs migrations.
func (store *SQLiteStore) Open() error {
	if store.Path == "" {
		return errors.Newf("sqlite database path is empty").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if dir := filepath.Dir(store.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.New(err).
				Category(errors.CategoryFileIO).
				Context("path", dir).
				Build()
		}
	}

	db, err := gorm.Open(sqlite.Open(store.Path), &gorm.Config{Logger: createGormLogger()})
	if err != nil {
		return errors.Newf("failed to open SQLite database: %v", err).
			Category(errors.CategoryDatabase).
			Context("path", store.Path).
			Build()
	}

	store.DB = db
	return performAutoMigration(db, store.Debug, "SQLite", store.Path)
}

// Close releases the underlying database handle.
func (store *SQLiteStore) Close() error {
	if store.DB == nil {
		return nil
	}
	sqlDB, err := store.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
