// Package analysis groups bark detections into sessions and classifies
// reportable violations.
package analysis

import (
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/barknet/barknet-go/internal/logging"
)

// Package-level logger for analysis operations
var (
	logger      *slog.Logger
	levelVar    = new(slog.LevelVar)
	closeLogger func() error
	closeOnce   sync.Once
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "analysis.log")
	levelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "analysis", levelVar)
	if err != nil {
		// Fallback: log the error and keep a disabled handler so callers never nil-check
		log.Printf("Failed to initialize analysis file logger at %s: %v. Using console logging.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: levelVar})
		logger = slog.New(fbHandler).With("service", "analysis")
		closeLogger = func() error { return nil }
	}
}

// CloseLogger closes the log file and releases resources. Safe to call
// more than once.
func CloseLogger() error {
	var err error
	closeOnce.Do(func() {
		if closeLogger != nil {
			err = closeLogger()
		}
	})
	return err
}
