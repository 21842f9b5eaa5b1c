// Package calibration scores detector output against reference bark times
// and tunes the detector's sensitivity, both offline (file sweeps) and
// online (live human feedback).
package calibration

import (
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/barknet/barknet-go/internal/logging"
)

var (
	logger      *slog.Logger
	levelVar    = new(slog.LevelVar)
	closeLogger func() error
	closeOnce   sync.Once
)

func init() {
	var err error
	logFilePath := filepath.Join("logs", "calibration.log")
	levelVar.Set(slog.LevelInfo)

	logger, closeLogger, err = logging.NewFileLogger(logFilePath, "calibration", levelVar)
	if err != nil {
		log.Printf("Failed to initialize calibration file logger at %s: %v. Using console logging.", logFilePath, err)
		fbHandler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: levelVar})
		logger = slog.New(fbHandler).With("service", "calibration")
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
