// realtime.go: continuous monitoring of a growing detection log.
package analysis

import (
	"bufio"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/barknet/barknet-go/internal/calibration"
	"github.com/barknet/barknet-go/internal/conf"
	"github.com/barknet/barknet-go/internal/correlation"
	"github.com/barknet/barknet-go/internal/detection"
	"github.com/barknet/barknet-go/internal/observability"
)

// monitor follows a detection log and reclassifies violations at a
// fixed interval. New log lines are picked up from the last read
// offset, so a tick costs only the bytes written since the previous
// one. Every new detection is also fed to the live calibration loop,
// which scores them against operator marks and nudges the detector's
// sensitivity through the settings.
type monitor struct {
	settings *conf.Settings
	metrics  *observability.Metrics
	live     *calibration.LiveLoop
	offset   int64
	events   []correlation.AnnotatedEvent
}

// settingsController applies sensitivity commands from the live loop to
// the running configuration and records them.
type settingsController struct {
	settings *conf.Settings
}

func (c *settingsController) AdjustSensitivity(cmd detection.SensitivityCommand) error {
	c.settings.Detector.Sensitivity = cmd.Sensitivity
	logger.Info("sensitivity adjusted",
		"sensitivity", cmd.Sensitivity,
		"reason", cmd.Reason)
	return nil
}

func newMonitor(settings *conf.Settings, metrics *observability.Metrics) *monitor {
	live := calibration.NewLiveLoop(
		calibration.LiveConfig{
			Interval:       time.Duration(settings.Calibration.Live.Interval) * time.Second,
			Tolerance:      settings.Calibration.Tolerance,
			Step:           settings.Calibration.Live.Step,
			MinDelta:       settings.Calibration.Live.MinDelta,
			MinSensitivity: settings.Calibration.Live.MinSensitivity,
			MaxSensitivity: settings.Calibration.Live.MaxSensitivity,
		},
		&settingsController{settings: settings},
		settings.Detector.Sensitivity,
		metrics,
	)
	return &monitor{settings: settings, metrics: metrics, live: live}
}

// RealtimeAnalysis watches the configured detection log until
// interrupted, then renders and optionally persists the final report.
// While it runs, every line typed on stdin records an operator "bark
// heard now" mark for the live calibration loop.
func RealtimeAnalysis(settings *conf.Settings) error {
	metrics, err := observability.NewMetrics(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	m := newMonitor(settings, metrics)
	m.live.Start()
	defer m.live.Stop()
	go m.readMarks(os.Stdin)

	quit := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		close(quit)
	}()

	logger.Info("realtime monitoring started",
		"log", settings.Input.Path,
		"interval", settings.Realtime.Interval)

	ticker := time.NewTicker(time.Duration(settings.Realtime.Interval) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-quit:
			logger.Info("realtime monitoring stopped")
			return m.finalReport()
		case <-ticker.C:
			m.tick()
		}
	}
}

// readMarks turns every line of operator input into a mark at the
// current second of day.
func (m *monitor) readMarks(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		now := time.Now()
		mark := float64(now.Hour()*3600+now.Minute()*60+now.Second()) +
			float64(now.Nanosecond())/1e9
		m.live.AddMark(mark)
		logger.Info("operator mark recorded", "second_of_day", mark)
	}
}

// tick ingests new log lines, feeds the live loop and reclassifies the
// accumulated events.
func (m *monitor) tick() {
	added, err := m.ingest()
	if err != nil {
		logger.Warn("detection log not readable", "path", m.settings.Input.Path, "error", err)
		return
	}
	if added == 0 {
		return
	}
	// AddDetection also counts each event in DetectionsProcessed
	for i := len(m.events) - added; i < len(m.events); i++ {
		m.live.AddDetection(m.events[i].StartTime)
	}

	events := make([]detection.Event, 0, len(m.events))
	for i := range m.events {
		events = append(events, m.events[i].Event)
	}
	sessions := BuildSessions(events, m.settings.Analysis.SessionGap)
	m.metrics.SessionsBuilt.Add(float64(len(sessions)))

	date := m.events[0].Timestamp.Format("2006-01-02")
	classifier := NewClassifier(ClassifierConfig{
		SessionGap:          m.settings.Analysis.SessionGap,
		ConstantMinDuration: m.settings.Analysis.ConstantMinDuration,
		MinViolationSpan:    m.settings.Analysis.MinViolationSpan,
	})
	violations := classifier.ClassifySessions(date, sessions)
	for i := range violations {
		m.metrics.ViolationsTotal.WithLabelValues(string(violations[i].Type)).Inc()
	}

	logger.Info("monitoring tick",
		"new_detections", added,
		"total_detections", len(m.events),
		"violations", len(violations))
}

// ingest reads log lines appended since the last tick. A log that
// shrank was rotated, so reading restarts from the top.
func (m *monitor) ingest() (int, error) {
	f, err := os.Open(m.settings.Input.Path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	if info.Size() < m.offset {
		m.offset = 0
		m.events = nil
	}
	if _, err := f.Seek(m.offset, 0); err != nil {
		return 0, err
	}

	fresh, err := correlation.ParseLog(f, m.settings.Analysis.BarkDuration)
	if err != nil {
		return 0, err
	}
	m.offset = info.Size()
	m.events = append(m.events, fresh...)
	return len(fresh), nil
}

// finalReport runs the one-shot pipeline over everything seen so far.
func (m *monitor) finalReport() error {
	if _, err := m.ingest(); err != nil && !os.IsNotExist(err) {
		return err
	}
	if len(m.events) == 0 {
		logger.Info("no detections observed, skipping final report")
		return nil
	}
	return FileAnalysis(m.settings)
}
