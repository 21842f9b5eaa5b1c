// Package observability wires Prometheus metrics for the bark monitoring
// pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all pipeline metrics.
type Metrics struct {
	DetectionsProcessed    prometheus.Counter
	SessionsBuilt          prometheus.Counter
	ViolationsTotal        *prometheus.CounterVec
	CalibrationAdjustments prometheus.Counter
	CurrentSensitivity     prometheus.Gauge
}

// NewMetrics creates and registers pipeline metrics on the given registry.
func NewMetrics(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{
		DetectionsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barknet_detections_processed_total",
			Help: "Number of bark detection events processed.",
		}),
		SessionsBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barknet_sessions_built_total",
			Help: "Number of barking sessions built from detection streams.",
		}),
		ViolationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "barknet_violations_total",
			Help: "Number of finalized violations by type.",
		}, []string{"type"}),
		CalibrationAdjustments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "barknet_calibration_adjustments_total",
			Help: "Number of committed live sensitivity adjustments.",
		}),
		CurrentSensitivity: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "barknet_current_sensitivity",
			Help: "Detector sensitivity currently in effect.",
		}),
	}

	collectors := []prometheus.Collector{
		m.DetectionsProcessed,
		m.SessionsBuilt,
		m.ViolationsTotal,
		m.CalibrationAdjustments,
		m.CurrentSensitivity,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewTestMetrics creates metrics on a throwaway registry for tests.
func NewTestMetrics() *Metrics {
	m, err := NewMetrics(prometheus.NewRegistry())
	if err != nil {
		panic(err)
	}
	return m
}
