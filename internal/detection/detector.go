package detection

import (
	"sort"
	"sync"
)

// Detector is the capability interface the ML inference engine is consumed
// through. Implementations are expected to be deterministic for fixed
// inputs and roughly monotonic in sensitivity (lower sensitivity never
// yields fewer detections); callers tolerate violations of the latter.
type Detector interface {
	Detect(pcm []float32, sensitivity float64) ([]Event, error)
}

// SensitivityCommand asks a detector owner to adjust its operating
// threshold. The calibration loop never mutates detector state directly;
// it sends one of these through a SensitivityController.
type SensitivityCommand struct {
	Sensitivity float64
	Reason      string
}

// SensitivityController accepts sensitivity adjustments on behalf of a
// running detector.
type SensitivityController interface {
	AdjustSensitivity(cmd SensitivityCommand) error
}

// StaticDetector is a deterministic Detector backed by a fixed event
// table. Detect returns the events whose confidence meets the requested
// sensitivity, which makes it monotonic in sensitivity by construction.
// It doubles as the deterministic stub for tests and sensitivity sweeps.
type StaticDetector struct {
	mu          sync.RWMutex
	events      []Event
	sensitivity float64
}

// NewStaticDetector creates a detector over a fixed candidate event table.
func NewStaticDetector(events []Event) *StaticDetector {
	sorted := make([]Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].StartTime < sorted[j].StartTime })
	return &StaticDetector{events: sorted, sensitivity: 0.5}
}

// Detect implements Detector. The pcm buffer is ignored; the candidate
// table stands in for model output.
func (d *StaticDetector) Detect(_ []float32, sensitivity float64) ([]Event, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var detected []Event
	for _, e := range d.events {
		if e.Confidence >= sensitivity {
			detected = append(detected, e)
		}
	}
	return detected, nil
}

// AdjustSensitivity implements SensitivityController.
func (d *StaticDetector) AdjustSensitivity(cmd SensitivityCommand) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sensitivity = cmd.Sensitivity
	return nil
}

// Sensitivity returns the last commanded operating threshold.
func (d *StaticDetector) Sensitivity() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sensitivity
}
