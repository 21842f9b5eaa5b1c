package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreGreedyFirstFit(t *testing.T) {
	t.Parallel()

	result := Score([]float64{10, 25, 40}, []float64{10.5, 24, 41, 60}, 3)

	assert.Equal(t, 3, result.Matches)
	assert.Equal(t, 1, result.FalsePositives) // the detection at 60
	assert.Equal(t, 0, result.Misses)
	assert.InDelta(t, 0.75, result.Precision, 1e-9)
	assert.InDelta(t, 1.0, result.Recall, 1e-9)
	assert.InDelta(t, 2*0.75*1.0/(0.75+1.0), result.F1, 1e-9)
}

func TestScoreFirstFitNotBestFit(t *testing.T) {
	t.Parallel()

	// both detections are within tolerance of the reference at 10; the
	// first in order is claimed even though the second is closer
	result := Score([]float64{10, 12}, []float64{12, 10}, 3)

	assert.Equal(t, 2, result.Matches)
	assert.Equal(t, 0, result.FalsePositives)
	assert.Equal(t, 0, result.Misses)
}

func TestScoreMisses(t *testing.T) {
	t.Parallel()

	result := Score([]float64{10, 100}, []float64{11}, 3)

	assert.Equal(t, 1, result.Matches)
	assert.Equal(t, 1, result.Misses)
	assert.Equal(t, 0, result.FalsePositives)
	assert.InDelta(t, 1.0, result.Precision, 1e-9)
	assert.InDelta(t, 0.5, result.Recall, 1e-9)
}

func TestScoreDetectionClaimedOnce(t *testing.T) {
	t.Parallel()

	// one detection cannot satisfy two references
	result := Score([]float64{10, 11}, []float64{10.5}, 3)

	assert.Equal(t, 1, result.Matches)
	assert.Equal(t, 1, result.Misses)
	assert.Equal(t, 0, result.FalsePositives)
}

func TestScoreEmptySets(t *testing.T) {
	t.Parallel()

	result := Score(nil, nil, 3)
	assert.Zero(t, result.Matches)
	assert.Zero(t, result.Precision)
	assert.Zero(t, result.Recall)
	assert.Zero(t, result.F1) // epsilon floor, no NaN

	onlyRefs := Score([]float64{5}, nil, 3)
	assert.Equal(t, 1, onlyRefs.Misses)
	assert.Zero(t, onlyRefs.Precision)

	onlyDets := Score(nil, []float64{5}, 3)
	assert.Equal(t, 1, onlyDets.FalsePositives)
	assert.Zero(t, onlyDets.Recall)
}

func TestScoreToleranceBoundaryInclusive(t *testing.T) {
	t.Parallel()

	result := Score([]float64{10}, []float64{13}, 3)
	assert.Equal(t, 1, result.Matches)

	result = Score([]float64{10}, []float64{13.001}, 3)
	assert.Equal(t, 0, result.Matches)
	assert.Equal(t, 1, result.Misses)
	assert.Equal(t, 1, result.FalsePositives)
}
