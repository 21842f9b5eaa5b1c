package calibration

import "math"

// f1Epsilon keeps the F1 denominator away from zero when both precision
// and recall are zero.
const f1Epsilon = 1e-9

// MatchResult holds the outcome of scoring one detection set against one
// reference set at one tolerance. It is ephemeral and never persisted.
type MatchResult struct {
	Matches        int
	FalsePositives int
	Misses         int
	Precision      float64
	Recall         float64
	F1             float64
}

// Score pairs reference bark times against detected times with a greedy,
// first-fit pass: each reference claims the first unclaimed detection
// within tolerance seconds, in order. Unmatched references are misses;
// detections left unclaimed at the end are false positives.
func Score(references, detections []float64, tolerance float64) MatchResult {
	claimed := make([]bool, len(detections))
	result := MatchResult{}

	for _, ref := range references {
		matched := false
		for i, det := range detections {
			if claimed[i] {
				continue
			}
			if math.Abs(det-ref) <= tolerance {
				claimed[i] = true
				result.Matches++
				matched = true
				break
			}
		}
		if !matched {
			result.Misses++
		}
	}

	for _, c := range claimed {
		if !c {
			result.FalsePositives++
		}
	}

	result.Precision = float64(result.Matches) / math.Max(float64(len(detections)), 1)
	result.Recall = float64(result.Matches) / math.Max(float64(len(references)), 1)
	result.F1 = 2 * result.Precision * result.Recall /
		math.Max(result.Precision+result.Recall, f1Epsilon)

	return result
}
