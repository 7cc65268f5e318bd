package gesture

import "math"

// Scorer computes band-constrained DTW distance between normalized paths.
type Scorer struct {
	config ScoringConfig
}

// NewScorer returns a scorer configured with the spec defaults.
func NewScorer() *Scorer {
	return &Scorer{config: DefaultScoringConfig()}
}

// Configure updates the scorer's tunable parameters.
func (s *Scorer) Configure(config ScoringConfig) {
	s.config = config
}

// ComputeDTWDistance returns the band-constrained DTW distance between two
// normalized paths, accumulated cost at (N-1,N-1) divided by N. Returns
// +Inf if either path does not have exactly ResampleCount points.
func (s *Scorer) ComputeDTWDistance(gesture, ideal NormalizedPath) float64 {
	n := ResampleCount
	if len(gesture.Points) != n || len(ideal.Points) != n {
		return math.Inf(1)
	}

	// floor, not ceil: DTWBandwidthRatio=0.10 against a 64-point path must
	// yield a band width of 6, matching the fixed reference bandwidth.
	w := int(math.Floor(s.config.DTWBandwidthRatio * float64(n)))
	if w < 1 {
		w = 1
	}

	prev := make([]float64, n)
	curr := make([]float64, n)
	for i := range prev {
		prev[i] = math.Inf(1)
	}

	prev[0] = pointDistance(gesture.Points[0], ideal.Points[0])
	limit := w
	if n-1 < limit {
		limit = n - 1
	}
	for j := 1; j <= limit; j++ {
		if !math.IsInf(prev[j-1], 1) {
			prev[j] = prev[j-1] + pointDistance(gesture.Points[0], ideal.Points[j])
		}
	}

	for i := 1; i < n; i++ {
		for j := range curr {
			curr[j] = math.Inf(1)
		}

		jMin := i - w
		if jMin < 0 {
			jMin = 0
		}
		jMax := i + w
		if jMax > n-1 {
			jMax = n - 1
		}

		for j := jMin; j <= jMax; j++ {
			cost := pointDistance(gesture.Points[i], ideal.Points[j])

			best := math.Inf(1)
			if !math.IsInf(prev[j], 1) {
				best = math.Min(best, prev[j])
			}
			if j > 0 && !math.IsInf(curr[j-1], 1) {
				best = math.Min(best, curr[j-1])
			}
			if j > 0 && !math.IsInf(prev[j-1], 1) {
				best = math.Min(best, prev[j-1])
			}

			if !math.IsInf(best, 1) {
				curr[j] = cost + best
			} else {
				curr[j] = math.Inf(1)
			}
		}

		prev, curr = curr, prev
	}

	raw := prev[n-1]
	if math.IsInf(raw, 1) {
		return math.Inf(1)
	}
	return raw / float64(n)
}

// ComputeConfidence fuses a DTW distance and dictionary frequency into a
// confidence in [0,1], using the scorer's configured frequency weight as
// alpha. Callers computing an adaptive alpha (§4.6 step 8) pass it via
// ComputeConfidenceWithAlpha instead.
func (s *Scorer) ComputeConfidence(dtwDistance, maxDTWDistance float64, frequency, maxFrequency uint32) float64 {
	return s.ComputeConfidenceWithAlpha(dtwDistance, maxDTWDistance, frequency, maxFrequency, s.config.FrequencyWeight)
}

// ComputeConfidenceWithAlpha fuses a DTW distance and dictionary frequency
// into a confidence in [0,1] using an explicit frequency weight alpha.
func (s *Scorer) ComputeConfidenceWithAlpha(dtwDistance, maxDTWDistance float64, frequency, maxFrequency uint32, alpha float64) float64 {
	normalizedDTW := 1.0
	if maxDTWDistance > 0 && !math.IsInf(dtwDistance, 1) {
		normalizedDTW = math.Min(1.0, dtwDistance/maxDTWDistance)
	}

	normalizedFreq := 0.0
	if maxFrequency > 0 {
		normalizedFreq = math.Min(1.0, float64(frequency)/float64(maxFrequency))
	}

	finalScore := (1.0-alpha)*normalizedDTW + alpha*(1.0-normalizedFreq)
	finalScore = math.Max(0.0, math.Min(1.0, finalScore))
	return 1.0 - finalScore
}

func pointDistance(a, b NormalizedPoint) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
