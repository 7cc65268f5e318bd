// Package bench drives gesture.Engine.Recognize with synthetic swipe paths
// and records latency and ranking outcomes.
package bench

import (
	"time"

	"github.com/dettmer/glidetype/internal/gesture"
	"github.com/dettmer/glidetype/internal/gesturetest"
)

// Case is one word the harness feeds through the recognizer.
type Case struct {
	Word             string
	PointsPerSegment int
	NoiseStdDevX     float64
	NoiseStdDevY     float64
	NoiseSeed        uint32
}

// Result is the outcome of running one Case through the engine.
type Result struct {
	Word       string
	LatencyMs  float64
	Rank       int // 1-based index of Word in the returned candidates, 0 if absent
	Top1       bool
	Top3       bool
	Confidence float64 // confidence of Word's candidate, 0 if absent
}

// Run feeds each case in order through engine.Recognize using a straight-line
// synthetic path over layout, and returns one Result per case in input order.
func Run(engine *gesture.Engine, layout gesture.KeyboardLayout, cases []Case, maxCandidates int) []Result {
	results := make([]Result, len(cases))
	for i, c := range cases {
		pointsPerSegment := c.PointsPerSegment
		if pointsPerSegment <= 0 {
			pointsPerSegment = 8
		}
		path := gesturetest.PathForWord(layout, c.Word, pointsPerSegment)
		if c.NoiseStdDevX > 0 || c.NoiseStdDevY > 0 {
			gesturetest.AddNoise(path, c.NoiseStdDevX, c.NoiseStdDevY, c.NoiseSeed)
		}

		start := time.Now()
		candidates := engine.Recognize(path, maxCandidates)
		elapsed := time.Since(start)

		result := Result{Word: c.Word, LatencyMs: float64(elapsed) / float64(time.Millisecond)}
		for idx, cand := range candidates {
			if cand.Word == c.Word {
				result.Rank = idx + 1
				result.Confidence = cand.Confidence
				result.Top1 = idx == 0
				result.Top3 = idx < 3
				break
			}
		}
		results[i] = result
	}
	return results
}

// SummaryMetrics aggregates a set of Results into top-line figures.
type SummaryMetrics struct {
	CaseCount    int
	Top1Rate     float64
	Top3Rate     float64
	AvgLatencyMs float64
	P95LatencyMs float64
}

// Summarize computes SummaryMetrics over results.
func Summarize(results []Result) SummaryMetrics {
	if len(results) == 0 {
		return SummaryMetrics{}
	}
	var top1, top3 int
	var sumLatency float64
	latencies := make([]float64, len(results))
	for i, r := range results {
		if r.Top1 {
			top1++
		}
		if r.Top3 {
			top3++
		}
		sumLatency += r.LatencyMs
		latencies[i] = r.LatencyMs
	}
	n := float64(len(results))
	return SummaryMetrics{
		CaseCount:    len(results),
		Top1Rate:     float64(top1) / n,
		Top3Rate:     float64(top3) / n,
		AvgLatencyMs: sumLatency / n,
		P95LatencyMs: percentile(latencies, 0.95),
	}
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

func percentile(values []float64, p float64) float64 {
	sorted := append([]float64(nil), values...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1] > sorted[j]; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}
