package gesture

import (
	"math"
	"strings"
)

// IdealPathGenerator produces the reference path connecting a word's key
// centers, resampled and normalized identically to user input. Results are
// memoized per lowercased word for the current layout; SetLayout clears the
// cache wholesale.
type IdealPathGenerator struct {
	layout    KeyboardLayout
	haveLayout bool
	cache     map[string]NormalizedPath
}

// NewIdealPathGenerator returns a generator with no layout set.
func NewIdealPathGenerator() *IdealPathGenerator {
	return &IdealPathGenerator{cache: make(map[string]NormalizedPath)}
}

// SetLayout replaces the layout and clears the cache wholesale.
func (g *IdealPathGenerator) SetLayout(layout KeyboardLayout) {
	g.layout = layout
	g.haveLayout = true
	g.cache = make(map[string]NormalizedPath)
}

// GetIdealPath returns the memoized ideal path for word, generating and
// caching it if necessary. Returns a zero-value (invalid) path if no layout
// is set or the word maps to fewer than two distinct keys.
func (g *IdealPathGenerator) GetIdealPath(word string) NormalizedPath {
	if !g.haveLayout {
		return NormalizedPath{}
	}
	key := strings.ToLower(word)
	if path, ok := g.cache[key]; ok {
		return path
	}
	path := g.generate(key)
	g.cache[key] = path
	return path
}

// Pregenerate warms the cache for the given words.
func (g *IdealPathGenerator) Pregenerate(words []string) {
	for _, w := range words {
		g.GetIdealPath(w)
	}
}

// ClearCache empties the ideal-path cache.
func (g *IdealPathGenerator) ClearCache() {
	g.cache = make(map[string]NormalizedPath)
}

// CacheSize reports the number of memoized entries.
func (g *IdealPathGenerator) CacheSize() int {
	return len(g.cache)
}

func (g *IdealPathGenerator) generate(lowerWord string) NormalizedPath {
	var keyPoints []RawPoint
	prevKeyIdx := int32(-1)
	charIdx := int64(0)

	for _, ch := range []byte(lowerWord) {
		cp := int32(ch)
		keyIdx := g.layout.FindKeyByCodePoint(cp)
		if keyIdx < 0 {
			continue
		}
		if keyIdx == prevKeyIdx {
			continue
		}
		key := g.layout.Keys[keyIdx]
		keyPoints = append(keyPoints, RawPoint{
			X: key.CenterX,
			Y: key.CenterY,
			T: charIdx * 100,
		})
		prevKeyIdx = keyIdx
		charIdx++
	}

	if len(keyPoints) < 2 {
		return NormalizedPath{}
	}

	arcLen := computeArcLength(keyPoints)
	resampled := resampleFixed(keyPoints, ResampleCount)
	path := normalizeBoundingBox(resampled, arcLen)

	startCp, endCp := firstLastMappableCodePoints(lowerWord, g.layout)
	if startCp >= 0 {
		path.StartKeyIndex = g.layout.FindKeyByCodePoint(startCp)
	} else {
		path.StartKeyIndex = -1
	}
	if endCp >= 0 {
		path.EndKeyIndex = g.layout.FindKeyByCodePoint(endCp)
	} else {
		path.EndKeyIndex = -1
	}

	return path
}

func firstLastMappableCodePoints(lowerWord string, layout KeyboardLayout) (int32, int32) {
	first := int32(-1)
	last := int32(-1)
	for _, ch := range []byte(lowerWord) {
		cp := int32(ch)
		if layout.FindKeyByCodePoint(cp) >= 0 {
			first = cp
			break
		}
	}
	for i := len(lowerWord) - 1; i >= 0; i-- {
		cp := int32(lowerWord[i])
		if layout.FindKeyByCodePoint(cp) >= 0 {
			last = cp
			break
		}
	}
	return first, last
}

// resampleFixed resamples an arbitrary point sequence to exactly count
// points, using the same arc-length algorithm as PathProcessor.resample.
func resampleFixed(points []RawPoint, count int) []RawPoint {
	if len(points) < 2 || count < 2 {
		return points
	}

	totalLen := computeArcLength(points)
	if totalLen < 1e-6 {
		filled := make([]RawPoint, count)
		for i := range filled {
			filled[i] = points[0]
		}
		return filled
	}

	interval := totalLen / float64(count-1)
	result := make([]RawPoint, 0, count)
	result = append(result, points[0])

	d := 0.0
	pts := append([]RawPoint(nil), points...)
	i := 1

	for i < len(pts) && len(result) < count-1 {
		dx := pts[i].X - pts[i-1].X
		dy := pts[i].Y - pts[i-1].Y
		seg := math.Sqrt(dx*dx + dy*dy)

		if d+seg >= interval {
			t := (interval - d) / seg
			newPt := RawPoint{
				X: pts[i-1].X + t*dx,
				Y: pts[i-1].Y + t*dy,
				T: pts[i-1].T + int64(t*float64(pts[i].T-pts[i-1].T)),
			}
			result = append(result, newPt)

			grown := make([]RawPoint, 0, len(pts)+1)
			grown = append(grown, pts[:i]...)
			grown = append(grown, newPt)
			grown = append(grown, pts[i:]...)
			pts = grown
			d = 0.0
			i++
		} else {
			d += seg
			i++
		}
	}

	for len(result) < count {
		result = append(result, pts[len(pts)-1])
	}
	return result[:count]
}
