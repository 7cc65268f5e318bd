package gesture

import "math"

// PathProcessor transforms a raw touch path into a fixed-size, normalized
// path: deduplicate, resample to a fixed point count, then bounding-box
// normalize.
type PathProcessor struct {
	minPointDistance float64
	resampleCount    int
}

// NewPathProcessor returns a processor with the spec defaults.
func NewPathProcessor() *PathProcessor {
	return &PathProcessor{
		minPointDistance: MinPointDistanceDP,
		resampleCount:    ResampleCount,
	}
}

// SetMinPointDistance overrides the deduplication distance threshold.
func (p *PathProcessor) SetMinPointDistance(d float64) {
	p.minPointDistance = d
}

// SetResampleCount overrides the resample point count.
func (p *PathProcessor) SetResampleCount(n int) {
	if n >= 2 {
		p.resampleCount = n
	}
}

// Normalize converts a raw path into a NormalizedPath. Returns a path with
// zero points (invalid, per IsValid) if the input has too few points after
// deduplication.
func (p *PathProcessor) Normalize(raw RawPath, layout KeyboardLayout) NormalizedPath {
	if raw.IsEmpty() {
		return NormalizedPath{}
	}

	deduped := p.deduplicate(raw.Points)
	if len(deduped) < 2 {
		return NormalizedPath{}
	}

	arcLen := computeArcLength(deduped)
	resampled := p.resample(deduped)
	path := normalizeBoundingBox(resampled, arcLen)

	path.StartKeyIndex = layout.FindNearestKey(raw.Points[0].X, raw.Points[0].Y)
	path.EndKeyIndex = layout.FindNearestKey(raw.Points[len(raw.Points)-1].X, raw.Points[len(raw.Points)-1].Y)

	return path
}

// deduplicate keeps the first point, each subsequent point at least
// minPointDistance from the last kept point, and always the final point.
func (p *PathProcessor) deduplicate(points []RawPoint) []RawPoint {
	if len(points) <= 2 {
		return points
	}

	result := make([]RawPoint, 0, len(points))
	result = append(result, points[0])

	for i := 1; i < len(points)-1; i++ {
		last := result[len(result)-1]
		cur := points[i]
		dx := cur.X - last.X
		dy := cur.Y - last.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist >= p.minPointDistance {
			result = append(result, cur)
		}
	}

	result = append(result, points[len(points)-1])
	return result
}

// resample produces exactly resampleCount approximately-equidistant points
// along the path, using the $1-recognizer arc-length resampler.
func (p *PathProcessor) resample(points []RawPoint) []RawPoint {
	if len(points) < 2 {
		return points
	}

	totalLen := computeArcLength(points)
	if totalLen < 1e-6 {
		filled := make([]RawPoint, p.resampleCount)
		for i := range filled {
			filled[i] = points[0]
		}
		return filled
	}

	interval := totalLen / float64(p.resampleCount-1)
	result := make([]RawPoint, 0, p.resampleCount)
	result = append(result, points[0])

	d := 0.0
	pts := append([]RawPoint(nil), points...)
	i := 1

	for i < len(pts) && len(result) < p.resampleCount-1 {
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

			// Insert the new point before the current index so the
			// remainder of the segment is re-examined.
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

	for len(result) < p.resampleCount {
		result = append(result, pts[len(pts)-1])
	}
	return result[:p.resampleCount]
}

func computeArcLength(points []RawPoint) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		dx := points[i].X - points[i-1].X
		dy := points[i].Y - points[i-1].Y
		total += math.Sqrt(dx*dx + dy*dy)
	}
	return total
}

// normalizeBoundingBox maps points into a [0,1] bounding box with uniform
// scale (preserving aspect ratio) and linear-in-time normalized timestamps.
func normalizeBoundingBox(points []RawPoint, totalArcLength float64) NormalizedPath {
	if len(points) == 0 {
		return NormalizedPath{}
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	width := maxX - minX
	height := maxY - minY

	if width < 0.001 && height < 0.001 {
		pts := make([]NormalizedPoint, len(points))
		for i := range pts {
			pts[i] = NormalizedPoint{X: 0.5, Y: 0.5, T: 0.5}
		}
		return NormalizedPath{
			Points:         pts,
			AspectRatio:    1.0,
			TotalArcLength: totalArcLength,
			StartKeyIndex:  -1,
			EndKeyIndex:    -1,
		}
	}

	scale := math.Max(width, height)
	aspectRatio := 1.0
	if height >= 0.001 {
		aspectRatio = width / height
	}

	firstTs := points[0].T
	lastTs := points[len(points)-1].T
	tsRange := float64(lastTs - firstTs)

	pts := make([]NormalizedPoint, len(points))
	for i, p := range points {
		nx := (p.X - minX) / scale
		ny := (p.Y - minY) / scale
		nt := 0.5
		if tsRange > 0 {
			nt = float64(p.T-firstTs) / tsRange
		}
		pts[i] = NormalizedPoint{X: nx, Y: ny, T: nt}
	}

	return NormalizedPath{
		Points:         pts,
		AspectRatio:    aspectRatio,
		TotalArcLength: totalArcLength,
		StartKeyIndex:  -1,
		EndKeyIndex:    -1,
	}
}
