package gesture

import "math"

// FindNearestKey returns the index of the character key nearest to (x, y) by
// Euclidean distance, ties broken by smaller index. Returns -1 if the layout
// has no character keys.
func (l KeyboardLayout) FindNearestKey(x, y float64) int32 {
	bestIndex := int32(-1)
	bestDist := math.MaxFloat64

	for i, key := range l.Keys {
		if !key.IsCharacterKey() {
			continue
		}
		dx := key.CenterX - x
		dy := key.CenterY - y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < bestDist {
			bestDist = dist
			bestIndex = int32(i)
		}
	}
	return bestIndex
}

// FindKeyByCodePoint returns the index of the first key whose code point
// matches cp (ASCII case-insensitive), or -1 if none match.
func (l KeyboardLayout) FindKeyByCodePoint(cp int32) int32 {
	search := lowerASCIICodePoint(cp)
	for i, key := range l.Keys {
		if lowerASCIICodePoint(key.CodePoint) == search {
			return int32(i)
		}
	}
	return -1
}

// IsValid reports whether the layout has positive dimensions and at least
// one character key.
func (l KeyboardLayout) IsValid() bool {
	if l.LayoutWidth <= 0 || l.LayoutHeight <= 0 {
		return false
	}
	for _, key := range l.Keys {
		if key.IsCharacterKey() {
			return true
		}
	}
	return false
}

func lowerASCIICodePoint(cp int32) int32 {
	if cp >= 'A' && cp <= 'Z' {
		return cp - 'A' + 'a'
	}
	return cp
}
