// Package gesturetest provides fixtures shared by the gesture package's
// tests: a synthesized QWERTY layout, straight-line path generation for a
// known word, and a reproducible noise generator.
package gesturetest

import "github.com/dettmer/glidetype/internal/gesture"

type keyDef struct {
	label string
	cp    int32
	cx, cy float64
	w, h  float64
}

var qwertyKeys = []keyDef{
	// Row 1: Q W E R T Y U I O P
	{"q", 113, 16, 26, 32, 52}, {"w", 119, 48, 26, 32, 52},
	{"e", 101, 80, 26, 32, 52}, {"r", 114, 112, 26, 32, 52},
	{"t", 116, 144, 26, 32, 52}, {"y", 121, 176, 26, 32, 52},
	{"u", 117, 208, 26, 32, 52}, {"i", 105, 240, 26, 32, 52},
	{"o", 111, 272, 26, 32, 52}, {"p", 112, 304, 26, 32, 52},
	// Row 2: A S D F G H J K L
	{"a", 97, 32, 80, 32, 52}, {"s", 115, 64, 80, 32, 52},
	{"d", 100, 96, 80, 32, 52}, {"f", 102, 128, 80, 32, 52},
	{"g", 103, 160, 80, 32, 52}, {"h", 104, 192, 80, 32, 52},
	{"j", 106, 224, 80, 32, 52}, {"k", 107, 256, 80, 32, 52},
	{"l", 108, 288, 80, 32, 52},
	// Row 3: Z X C V B N M
	{"z", 122, 64, 134, 32, 52}, {"x", 120, 96, 134, 32, 52},
	{"c", 99, 128, 134, 32, 52}, {"v", 118, 160, 134, 32, 52},
	{"b", 98, 192, 134, 32, 52}, {"n", 110, 224, 134, 32, 52},
	{"m", 109, 256, 134, 32, 52},
}

// QwertyLayout returns a 320x160 dp, 26-key QWERTY layout matching the
// board used by the reference implementation's own tests.
func QwertyLayout() gesture.KeyboardLayout {
	keys := make([]gesture.KeyDescriptor, len(qwertyKeys))
	for i, k := range qwertyKeys {
		keys[i] = gesture.KeyDescriptor{
			Label:     k.label,
			CodePoint: k.cp,
			CenterX:   k.cx,
			CenterY:   k.cy,
			Width:     k.w,
			Height:    k.h,
		}
	}
	return gesture.KeyboardLayout{
		LanguageTag:  "en-US",
		Keys:         keys,
		LayoutWidth:  320.0,
		LayoutHeight: 160.0,
	}
}

// PathForWord generates a straight-line raw path through the key centers of
// word's letters, pointsPerSegment points per segment at 10ms intervals.
// Letters with no matching key are skipped when collecting centers.
func PathForWord(layout gesture.KeyboardLayout, word string, pointsPerSegment int) gesture.RawPath {
	if word == "" {
		return gesture.RawPath{}
	}

	type center struct{ x, y float64 }
	var centers []center
	for i := 0; i < len(word); i++ {
		cp := int32(word[i])
		idx := layout.FindKeyByCodePoint(cp)
		if idx >= 0 {
			key := layout.Keys[idx]
			centers = append(centers, center{key.CenterX, key.CenterY})
		}
	}
	if len(centers) == 0 {
		return gesture.RawPath{}
	}

	var points []gesture.RawPoint
	var ts int64
	for i := 0; i < len(centers)-1; i++ {
		x0, y0 := centers[i].x, centers[i].y
		x1, y1 := centers[i+1].x, centers[i+1].y
		for j := 0; j < pointsPerSegment; j++ {
			t := float64(j) / float64(pointsPerSegment)
			points = append(points, gesture.RawPoint{
				X: x0 + (x1-x0)*t,
				Y: y0 + (y1-y0)*t,
				T: ts,
			})
			ts += 10
		}
	}
	last := centers[len(centers)-1]
	points = append(points, gesture.RawPoint{X: last.x, Y: last.y, T: ts})

	return gesture.RawPath{Points: points}
}

// AddNoise perturbs each point in place with reproducible pseudo-random
// noise from a linear congruential generator seeded by seed.
func AddNoise(path gesture.RawPath, stddevX, stddevY float64, seed uint32) {
	state := seed
	next := func() float64 {
		state = state*1664525 + 1013904223
		return (float64(state)/float64(0xFFFFFFFF))*2.0 - 1.0
	}
	for i := range path.Points {
		path.Points[i].X += next() * stddevX
		path.Points[i].Y += next() * stddevY
	}
}
