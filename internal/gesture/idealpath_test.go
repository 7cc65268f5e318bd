package gesture

import "testing"

func qwertyThreeKeyLayout() KeyboardLayout {
	return KeyboardLayout{
		LanguageTag: "en-US",
		Keys: []KeyDescriptor{
			{Label: "h", CodePoint: 'h', CenterX: 10, CenterY: 10, Width: 20, Height: 20},
			{Label: "i", CodePoint: 'i', CenterX: 30, CenterY: 10, Width: 20, Height: 20},
			{Label: "e", CodePoint: 'e', CenterX: 50, CenterY: 10, Width: 20, Height: 20},
		},
		LayoutWidth:  60,
		LayoutHeight: 20,
	}
}

func TestGetIdealPathReturnsInvalidWithoutLayout(t *testing.T) {
	g := NewIdealPathGenerator()
	path := g.GetIdealPath("hi")
	if path.IsValid() {
		t.Fatalf("expected invalid path when no layout is set")
	}
}

func TestGetIdealPathReturnsInvalidForSingleKeyWord(t *testing.T) {
	g := NewIdealPathGenerator()
	g.SetLayout(qwertyThreeKeyLayout())
	path := g.GetIdealPath("hhh")
	if path.IsValid() {
		t.Fatalf("expected invalid path for a word mapping to a single distinct key")
	}
}

func TestGetIdealPathCachesByLowercasedWord(t *testing.T) {
	g := NewIdealPathGenerator()
	g.SetLayout(qwertyThreeKeyLayout())
	first := g.GetIdealPath("hi")
	if !first.IsValid() {
		t.Fatalf("expected valid ideal path for 'hi'")
	}
	if g.CacheSize() != 1 {
		t.Fatalf("expected cache size 1 after first lookup, got %d", g.CacheSize())
	}
	second := g.GetIdealPath("HI")
	if g.CacheSize() != 1 {
		t.Fatalf("expected 'HI' to reuse the 'hi' cache entry, got cache size %d", g.CacheSize())
	}
	if len(first.Points) != len(second.Points) {
		t.Fatalf("expected identical cached paths for case-differing lookups")
	}
}

func TestSetLayoutClearsCache(t *testing.T) {
	g := NewIdealPathGenerator()
	g.SetLayout(qwertyThreeKeyLayout())
	g.GetIdealPath("hi")
	if g.CacheSize() != 1 {
		t.Fatalf("expected 1 cached entry before layout change")
	}
	g.SetLayout(qwertyThreeKeyLayout())
	if g.CacheSize() != 0 {
		t.Fatalf("expected cache to be cleared after SetLayout, got %d entries", g.CacheSize())
	}
}

func TestPregenerateWarmsCacheForEveryWord(t *testing.T) {
	g := NewIdealPathGenerator()
	g.SetLayout(qwertyThreeKeyLayout())
	g.Pregenerate([]string{"hi", "he", "hie"})
	if g.CacheSize() != 3 {
		t.Fatalf("expected 3 cached entries, got %d", g.CacheSize())
	}
}

func TestGetIdealPathSetsStartAndEndKeyIndex(t *testing.T) {
	g := NewIdealPathGenerator()
	layout := qwertyThreeKeyLayout()
	g.SetLayout(layout)
	path := g.GetIdealPath("hie")
	if path.StartKeyIndex != 0 {
		t.Fatalf("expected start key index 0 (h), got %d", path.StartKeyIndex)
	}
	if path.EndKeyIndex != 2 {
		t.Fatalf("expected end key index 2 (e), got %d", path.EndKeyIndex)
	}
}
