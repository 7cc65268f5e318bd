package gesture

import "testing"

func testLayout() KeyboardLayout {
	return KeyboardLayout{
		LanguageTag: "en-US",
		Keys: []KeyDescriptor{
			{Label: "q", CodePoint: 'q', CenterX: 10, CenterY: 10, Width: 20, Height: 20},
			{Label: "w", CodePoint: 'w', CenterX: 30, CenterY: 10, Width: 20, Height: 20},
			{Label: "gap", CodePoint: -1, CenterX: 50, CenterY: 10, Width: 20, Height: 20},
		},
		LayoutWidth:  60,
		LayoutHeight: 20,
	}
}

func TestFindNearestKeySkipsNonCharacterKeys(t *testing.T) {
	l := testLayout()
	idx := l.FindNearestKey(52, 10)
	if idx != 1 {
		t.Fatalf("expected nearest character key index 1 (w), got %d", idx)
	}
}

func TestFindNearestKeyReturnsMinusOneWithNoCharacterKeys(t *testing.T) {
	l := KeyboardLayout{Keys: []KeyDescriptor{{CodePoint: -1}}, LayoutWidth: 10, LayoutHeight: 10}
	if idx := l.FindNearestKey(0, 0); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}

func TestFindKeyByCodePointIsCaseInsensitive(t *testing.T) {
	l := testLayout()
	idx := l.FindKeyByCodePoint('Q')
	if idx != 0 {
		t.Fatalf("expected index 0 for 'Q', got %d", idx)
	}
	if idx := l.FindKeyByCodePoint('z'); idx != -1 {
		t.Fatalf("expected -1 for unmapped code point, got %d", idx)
	}
}

func TestIsValidRequiresPositiveDimensionsAndCharacterKey(t *testing.T) {
	valid := testLayout()
	if !valid.IsValid() {
		t.Fatalf("expected layout to be valid")
	}
	noCharKeys := KeyboardLayout{Keys: []KeyDescriptor{{CodePoint: -1}}, LayoutWidth: 10, LayoutHeight: 10}
	if noCharKeys.IsValid() {
		t.Fatalf("expected layout with no character keys to be invalid")
	}
	zeroDims := KeyboardLayout{Keys: []KeyDescriptor{{CodePoint: 'a'}}, LayoutWidth: 0, LayoutHeight: 10}
	if zeroDims.IsValid() {
		t.Fatalf("expected zero-width layout to be invalid")
	}
}
