package gesture

import (
	"testing"

	"github.com/dettmer/glidetype/internal/dictgen"
	"github.com/dettmer/glidetype/internal/gesturetest"
)

func testDictData(t *testing.T) []byte {
	t.Helper()
	entries := []dictgen.Entry{
		{Word: "the", Frequency: 1000000},
		{Word: "and", Frequency: 800000},
		{Word: "hello", Frequency: 50000},
		{Word: "world", Frequency: 40000},
		{Word: "help", Frequency: 30000},
		{Word: "hero", Frequency: 20000},
		{Word: "go", Frequency: 200000},
		{Word: "do", Frequency: 180000},
		{Word: "a", Frequency: 900000},
	}
	data, err := dictgen.Encode(entries, dictgen.Options{LanguageTag: "en-US", Sort: true})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	return data
}

func newInitializedEngine(t *testing.T) (*Engine, KeyboardLayout) {
	t.Helper()
	layout := gesturetest.QwertyLayout()
	engine := NewEngine()
	if !engine.InitWithData(layout, testDictData(t)) {
		t.Fatalf("InitWithData failed: %+v", engine.GetLastError())
	}
	return engine, layout
}

func TestRecognizeBeforeInitReturnsNilWithError(t *testing.T) {
	engine := NewEngine()
	raw := gesturetest.PathForWord(gesturetest.QwertyLayout(), "hello", 3)
	candidates := engine.Recognize(raw, DefaultMaxCandidates)
	if candidates != nil {
		t.Fatalf("expected nil candidates before init, got %+v", candidates)
	}
	if engine.GetLastError().Code != ErrEngineNotInitialized {
		t.Fatalf("expected ErrEngineNotInitialized, got %v", engine.GetLastError().Code)
	}
}

func TestInitWithInvalidLayoutFails(t *testing.T) {
	engine := NewEngine()
	if engine.Init(KeyboardLayout{}, "irrelevant.glide") {
		t.Fatalf("expected Init to fail for an invalid layout")
	}
	if engine.GetLastError().Code != ErrLayoutInvalid {
		t.Fatalf("expected ErrLayoutInvalid, got %v", engine.GetLastError().Code)
	}
	if engine.IsInitialized() {
		t.Fatalf("expected engine to remain uninitialized")
	}
}

func TestInitWithDataInvalidDictionaryFails(t *testing.T) {
	engine := NewEngine()
	if engine.InitWithData(gesturetest.QwertyLayout(), []byte("not a dictionary")) {
		t.Fatalf("expected InitWithData to fail for malformed dictionary bytes")
	}
	if engine.IsInitialized() {
		t.Fatalf("expected engine to remain uninitialized")
	}
}

func TestRecognizeRejectsTooFewPoints(t *testing.T) {
	engine, _ := newInitializedEngine(t)
	raw := RawPath{Points: []RawPoint{{X: 1, Y: 1, T: 0}}}
	candidates := engine.Recognize(raw, DefaultMaxCandidates)
	if candidates != nil {
		t.Fatalf("expected nil candidates for a too-short path")
	}
	if engine.GetLastError().Code != ErrPathTooShort {
		t.Fatalf("expected ErrPathTooShort, got %v", engine.GetLastError().Code)
	}
}

func TestRecognizeFindsExactWordAtTop(t *testing.T) {
	engine, layout := newInitializedEngine(t)
	raw := gesturetest.PathForWord(layout, "hello", 4)
	candidates := engine.Recognize(raw, DefaultMaxCandidates)
	if len(candidates) == 0 {
		t.Fatalf("expected at least one candidate")
	}
	if candidates[0].Word != "hello" {
		t.Fatalf("expected 'hello' to rank first, got %q (all: %+v)", candidates[0].Word, candidates)
	}
}

func TestRecognizeCandidatesAreSortedByDescendingConfidence(t *testing.T) {
	engine, layout := newInitializedEngine(t)
	raw := gesturetest.PathForWord(layout, "hero", 4)
	candidates := engine.Recognize(raw, DefaultMaxCandidates)
	for i := 1; i < len(candidates); i++ {
		if candidates[i].Confidence > candidates[i-1].Confidence {
			t.Fatalf("expected descending confidence order, got %+v", candidates)
		}
	}
}

func TestRecognizeClampsToMaxCandidates(t *testing.T) {
	engine, layout := newInitializedEngine(t)
	raw := gesturetest.PathForWord(layout, "hello", 4)
	candidates := engine.Recognize(raw, 1)
	if len(candidates) != 1 {
		t.Fatalf("expected exactly 1 candidate when maxCandidates=1, got %d", len(candidates))
	}
}

func TestRecognizeClampsMaxCandidatesToUpperBound(t *testing.T) {
	engine, layout := newInitializedEngine(t)
	raw := gesturetest.PathForWord(layout, "hello", 4)
	candidates := engine.Recognize(raw, MaxMaxCandidates+50)
	if len(candidates) > MaxMaxCandidates {
		t.Fatalf("expected at most %d candidates, got %d", MaxMaxCandidates, len(candidates))
	}
}

func TestRecognizeSingleCandidateUsesMaxDTWFloor(t *testing.T) {
	engine, layout := newInitializedEngine(t)
	raw := gesturetest.PathForWord(layout, "and", 4)
	candidates := engine.Recognize(raw, DefaultMaxCandidates)
	if len(candidates) == 0 {
		t.Fatalf("expected at least one candidate for 'and'")
	}
	for _, c := range candidates {
		if c.Confidence < 0 || c.Confidence > 1 {
			t.Fatalf("expected confidence within [0,1], got %v for %q", c.Confidence, c.Word)
		}
	}
	// 'and' is the only word starting with 'a' and ending with 'd', so it is
	// scored alone; with MaxDTWFloor as the normalizer a near-perfect trace
	// keeps a high confidence instead of collapsing towards zero.
	if len(candidates) != 1 || candidates[0].Word != "and" {
		t.Fatalf("expected 'and' as the only candidate, got %+v", candidates)
	}
	if candidates[0].Confidence <= 0.3 {
		t.Fatalf("expected single-candidate confidence above 0.3, got %v", candidates[0].Confidence)
	}
}

func TestUpdateLayoutClearsIdealPathCache(t *testing.T) {
	engine, layout := newInitializedEngine(t)
	raw := gesturetest.PathForWord(layout, "hello", 4)
	engine.Recognize(raw, DefaultMaxCandidates)
	if engine.generator.CacheSize() == 0 {
		t.Fatalf("expected the ideal path cache to be warmed by Recognize")
	}
	if !engine.UpdateLayout(layout) {
		t.Fatalf("expected UpdateLayout to succeed")
	}
	if engine.generator.CacheSize() != 0 {
		t.Fatalf("expected ideal path cache to be cleared after UpdateLayout")
	}
}

func TestUpdateLayoutRejectsInvalidLayout(t *testing.T) {
	engine, _ := newInitializedEngine(t)
	if engine.UpdateLayout(KeyboardLayout{}) {
		t.Fatalf("expected UpdateLayout to fail for an invalid layout")
	}
	if engine.GetLastError().Code != ErrLayoutInvalid {
		t.Fatalf("expected ErrLayoutInvalid, got %v", engine.GetLastError().Code)
	}
}

func TestShutdownUnloadsAndDeinitializes(t *testing.T) {
	engine, layout := newInitializedEngine(t)
	engine.Shutdown()
	if engine.IsInitialized() {
		t.Fatalf("expected engine to be uninitialized after Shutdown")
	}
	raw := gesturetest.PathForWord(layout, "hello", 4)
	if candidates := engine.Recognize(raw, DefaultMaxCandidates); candidates != nil {
		t.Fatalf("expected nil candidates after Shutdown, got %+v", candidates)
	}
}

func TestConfigureAppliesResampleAndMinPointDistance(t *testing.T) {
	engine, _ := newInitializedEngine(t)
	cfg := DefaultScoringConfig()
	cfg.ResampleCount = 32
	cfg.MinPointDistance = 1.0
	engine.Configure(cfg)
	if engine.processor.resampleCount != 32 {
		t.Fatalf("expected processor resample count 32, got %d", engine.processor.resampleCount)
	}
	if engine.processor.minPointDistance != 1.0 {
		t.Fatalf("expected processor min point distance 1.0, got %v", engine.processor.minPointDistance)
	}
}

func TestErrorCallbackFiresOnFailure(t *testing.T) {
	engine := NewEngine()
	var received ErrorInfo
	calls := 0
	engine.SetErrorCallback(func(info ErrorInfo) {
		received = info
		calls++
	})
	engine.Init(KeyboardLayout{}, "irrelevant.glide")
	if calls != 1 {
		t.Fatalf("expected error callback to fire exactly once, got %d", calls)
	}
	if received.Code != ErrLayoutInvalid {
		t.Fatalf("expected ErrLayoutInvalid delivered to callback, got %v", received.Code)
	}
}

func TestFilterCandidatesFallsBackWhenStartEndTierIsEmpty(t *testing.T) {
	entries := []dictgen.Entry{
		{Word: "help", Frequency: 30000},
		{Word: "hero", Frequency: 20000},
		{Word: "the", Frequency: 1000000},
	}
	data, err := dictgen.Encode(entries, dictgen.Options{LanguageTag: "en-US", Sort: true})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	engine := NewEngine()
	if !engine.InitWithData(gesturetest.QwertyLayout(), data) {
		t.Fatalf("InitWithData failed: %+v", engine.GetLastError())
	}

	// No word starts with 'h' and ends with 'z': the start/end tier must be
	// empty, and filterCandidates must fall through to the start-letter
	// tier rather than returning nothing.
	result := engine.filterCandidates('h', true, 'z', true)
	if len(result) != 2 {
		t.Fatalf("expected fallback to the 2 'h'-starting entries, got %+v", result)
	}
	for _, e := range result {
		if e.Word[0] != 'h' {
			t.Fatalf("expected only 'h'-starting entries, got %+v", result)
		}
	}

	// No word starts with 'z' at all: both the start/end and start-letter
	// tiers are empty, so filterCandidates must fall through to the whole
	// dictionary.
	result = engine.filterCandidates('z', true, 'z', true)
	if len(result) != 3 {
		t.Fatalf("expected fallback to all 3 entries, got %+v", result)
	}
}

func TestRecognizeFallsBackWhenSnappedEndpointsMatchNoWord(t *testing.T) {
	// "hero" swiped with a jittery release that snaps to a neighboring key
	// gives a start/end letter pair ('h','n') that matches no dictionary
	// word; recognition must still fall back to the start-letter tier and
	// find "hero" rather than returning nothing.
	entries := []dictgen.Entry{
		{Word: "hero", Frequency: 20000},
		{Word: "help", Frequency: 30000},
		{Word: "the", Frequency: 1000000},
	}
	data, err := dictgen.Encode(entries, dictgen.Options{LanguageTag: "en-US", Sort: true})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	layout := gesturetest.QwertyLayout()
	engine := NewEngine()
	if !engine.InitWithData(layout, data) {
		t.Fatalf("InitWithData failed: %+v", engine.GetLastError())
	}

	raw := gesturetest.PathForWord(layout, "hero", 4)
	// Nudge the final point off of 'o' toward 'n', simulating a noisy
	// release that snaps to the wrong key, so the end-key char becomes 'n'
	// and EntriesWithStartEnd('h', 'n') matches nothing.
	last := len(raw.Points) - 1
	nKey := layout.Keys[layout.FindKeyByCodePoint('n')]
	raw.Points[last].X = nKey.CenterX
	raw.Points[last].Y = nKey.CenterY

	candidates := engine.Recognize(raw, DefaultMaxCandidates)
	found := false
	for _, c := range candidates {
		if c.Word == "hero" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'hero' to survive fallback filtering, got %+v", candidates)
	}
}

func TestRecognizeScoresEveryFilteredCandidateWithoutTruncation(t *testing.T) {
	// Build more than MaxMaxCandidates entries starting with 'h' and ending
	// with 'o', so they all share the start/end tier of a "hello" trace, of a
	// length close to "hello", with the true word placed last (dictionary
	// order is alphabetical after Sort, so pad words sort before it) and
	// given a much higher frequency than the padding so it must survive to
	// be scored rather than being cut off by an unspecified pre-scoring cap.
	entries := []dictgen.Entry{{Word: "hello", Frequency: 500000}}
	// All pad words start with "ha", so they sort strictly before "hello"
	// and push it past position 20 in dictionary order.
	padWords := []string{
		"habo", "haco", "hado", "hafo", "hago",
		"hajo", "hako", "halo", "hamo", "hano",
		"hapo", "haro", "haso", "hato", "havo",
		"hawo", "haxo", "hayo", "hazo", "hallo",
		"hanno", "happo", "hasso",
	}
	for i, w := range padWords {
		entries = append(entries, dictgen.Entry{Word: w, Frequency: uint32(1000 + i)})
	}
	if len(entries) <= MaxMaxCandidates {
		t.Fatalf("test setup needs more than %d candidates, got %d", MaxMaxCandidates, len(entries))
	}

	data, err := dictgen.Encode(entries, dictgen.Options{LanguageTag: "en-US", Sort: true})
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	layout := gesturetest.QwertyLayout()
	engine := NewEngine()
	if !engine.InitWithData(layout, data) {
		t.Fatalf("InitWithData failed: %+v", engine.GetLastError())
	}

	raw := gesturetest.PathForWord(layout, "hello", 4)
	candidates := engine.Recognize(raw, MaxMaxCandidates)
	found := false
	for _, c := range candidates {
		if c.Word == "hello" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 'hello' to be scored and returned despite more than %d filtered candidates, got %+v", MaxMaxCandidates, candidates)
	}
}

func TestHeaderAndDictionaryEntriesReflectLoadedDictionary(t *testing.T) {
	engine, _ := newInitializedEngine(t)
	if engine.Header().LanguageTag != "en-US" {
		t.Fatalf("expected language tag en-US, got %q", engine.Header().LanguageTag)
	}
	if len(engine.DictionaryEntries()) != 9 {
		t.Fatalf("expected 9 dictionary entries, got %d", len(engine.DictionaryEntries()))
	}
}
