package gesture

import (
	"sort"
)

// Engine orchestrates the recognition pipeline: dictionary, layout, path
// processor, ideal-path generator, and scorer. An engine owns all of its
// subcomponents by value or by exclusive pointer; nothing is shared across
// engine instances. Calls on a single engine must be serialized by the
// caller — the engine performs no internal locking.
type Engine struct {
	dict      *DictionaryStore
	layout    KeyboardLayout
	processor *PathProcessor
	generator *IdealPathGenerator
	scorer    *Scorer
	config    ScoringConfig

	initialized bool
	lastError   ErrorInfo
	onError     ErrorCallback
}

// NewEngine returns an uninitialized engine with default scoring parameters.
func NewEngine() *Engine {
	return &Engine{
		dict:      NewDictionaryStore(),
		processor: NewPathProcessor(),
		generator: NewIdealPathGenerator(),
		scorer:    NewScorer(),
		config:    DefaultScoringConfig(),
	}
}

// SetErrorCallback registers a callback for synchronous error delivery.
// Passing nil disables delivery.
func (e *Engine) SetErrorCallback(cb ErrorCallback) {
	e.onError = cb
}

// IsInitialized reports whether Init/InitWithData has successfully loaded a
// dictionary and a valid layout.
func (e *Engine) IsInitialized() bool {
	return e.initialized
}

// GetLastError returns the most recently recorded error.
func (e *Engine) GetLastError() ErrorInfo {
	return e.lastError
}

// Header returns the header of the currently loaded dictionary.
func (e *Engine) Header() DictionaryHeader {
	return e.dict.Header()
}

// DictionaryEntries returns every entry in the currently loaded dictionary.
func (e *Engine) DictionaryEntries() []DictionaryEntry {
	return e.dict.AllEntries()
}

// Init loads a dictionary from dictPath and adopts layout. Returns false and
// records an error if either the layout or the dictionary is invalid.
func (e *Engine) Init(layout KeyboardLayout, dictPath string) bool {
	if !layout.IsValid() {
		e.raise(ErrLayoutInvalid, "layout has no character keys or non-positive dimensions")
		return false
	}
	if !e.dict.Load(dictPath) {
		e.raise(e.dict.LastError().Code, e.dict.LastError().Message)
		return false
	}
	e.adoptLayout(layout)
	e.initialized = true
	return true
}

// InitWithData loads a dictionary from an in-memory byte buffer and adopts
// layout.
func (e *Engine) InitWithData(layout KeyboardLayout, data []byte) bool {
	if !layout.IsValid() {
		e.raise(ErrLayoutInvalid, "layout has no character keys or non-positive dimensions")
		return false
	}
	if !e.dict.LoadFromMemory(data) {
		e.raise(e.dict.LastError().Code, e.dict.LastError().Message)
		return false
	}
	e.adoptLayout(layout)
	e.initialized = true
	return true
}

// UpdateLayout replaces the active layout, clears the ideal-path cache, and
// keeps the loaded dictionary. Returns false if layout is invalid.
func (e *Engine) UpdateLayout(layout KeyboardLayout) bool {
	if !layout.IsValid() {
		e.raise(ErrLayoutInvalid, "layout has no character keys or non-positive dimensions")
		return false
	}
	e.adoptLayout(layout)
	return true
}

func (e *Engine) adoptLayout(layout KeyboardLayout) {
	e.layout = layout
	e.generator.SetLayout(layout)
}

// Configure updates the scoring parameters. Takes effect on the next call
// to Recognize.
func (e *Engine) Configure(config ScoringConfig) {
	e.config = config
	e.scorer.Configure(config)
	e.processor.SetMinPointDistance(config.MinPointDistance)
	if config.ResampleCount >= 2 {
		e.processor.SetResampleCount(config.ResampleCount)
	}
}

// Shutdown unloads the dictionary and clears caches. Idempotent.
func (e *Engine) Shutdown() {
	e.dict.Unload()
	e.generator.ClearCache()
	e.initialized = false
	e.layout = KeyboardLayout{}
}

func (e *Engine) raise(code ErrorCode, msg string) {
	e.lastError = ErrorInfo{Code: code, Message: msg}
	if e.onError != nil {
		e.onError(e.lastError)
	}
}

func clampMaxCandidates(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxMaxCandidates {
		return MaxMaxCandidates
	}
	return n
}

// Recognize runs the full recognition pipeline on raw and returns up to
// maxCandidates ranked candidates, sorted by descending confidence.
func (e *Engine) Recognize(raw RawPath, maxCandidates int) []Candidate {
	maxCandidates = clampMaxCandidates(maxCandidates)

	if !e.initialized {
		e.raise(ErrEngineNotInitialized, "recognize called before a successful init")
		return nil
	}
	if len(raw.Points) < MinGesturePoints {
		e.raise(ErrPathTooShort, "raw path has fewer than the minimum required points")
		return nil
	}

	gesture := e.processor.Normalize(raw, e.layout)
	if !gesture.IsValid() {
		return nil
	}

	startChar, haveStart := keyIndexToLowerChar(e.layout, gesture.StartKeyIndex)
	endChar, haveEnd := keyIndexToLowerChar(e.layout, gesture.EndKeyIndex)

	entries := e.filterCandidates(startChar, haveStart, endChar, haveEnd)

	estimatedLen := estimateWordLengthByKeyTransitions(raw, e.layout)
	entries = lengthFilter(entries, estimatedLen, e.config.LengthFilterTolerance)

	type scored struct {
		entry DictionaryEntry
		dtw   float64
	}

	scoredEntries := make([]scored, 0, len(entries))
	for _, entry := range entries {
		ideal := e.generator.GetIdealPath(entry.Word)
		if !ideal.IsValid() {
			continue
		}
		dtw := e.scorer.ComputeDTWDistance(gesture, ideal)
		scoredEntries = append(scoredEntries, scored{entry: entry, dtw: dtw})
	}

	if len(scoredEntries) == 0 {
		return nil
	}

	rawMaxDTW := scoredEntries[0].dtw
	minDTW := scoredEntries[0].dtw
	for _, s := range scoredEntries[1:] {
		if s.dtw > rawMaxDTW {
			rawMaxDTW = s.dtw
		}
		if s.dtw < minDTW {
			minDTW = s.dtw
		}
	}

	var maxDTW float64
	if len(scoredEntries) >= 2 {
		maxDTW = rawMaxDTW
		if maxDTW < 0.01 {
			maxDTW = 0.01
		}
	} else {
		maxDTW = rawMaxDTW
		if maxDTW < e.config.MaxDTWFloor {
			maxDTW = e.config.MaxDTWFloor
		}
	}

	alpha := e.config.FrequencyWeight
	if len(scoredEntries) >= 2 {
		rawRange := rawMaxDTW - minDTW
		if rawRange < 0.5 {
			factor := rawRange / 0.5
			if factor < 0.1 {
				factor = 0.1
			}
			alpha = e.config.FrequencyWeight * factor
		}
	}

	maxFreq := e.dict.MaxFrequency()

	candidates := make([]Candidate, len(scoredEntries))
	for i, s := range scoredEntries {
		confidence := e.scorer.ComputeConfidenceWithAlpha(s.dtw, maxDTW, s.entry.Frequency, maxFreq, alpha)

		normFreq := 0.0
		if maxFreq > 0 {
			normFreq = float64(s.entry.Frequency) / float64(maxFreq)
			if normFreq > 1.0 {
				normFreq = 1.0
			}
		}

		candidates[i] = Candidate{
			Word:           s.entry.Word,
			Confidence:     confidence,
			SourceFlags:    SourceMainDict,
			EntryFlags:     s.entry.Flags,
			DTWScore:       s.dtw,
			FrequencyScore: normFreq,
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	return candidates
}

func keyIndexToLowerChar(layout KeyboardLayout, keyIndex int32) (byte, bool) {
	if keyIndex < 0 || int(keyIndex) >= len(layout.Keys) {
		return 0, false
	}
	cp := layout.Keys[keyIndex].CodePoint
	if cp < 'a' || cp > 'z' {
		if cp >= 'A' && cp <= 'Z' {
			cp = cp - 'A' + 'a'
		} else {
			return 0, false
		}
	}
	return byte(cp), true
}

// filterCandidates applies the three filter tiers in order until one yields
// a non-empty result, falling through independent of which of start/end
// were known — a start/end pair that matches no dictionary word still falls
// back to the start-letter tier, and an empty start-letter tier falls back
// to the whole dictionary.
func (e *Engine) filterCandidates(start byte, haveStart bool, end byte, haveEnd bool) []DictionaryEntry {
	if haveStart && haveEnd {
		if entries := e.dict.EntriesWithStartEnd(start, end); len(entries) > 0 {
			return entries
		}
	}
	if haveStart {
		if entries := e.dict.EntriesStartingWith(start); len(entries) > 0 {
			return entries
		}
	}
	return e.dict.AllEntries()
}

// estimateWordLengthByKeyTransitions counts distinct consecutive
// nearest-keys along the raw (un-deduplicated) path: a key transition
// increments the count, repeated keys do not.
func estimateWordLengthByKeyTransitions(raw RawPath, layout KeyboardLayout) int {
	if len(raw.Points) == 0 {
		return 0
	}
	count := 0
	prevKey := int32(-2)
	for _, pt := range raw.Points {
		key := layout.FindNearestKey(pt.X, pt.Y)
		if key != prevKey {
			count++
			prevKey = key
		}
	}
	return count
}

func lengthFilter(entries []DictionaryEntry, estimatedLen int, tolerance float64) []DictionaryEntry {
	if estimatedLen <= 0 {
		return entries
	}
	filtered := make([]DictionaryEntry, 0, len(entries))
	for _, e := range entries {
		diff := float64(len(e.Word) - estimatedLen)
		if diff < 0 {
			diff = -diff
		}
		if diff <= tolerance {
			filtered = append(filtered, e)
		}
	}
	if len(filtered) == 0 {
		return entries
	}
	return filtered
}
