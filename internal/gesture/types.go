// Package gesture implements the swipe-typing gesture recognition core:
// path normalization, candidate filtering, ideal-path generation with
// caching, DTW scoring, and rank fusion with dictionary frequency.
package gesture

import "fmt"

// Path processing constants. All normalized paths have exactly
// ResampleCount points.
const (
	ResampleCount      = 64
	MinPointDistanceDP = 2.0
	MinGesturePoints   = 2
	MaxGesturePoints   = 10000
)

// Scoring constants.
const (
	DTWBandwidthRatio      = 0.10
	FrequencyWeight        = 0.30
	DefaultMaxCandidates   = 8
	MaxMaxCandidates       = 20
	LengthFilterTolerance  = 3.0
	MaxDTWFloor            = 3.0
	maxCandidatesEvaluated = MaxMaxCandidates
)

// Dictionary format constants.
const (
	DictMagic      uint32 = 0x474C4944 // "GLID"
	DictVersion    uint16 = 1
	DictHeaderSize        = 32
	MaxWordLength         = 64
)

// Candidate source flags (bitmask).
const (
	SourceMainDict   uint32 = 0x01
	SourceUserDict   uint32 = 0x02
	SourceCompletion uint32 = 0x04
)

// Dictionary entry flags (bitmask).
const (
	FlagProperNoun uint8 = 0x01
	FlagProfanity  uint8 = 0x02
)

// ErrorCode enumerates the distinct, exhaustive error kinds the core reports.
type ErrorCode int

const (
	ErrNone ErrorCode = iota
	ErrDictNotFound
	ErrDictCorrupt
	ErrDictVersionMismatch
	ErrLayoutInvalid
	ErrPathTooShort
	ErrEngineNotInitialized
	ErrOutOfMemory
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "none"
	case ErrDictNotFound:
		return "dict_not_found"
	case ErrDictCorrupt:
		return "dict_corrupt"
	case ErrDictVersionMismatch:
		return "dict_version_mismatch"
	case ErrLayoutInvalid:
		return "layout_invalid"
	case ErrPathTooShort:
		return "path_too_short"
	case ErrEngineNotInitialized:
		return "engine_not_initialized"
	case ErrOutOfMemory:
		return "out_of_memory"
	default:
		return "unknown"
	}
}

// ErrorInfo carries an error code with a human-readable message, delivered
// synchronously via ErrorCallback and returned by Engine.GetLastError.
type ErrorInfo struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface so ErrorInfo can be returned or
// wrapped with errors.As/errors.Is by Go callers outside the FFI boundary.
func (e ErrorInfo) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCallback receives synchronous error notifications from an Engine.
type ErrorCallback func(ErrorInfo)

// RawPoint is a single raw touch point in density-independent keyboard-local
// coordinates, with t as monotonic milliseconds from gesture start.
type RawPoint struct {
	X, Y float64
	T    int64
}

// NormalizedPoint has x, y, t all in [0,1].
type NormalizedPoint struct {
	X, Y, T float64
}

// RawPath is an ordered sequence of raw points.
type RawPath struct {
	Points []RawPoint
}

// IsEmpty reports whether the path has fewer than MinGesturePoints points.
func (p RawPath) IsEmpty() bool {
	return len(p.Points) < MinGesturePoints
}

// NormalizedPath is the fixed-size, bounding-box-normalized path fed to the
// scorer: exactly ResampleCount points plus per-path metadata.
type NormalizedPath struct {
	Points         []NormalizedPoint
	AspectRatio    float64
	TotalArcLength float64
	StartKeyIndex  int32
	EndKeyIndex    int32
}

// IsValid reports whether the path has exactly ResampleCount points.
func (p NormalizedPath) IsValid() bool {
	return len(p.Points) == ResampleCount
}

// KeyDescriptor describes a single key on the keyboard.
type KeyDescriptor struct {
	Label              string
	CodePoint          int32
	CenterX, CenterY   float64
	Width, Height      float64
}

// IsCharacterKey reports whether this key participates in recognition.
func (k KeyDescriptor) IsCharacterKey() bool {
	return k.CodePoint >= 0
}

// KeyboardLayout is a descriptor of key centers and dimensions.
type KeyboardLayout struct {
	LanguageTag  string
	Keys         []KeyDescriptor
	LayoutWidth  float64
	LayoutHeight float64
}

// DictionaryEntry is one word in the loaded dictionary.
type DictionaryEntry struct {
	Word      string
	Frequency uint32
	Flags     uint8
}

// DictionaryHeader mirrors the fixed 32-byte .glide file header.
type DictionaryHeader struct {
	Magic       uint32
	Version     uint16
	Flags       uint16
	EntryCount  uint32
	LanguageTag string
}

// Candidate is a ranked recognition result.
type Candidate struct {
	Word            string
	Confidence      float64
	SourceFlags     uint32
	EntryFlags      uint8
	DTWScore        float64
	FrequencyScore  float64
}

// ScoringConfig carries the tunable parameters of the scoring algorithm. All
// fields default to the package constants; override via Engine.Configure.
type ScoringConfig struct {
	ResampleCount          int
	MinPointDistance       float64
	DTWBandwidthRatio      float64
	FrequencyWeight        float64
	MaxCandidatesEvaluated int
	LengthFilterTolerance  float64
	MaxDTWFloor            float64
}

// DefaultScoringConfig returns the spec-mandated default configuration.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ResampleCount:          ResampleCount,
		MinPointDistance:       MinPointDistanceDP,
		DTWBandwidthRatio:      DTWBandwidthRatio,
		FrequencyWeight:        FrequencyWeight,
		MaxCandidatesEvaluated: maxCandidatesEvaluated,
		LengthFilterTolerance:  LengthFilterTolerance,
		MaxDTWFloor:            MaxDTWFloor,
	}
}
