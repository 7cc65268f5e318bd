// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dettmer/glidetype/internal/gesture"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Scoring    ScoringConfig    `toml:"scoring"`
	Dictionary DictionaryConfig `toml:"dictionary"`
}

// ScoringConfig maps the [scoring] table onto gesture.ScoringConfig,
// field-for-field, as pointers so an absent key leaves the engine default
// untouched.
type ScoringConfig struct {
	ResampleCount          *int     `toml:"resample-count"`
	MinPointDistance       *float64 `toml:"min-point-distance"`
	DTWBandwidthRatio      *float64 `toml:"dtw-bandwidth-ratio"`
	FrequencyWeight        *float64 `toml:"frequency-weight"`
	MaxCandidatesEvaluated *int     `toml:"max-candidates-evaluated"`
	LengthFilterTolerance  *float64 `toml:"length-filter-tolerance"`
	MaxDTWFloor            *float64 `toml:"max-dtw-floor"`
}

// DictionaryConfig maps the [dictionary] table.
type DictionaryConfig struct {
	Lang *string `toml:"lang"`
	Path *string `toml:"path"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ApplyScoringConfig overlays only the fields present in file onto base,
// leaving base's value (normally gesture.DefaultScoringConfig()) untouched
// for every absent key.
func ApplyScoringConfig(base gesture.ScoringConfig, file FileConfig) gesture.ScoringConfig {
	s := file.Scoring
	if s.ResampleCount != nil {
		base.ResampleCount = *s.ResampleCount
	}
	if s.MinPointDistance != nil {
		base.MinPointDistance = *s.MinPointDistance
	}
	if s.DTWBandwidthRatio != nil {
		base.DTWBandwidthRatio = *s.DTWBandwidthRatio
	}
	if s.FrequencyWeight != nil {
		base.FrequencyWeight = *s.FrequencyWeight
	}
	if s.MaxCandidatesEvaluated != nil {
		base.MaxCandidatesEvaluated = *s.MaxCandidatesEvaluated
	}
	if s.LengthFilterTolerance != nil {
		base.LengthFilterTolerance = *s.LengthFilterTolerance
	}
	if s.MaxDTWFloor != nil {
		base.MaxDTWFloor = *s.MaxDTWFloor
	}
	return base
}
