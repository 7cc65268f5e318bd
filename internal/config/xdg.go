// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "glidetype", "config.toml")
}

// DefaultDictionaryPath builds the default .glide dictionary path for a language.
func DefaultDictionaryPath(lang string) string {
	return filepath.Join(XDGConfigHome(), "glidetype", "dictionaries", lang+".glide")
}

// DefaultDictionaryDir returns the default directory for .glide dictionaries.
func DefaultDictionaryDir() string {
	return filepath.Join(XDGConfigHome(), "glidetype", "dictionaries")
}

// DefaultBenchDBPath returns the default path for the benchmark SQLite database.
func DefaultBenchDBPath() string {
	return filepath.Join(XDGDataHome(), "glidetype", "bench.db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq wheels.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), "glidetype", "wordfreq")
}
