// SPDX-License-Identifier: EPL-2.0

// Package config loads granuloop's runtime settings from the environment.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Config holds the defaults the CLI starts from. Command-line flags
// override every field.
type Config struct {
	// Grain engine
	GrainSizeMs int
	Overlap     float64
	Randomize   bool
	Seed        uint64 // 0 picks a fresh seed per call
	Workers     int

	// Loop and texture requests
	LoopDuration   float64 // seconds
	Crossfade      float64 // seconds
	TextureDensity float64 // (0, 1]

	// Files
	OutputDir     string
	BitDepth      int
	MaxFileSizeMB int

	LogLevel  string
	LogFormat string // text or json
}

// MaxFileSize is the input size limit in bytes.
func (c Config) MaxFileSize() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// Load reads configuration from GRANULOOP_* variables. Unset or malformed
// values fall back to the defaults.
func Load() Config {
	return Config{
		GrainSizeMs: envInt("GRANULOOP_GRAIN_SIZE_MS", 100),
		Overlap:     envFloat("GRANULOOP_OVERLAP", 0.5),
		Randomize:   envBool("GRANULOOP_RANDOMIZE", true),
		Seed:        envUint("GRANULOOP_SEED", 0),
		Workers:     envInt("GRANULOOP_WORKERS", runtime.NumCPU()),

		LoopDuration:   envFloat("GRANULOOP_LOOP_DURATION", 10),
		Crossfade:      envFloat("GRANULOOP_CROSSFADE", 0.1),
		TextureDensity: envFloat("GRANULOOP_TEXTURE_DENSITY", 0.7),

		OutputDir:     envStr("GRANULOOP_OUTPUT_DIR", "output"),
		BitDepth:      envInt("GRANULOOP_BIT_DEPTH", 16),
		MaxFileSizeMB: envInt("GRANULOOP_MAX_FILE_SIZE_MB", 100),

		LogLevel:  envStr("GRANULOOP_LOG_LEVEL", "info"),
		LogFormat: envStr("GRANULOOP_LOG_FORMAT", "text"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			return b
		}
	}
	return fallback
}
