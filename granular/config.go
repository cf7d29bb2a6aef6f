// SPDX-License-Identifier: EPL-2.0

package granular

import "math"

// Parameter limits.
const (
	MinGrainSizeMs = 20
	MaxGrainSizeMs = 500

	// MaxOverlap is exclusive.
	MaxOverlap = 0.9

	// TextureGrainMs is the fixed grain length of the texture path. It does
	// not follow the configured grain size.
	TextureGrainMs = 50
)

// Defaults used by DefaultConfig and the request helpers.
const (
	DefaultGrainSizeMs     = 100
	DefaultOverlap         = 0.5
	DefaultRandomize       = true
	DefaultLoopDuration    = 10.0
	DefaultCrossfade       = 0.1
	DefaultTextureDensity  = 0.7
	DefaultMaxOutputLength = 1 << 28
)

// Config holds the grain parameters of an Engine. It can only be built
// through NewConfig or DefaultConfig, so a Config in hand is always valid.
type Config struct {
	grainSizeMs int
	overlap     float64
	randomize   bool
	valid       bool
}

// NewConfig validates and returns a configuration.
//
// grainSizeMs must lie in [20, 500] and overlap in [0, 0.9).
func NewConfig(grainSizeMs int, overlap float64, randomize bool) (Config, error) {
	if grainSizeMs < MinGrainSizeMs || grainSizeMs > MaxGrainSizeMs {
		return Config{}, &ConfigError{
			Field:  "grain_size_ms",
			Value:  grainSizeMs,
			Reason: "must be between 20 and 500",
		}
	}

	if math.IsNaN(overlap) || overlap < 0 || overlap >= MaxOverlap {
		return Config{}, &ConfigError{
			Field:  "overlap",
			Value:  overlap,
			Reason: "must be in [0, 0.9)",
		}
	}

	return Config{
		grainSizeMs: grainSizeMs,
		overlap:     overlap,
		randomize:   randomize,
		valid:       true,
	}, nil
}

// DefaultConfig is 100 ms grains, 50% overlap, randomized source reads.
func DefaultConfig() Config {
	return Config{
		grainSizeMs: DefaultGrainSizeMs,
		overlap:     DefaultOverlap,
		randomize:   DefaultRandomize,
		valid:       true,
	}
}

func (c Config) GrainSizeMs() int { return c.grainSizeMs }
func (c Config) Overlap() float64 { return c.overlap }
func (c Config) Randomize() bool  { return c.randomize }

// GrainSamples converts the grain size to samples at sampleRate, never less
// than one.
func (c Config) GrainSamples(sampleRate int) int {
	return grainSamples(c.grainSizeMs, sampleRate)
}

// HopSamples is the distance between consecutive loop grains.
func (c Config) HopSamples(sampleRate int) int {
	g := c.GrainSamples(sampleRate)
	return max(1, int(math.Round(float64(g)*(1-c.overlap))))
}

func grainSamples(ms, sampleRate int) int {
	return max(1, ms*sampleRate/1000)
}

// LoopRequest parameterises CreateGranularLoop.
type LoopRequest struct {
	DurationSeconds  float64
	CrossfadeSeconds float64
}

// DefaultLoopRequest is a 10 s loop with a 100 ms crossfade.
func DefaultLoopRequest() LoopRequest {
	return LoopRequest{DurationSeconds: DefaultLoopDuration, CrossfadeSeconds: DefaultCrossfade}
}

// TextureRequest parameterises CreateTextureLoop. Density must be in (0, 1].
type TextureRequest struct {
	DurationSeconds float64
	Density         float64
}

// DefaultTextureRequest is a 10 s texture at density 0.7.
func DefaultTextureRequest() TextureRequest {
	return TextureRequest{DurationSeconds: DefaultLoopDuration, Density: DefaultTextureDensity}
}
