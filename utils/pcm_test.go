// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"testing"
)

func TestFloatToPCM(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       float32
		bitDepth int
		want     int
	}{
		{"silence 16", 0, 16, 0},
		{"full scale 16", 1, 16, 32767},
		{"negative full scale 16", -1, 16, -32767},
		{"clamp high 16", 2.5, 16, 32767},
		{"clamp low 16", -3, 16, -32767},
		{"half 8", 0.5, 8, 63},
		{"full scale 24", 1, 24, 8388607},
		{"full scale 32", 1, 32, 2147483647},
		{"unknown depth uses 16", 1, 12, 32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := FloatToPCM(tt.in, tt.bitDepth); got != tt.want {
				t.Errorf("FloatToPCM(%v, %d) = %d, want %d", tt.in, tt.bitDepth, got, tt.want)
			}
		})
	}
}

func TestPCMToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in       int
		bitDepth int
		want     float32
	}{
		{0, 16, 0},
		{16384, 16, 0.5},
		{-32768, 16, -1},
		{-128, 8, -1},
		{4194304, 24, 0.5},
	}

	for _, tt := range tests {
		got := PCMToFloat(tt.in, tt.bitDepth)
		if math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("PCMToFloat(%d, %d) = %v, want %v", tt.in, tt.bitDepth, got, tt.want)
		}
	}
}

func TestPCMRoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{8, 16, 24, 32} {
		for _, x := range []float32{-0.75, -0.25, 0, 0.25, 0.75} {
			back := PCMToFloat(FloatToPCM(x, depth), depth)
			tolerance := 2.0 / pcmScale(depth)
			if math.Abs(float64(back-x)) > tolerance {
				t.Errorf("depth %d: %v -> %v, drift above %v", depth, x, back, tolerance)
			}
		}
	}
}

func BenchmarkFloatToPCM(b *testing.B) {
	b.ReportAllocs()

	var sink int
	for b.Loop() {
		sink = FloatToPCM(0.3, 16)
	}

	_ = sink
}
