// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"math"
	"math/cmplx"
	"slices"
	"testing"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"

	"github.com/ik5/granuloop/internal/audiotest"
)

func sine64(n, sampleRate int, freq float64) []float64 {
	out := make([]float64, n)
	for i, s := range audiotest.Sine(n, sampleRate, freq, 0.5) {
		out[i] = float64(s)
	}

	return out
}

// peakHz finds the strongest frequency of a Hann-windowed span.
func peakHz(x []float64, sampleRate int) float64 {
	w := window.Hann(len(x))
	in := make([]float64, len(x))
	for i := range x {
		in[i] = x[i] * w[i]
	}

	spectrum := fft.FFTReal(in)
	best, bestMag := 0, 0.0
	for k := 1; k < len(spectrum)/2; k++ {
		if m := cmplx.Abs(spectrum[k]); m > bestMag {
			best, bestMag = k, m
		}
	}

	return float64(best) * float64(sampleRate) / float64(len(x))
}

func TestShiftFrameSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{63, 0},
		{64, 64},
		{127, 64},
		{128, 128},
		{800, 512},
		{1024, 1024},
		{100000, 1024},
	}

	for _, tt := range tests {
		if got := shiftFrameSize(tt.n); got != tt.want {
			t.Errorf("shiftFrameSize(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestSpectralShifter_PreservesLength(t *testing.T) {
	t.Parallel()

	var s SpectralShifter
	for _, n := range []int{0, 10, 63, 64, 100, 800, 5000} {
		grain := sine64(n, 16000, 440)
		out := s.Shift(grain, 1.17)

		if len(out) != n {
			t.Errorf("Shift() len = %d, want %d", len(out), n)
		}
		for i, v := range out {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("Shift() [%d] = %v", i, v)
			}
		}
	}
}

func TestSpectralShifter_Passthrough(t *testing.T) {
	t.Parallel()

	var s SpectralShifter

	short := sine64(40, 16000, 440)
	if got := s.Shift(short, 1.2); !slices.Equal(got, short) {
		t.Error("short grain was altered")
	}

	grain := sine64(800, 16000, 440)
	got := s.Shift(grain, 1)
	if !slices.Equal(got, grain) {
		t.Error("factor 1 altered the grain")
	}

	got[0] = 42
	if grain[0] == 42 {
		t.Error("Shift() returned the input slice")
	}
}

func TestSpectralShifter_Deterministic(t *testing.T) {
	t.Parallel()

	var s SpectralShifter
	grain := sine64(800, 16000, 330)

	if !slices.Equal(s.Shift(grain, 0.85), s.Shift(grain, 0.85)) {
		t.Error("Shift() is not deterministic")
	}
}

func TestSpectralShifter_Silence(t *testing.T) {
	t.Parallel()

	var s SpectralShifter
	for i, v := range s.Shift(make([]float64, 800), 1.1) {
		if v != 0 {
			t.Fatalf("Shift(silence)[%d] = %v, want 0", i, v)
		}
	}
}

func TestSpectralShifter_BoundedPeak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		n      int
		rate   int
		factor float64
	}{
		{"800 down", 800, 16000, 0.8},
		{"800 up", 800, 16000, 1.2},
		{"2205 down", 2205, 44100, 0.8},
		{"2205 up", 2205, 44100, 1.2},
		{"400 at 8k", 400, 8000, 0.9},
	}

	var s SpectralShifter
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			grain := sine64(tt.n, tt.rate, 440)
			limit := 1.5 * peakAbs(grain)

			for i, v := range s.Shift(grain, tt.factor) {
				if math.Abs(v) > limit {
					t.Fatalf("Shift()[%d] = %.3f, want |v| <= %.3f", i, v, limit)
				}
			}
		})
	}
}

func peakAbs(x []float64) float64 {
	var peak float64
	for _, v := range x {
		peak = max(peak, math.Abs(v))
	}

	return peak
}

func TestSpectralShifter_MovesPitch(t *testing.T) {
	t.Parallel()

	const rate = 16000

	var s SpectralShifter
	grain := sine64(4096, rate, 500)

	for _, factor := range []float64{0.8, 1.2} {
		out := s.Shift(grain, factor)

		// skip the edges where the overlap-add has not settled
		mid := out[1024:3072]
		got := peakHz(mid, rate) / peakHz(grain[1024:3072], rate)

		if math.Abs(got-factor) > 0.05 {
			t.Errorf("factor %v: frequency ratio = %.3f", factor, got)
		}
	}
}

func BenchmarkSpectralShifter_Shift(b *testing.B) {
	var s SpectralShifter
	grain := sine64(2205, 44100, 440)

	b.ReportAllocs()

	for b.Loop() {
		_ = s.Shift(grain, 1.1)
	}
}
