// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// PitchShifter changes the pitch of a grain by factor without changing its
// length. Implementations must be deterministic and safe for concurrent use.
type PitchShifter interface {
	Shift(grain []float64, factor float64) []float64
}

const (
	minShiftFrame  = 64
	maxShiftFrame  = 1024
	shiftNormFloor = 1e-12
)

// SpectralShifter is a phase vocoder that moves spectral bins: synthesis
// bin k takes the magnitude found at analysis bin k/factor and that bin's
// instantaneous frequency scaled by factor. Analysis and synthesis share
// one hop, so the output keeps the input length with no resampling.
//
// The frame is the largest power of two not above the grain length, capped
// at 1024; grains shorter than 64 samples are returned unchanged.
type SpectralShifter struct{}

func (SpectralShifter) Shift(grain []float64, factor float64) []float64 {
	out := make([]float64, len(grain))

	size := shiftFrameSize(len(grain))
	if size == 0 || factor == 1 || !(factor > 0) || math.IsInf(factor, 0) {
		copy(out, grain)
		return out
	}

	st := newShiftState(size)
	hop := size / 4

	// frames start size-hop samples before the grain so every output
	// sample is covered by size/hop windows
	lead := size - hop
	frames := 1 + (lead+len(grain)-1)/hop
	acc := make([]float64, (frames-1)*hop+size)
	norm := make([]float64, len(acc))

	for f := range frames {
		at := f * hop
		st.frame(grain, at-lead, factor, hop)

		for i, w := range st.win {
			acc[at+i] += st.synth[i] * w
			norm[at+i] += w * w
		}
	}

	for i := range out {
		out[i] = acc[lead+i]
		if norm[lead+i] > shiftNormFloor {
			out[i] /= norm[lead+i]
		}
	}

	return out
}

// shiftFrameSize returns the STFT frame for a grain of n samples, or 0 when
// the grain is too short to analyse.
func shiftFrameSize(n int) int {
	if n < minShiftFrame {
		return 0
	}

	size := minShiftFrame
	for size*2 <= n && size*2 <= maxShiftFrame {
		size *= 2
	}

	return size
}

// shiftState is the per-call vocoder state. Nothing is shared between
// calls, which keeps Shift safe for concurrent grains.
type shiftState struct {
	size  int
	half  int
	win   []float64
	omega []float64

	in      []float64
	synth   []float64
	shifted []complex128

	prevPhase []float64
	sumPhase  []float64
	mag       []float64
	freq      []float64
}

func newShiftState(size int) *shiftState {
	half := size / 2
	bins := half + 1

	// periodic Hann: the first size points of a size+1 symmetric window
	win := window.Hann(size + 1)[:size]

	omega := make([]float64, bins)
	for k := range omega {
		omega[k] = 2 * math.Pi * float64(k) / float64(size)
	}

	return &shiftState{
		size:      size,
		half:      half,
		win:       win,
		omega:     omega,
		in:        make([]float64, size),
		synth:     make([]float64, size),
		shifted:   make([]complex128, size),
		prevPhase: make([]float64, bins),
		sumPhase:  make([]float64, bins),
		mag:       make([]float64, bins),
		freq:      make([]float64, bins),
	}
}

// frame analyses the frame at pos, which may start before the grain, and
// leaves the shifted time-domain frame in s.synth.
func (s *shiftState) frame(grain []float64, pos int, factor float64, hop int) {
	for i := range s.in {
		x := 0.0
		if j := pos + i; j >= 0 && j < len(grain) {
			x = grain[j]
		}
		s.in[i] = x * s.win[i]
	}

	spectrum := fft.FFTReal(s.in)
	hopF := float64(hop)

	for k := 0; k <= s.half; k++ {
		s.mag[k] = cmplx.Abs(spectrum[k])
		phase := cmplx.Phase(spectrum[k])

		delta := wrapPhase(phase - s.prevPhase[k] - s.omega[k]*hopF)
		s.freq[k] = s.omega[k] + delta/hopF
		s.prevPhase[k] = phase
	}

	for k := 0; k <= s.half; k++ {
		src := float64(k) / factor

		var mag, freq float64
		if src < float64(s.half) {
			lo := int(src)
			frac := src - float64(lo)
			hi := min(lo+1, s.half)

			mag = s.mag[lo]*(1-frac) + s.mag[hi]*frac
			freq = (s.freq[lo]*(1-frac) + s.freq[hi]*frac) * factor
		} else {
			freq = s.omega[k]
		}

		s.sumPhase[k] += freq * hopF
		s.shifted[k] = cmplx.Rect(mag, s.sumPhase[k])
	}

	s.shifted[0] = complex(real(s.shifted[0]), 0)
	s.shifted[s.half] = complex(real(s.shifted[s.half]), 0)
	for k := 1; k < s.half; k++ {
		s.shifted[s.size-k] = cmplx.Conj(s.shifted[k])
	}

	for i, v := range fft.IFFT(s.shifted) {
		s.synth[i] = real(v)
	}
}

func wrapPhase(x float64) float64 {
	x = math.Mod(x+math.Pi, 2*math.Pi)
	if x < 0 {
		x += 2 * math.Pi
	}

	return x - math.Pi
}
