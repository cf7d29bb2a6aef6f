// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

const (
	frameSize = 2048
	frameHop  = 512

	// rolloffPercent is the share of spectral magnitude below the rolloff.
	rolloffPercent = 0.85
)

// Features are frame-averaged spectral and temporal descriptors.
type Features struct {
	// SpectralCentroid is the magnitude-weighted mean frequency in Hz.
	SpectralCentroid float64
	// SpectralRolloff is the frequency in Hz below which 85% of the
	// magnitude lies.
	SpectralRolloff float64
	// ZeroCrossingRate is sign changes per sample.
	ZeroCrossingRate float64
}

// Extract computes Features over 2048-sample frames with a 512-sample hop.
// Clips shorter than one frame are analysed as a single zero-padded frame.
func Extract(samples []float32, sampleRate int) Features {
	if len(samples) == 0 || sampleRate <= 0 {
		return Features{}
	}

	frames := 1
	if len(samples) > frameSize {
		frames += (len(samples) - frameSize) / frameHop
	}

	win := window.Hann(frameSize)
	in := make([]float64, frameSize)
	mag := make([]float64, frameSize/2+1)
	binHz := float64(sampleRate) / frameSize

	var f Features
	for i := range frames {
		start := i * frameHop
		end := min(start+frameSize, len(samples))
		frame := samples[start:end]

		clear(in)
		for j, s := range frame {
			in[j] = float64(s) * win[j]
		}

		for k, c := range fft.FFTReal(in)[:len(mag)] {
			mag[k] = cmplx.Abs(c)
		}

		f.SpectralCentroid += centroid(mag, binHz)
		f.SpectralRolloff += rolloff(mag, binHz)
		f.ZeroCrossingRate += zeroCrossingRate(frame)
	}

	n := float64(frames)
	f.SpectralCentroid /= n
	f.SpectralRolloff /= n
	f.ZeroCrossingRate /= n

	return f
}

func centroid(mag []float64, binHz float64) float64 {
	var weighted, total float64
	for k, m := range mag {
		weighted += float64(k) * binHz * m
		total += m
	}

	if total == 0 {
		return 0
	}

	return weighted / total
}

func rolloff(mag []float64, binHz float64) float64 {
	var total float64
	for _, m := range mag {
		total += m
	}

	if total == 0 {
		return 0
	}

	threshold := rolloffPercent * total
	var sum float64
	for k, m := range mag {
		sum += m
		if sum >= threshold {
			return float64(k) * binHz
		}
	}

	return float64(len(mag)-1) * binHz
}

// zeroCrossingRate counts sign-bit changes between neighbours, divided by
// the frame length.
func zeroCrossingRate(frame []float32) float64 {
	if len(frame) < 2 {
		return 0
	}

	crossings := 0
	for i := 1; i < len(frame); i++ {
		if math.Signbit(float64(frame[i])) != math.Signbit(float64(frame[i-1])) {
			crossings++
		}
	}

	return float64(crossings) / float64(len(frame))
}
