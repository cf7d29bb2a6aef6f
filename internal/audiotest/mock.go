// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds signal generators shared by tests across the
// module. It deliberately avoids importing the audio package so audio's
// own external tests can use it.
package audiotest

import (
	"io"
	"math"
	"math/rand/v2"
)

// MockSource synthesises interleaved PCM from a waveform function.
type MockSource struct {
	sampleRate int
	channels   int
	frames     int // per channel
	pos        int // per channel
	waveform   func(frame int, channel int) float32
}

// NewMockSource returns a source of frames frames per channel, each value
// produced by waveform.
func NewMockSource(sampleRate, channels, frames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		waveform:   waveform,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *MockSource {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewSineSource(sampleRate, channels, frames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(frame int, _ int) float32 {
		return sineAt(frame, sampleRate, frequency)
	})
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, frames, func(int, int) float32 {
		return value
	})
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }
func (m *MockSource) Len() int        { return m.frames }

// Reset rewinds the source to its first frame.
func (m *MockSource) Reset() {
	m.pos = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.pos >= m.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/m.channels, m.frames-m.pos)
	for f := range n {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.pos+f, ch)
		}
	}
	m.pos += n

	if m.pos >= m.frames {
		return n * m.channels, io.EOF
	}

	return n * m.channels, nil
}

// Sine returns n samples of a sine at frequency Hz with the given peak.
func Sine(n, sampleRate int, frequency float64, amplitude float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = amplitude * sineAt(i, sampleRate, frequency)
	}

	return out
}

// Constant returns n copies of value.
func Constant(n int, value float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = value
	}

	return out
}

// Noise returns n uniform samples in [-amplitude, amplitude). The same seed
// always yields the same samples.
func Noise(n int, amplitude float32, seed uint64) []float32 {
	rng := rand.New(rand.NewPCG(seed, seed+1))

	out := make([]float32, n)
	for i := range out {
		out[i] = amplitude * float32(2*rng.Float64()-1)
	}

	return out
}

func sineAt(i, sampleRate int, frequency float64) float32 {
	t := float64(i) / float64(sampleRate)
	return float32(math.Sin(2 * math.Pi * frequency * t))
}
