// SPDX-License-Identifier: EPL-2.0

package granular

import "github.com/ik5/granuloop/audio"

// Accumulator is a fixed-length overlap-add buffer. Grains are summed
// without normalization; anything landing outside the buffer is dropped.
type Accumulator struct {
	buf []float64
}

// NewAccumulator returns a zeroed accumulator of n samples.
func NewAccumulator(n int) *Accumulator {
	return &Accumulator{buf: make([]float64, n)}
}

func (a *Accumulator) Len() int { return len(a.buf) }

// Add sums grain into the buffer starting at offset, clipping at both ends.
func (a *Accumulator) Add(grain []float64, offset int) {
	if offset < 0 {
		if -offset >= len(grain) {
			return
		}
		grain = grain[-offset:]
		offset = 0
	}
	if offset >= len(a.buf) {
		return
	}

	dst := a.buf[offset:]
	if len(grain) > len(dst) {
		grain = grain[:len(dst)]
	}

	for i, v := range grain {
		dst[i] += v
	}
}

// Samples exposes the accumulated samples for in-place post-processing.
func (a *Accumulator) Samples() []float64 { return a.buf }

// Buffer converts the accumulated samples into a new audio.Buffer.
func (a *Accumulator) Buffer(sampleRate int) audio.Buffer {
	out := make([]float32, len(a.buf))
	for i, v := range a.buf {
		out[i] = float32(v)
	}

	return audio.Buffer{Samples: out, SampleRate: sampleRate}
}
