// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"time"
)

// Buffer is a complete mono clip held in memory together with its sample
// rate. Transformations return new buffers instead of mutating their input.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// NewBuffer copies samples into a new Buffer.
func NewBuffer(samples []float32, sampleRate int) Buffer {
	return Buffer{
		Samples:    append([]float32(nil), samples...),
		SampleRate: sampleRate,
	}
}

// Len returns the number of samples.
func (b Buffer) Len() int { return len(b.Samples) }

// Duration returns the playing time of the buffer. A buffer without a valid
// sample rate has no duration.
func (b Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// Seconds returns the playing time in seconds.
func (b Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}

	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// RMS returns sqrt(mean(x^2)), or 0 for an empty buffer.
func (b Buffer) RMS() float64 {
	return RMS(b.Samples)
}

// Clone returns a deep copy.
func (b Buffer) Clone() Buffer {
	return NewBuffer(b.Samples, b.SampleRate)
}

// RMS returns the root-mean-square of samples, accumulated in float64.
func RMS[T ~float32 | ~float64](samples []T) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sum float64
	for _, s := range samples {
		v := float64(s)
		sum += v * v
	}

	return math.Sqrt(sum / float64(len(samples)))
}

// BufferSource replays a Buffer as a mono Source.
type BufferSource struct {
	buf Buffer
	pos int
}

// NewBufferSource exposes b as a Source. The buffer is read, never written.
func NewBufferSource(b Buffer) *BufferSource {
	return &BufferSource{buf: b}
}

func (s *BufferSource) SampleRate() int { return s.buf.SampleRate }
func (s *BufferSource) Channels() int   { return 1 }
func (s *BufferSource) BufSize() int    { return 4096 }
func (s *BufferSource) Close() error    { return nil }
func (s *BufferSource) Len() int        { return len(s.buf.Samples) }

func (s *BufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.buf.Samples) {
		return 0, io.EOF
	}

	n := copy(dst, s.buf.Samples[s.pos:])
	s.pos += n

	if s.pos >= len(s.buf.Samples) {
		return n, io.EOF
	}

	return n, nil
}
