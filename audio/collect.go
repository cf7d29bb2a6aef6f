// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
)

// DefaultBufferSize is the read chunk used when callers pass a non-positive size.
const DefaultBufferSize = 4096

// ReadAll drains src into a mono Buffer at the source's native sample rate.
// Multi-channel sources are averaged down through a MonoMixer; nothing is
// resampled.
//
// An empty stream is not an error: the result simply has no samples.
func ReadAll(src Source, bufferSize int) (Buffer, error) {
	if src.SampleRate() <= 0 {
		return Buffer{}, ErrInvalidRate
	}
	if src.Channels() <= 0 {
		return Buffer{}, ErrInvalidChannels
	}
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	mono := NewMonoMixer(src)

	var samples []float32
	if l, ok := src.(Lengther); ok && l.Len() > 0 {
		samples = make([]float32, 0, l.Len())
	} else {
		samples = make([]float32, 0, src.SampleRate())
	}

	buf := make([]float32, bufferSize)

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if err == io.EOF {
			break
		}

		if err != nil {
			return Buffer{}, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			// A source that reports neither data nor EOF would spin forever.
			break
		}
	}

	return Buffer{Samples: samples, SampleRate: src.SampleRate()}, nil
}
