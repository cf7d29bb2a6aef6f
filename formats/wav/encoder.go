// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/granuloop/audio"
	"github.com/ik5/granuloop/utils"
)

// DefaultBitDepth is used by a zero Encoder.
const DefaultBitDepth = 16

const encodeChunk = 8192

// Encoder writes mono integer PCM WAV files.
type Encoder struct {
	// BitDepth is 16, 24 or 32. Zero means DefaultBitDepth.
	BitDepth int
}

func (e Encoder) Encode(w io.WriteSeeker, b audio.Buffer) error {
	depth := e.BitDepth
	if depth == 0 {
		depth = DefaultBitDepth
	}

	return Encode(w, b, depth)
}

// Encode writes b as a mono WAV file. Samples outside [-1, 1] are clipped.
func Encode(w io.WriteSeeker, b audio.Buffer, bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	if b.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}

	enc := gowav.NewEncoder(w, b.SampleRate, bitDepth, 1, formatPCM)

	pcm := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: b.SampleRate},
		Data:           make([]int, min(encodeChunk, len(b.Samples))),
		SourceBitDepth: bitDepth,
	}

	if len(b.Samples) == 0 {
		// an empty write still emits the headers
		if err := enc.Write(pcm); err != nil {
			return fmt.Errorf("wav: writing header: %w", err)
		}
	}

	for start := 0; start < len(b.Samples); start += encodeChunk {
		chunk := b.Samples[start:min(start+encodeChunk, len(b.Samples))]

		pcm.Data = pcm.Data[:len(chunk)]
		for i, s := range chunk {
			pcm.Data[i] = utils.FloatToPCM(s, bitDepth)
		}

		if err := enc.Write(pcm); err != nil {
			return fmt.Errorf("wav: writing PCM: %w", err)
		}
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav: finalizing header: %w", err)
	}

	return nil
}
