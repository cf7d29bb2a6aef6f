// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/granuloop/audio"
)

const maxEmptyReads = 64

// oggReader is the slice of oggvorbis.Reader the source needs.
type oggReader interface {
	SampleRate() int
	Channels() int
	// Read returns the number of values decoded, a multiple of Channels.
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frames     int
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// Len reports frames, or -1 when the stream could not be measured.
func (s *source) Len() int { return s.frames }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	// the decoder may consume a page without yielding audio
	for range maxEmptyReads {
		n, err := s.dec.Read(dst[:want])
		if err != nil && err != io.EOF {
			return n, fmt.Errorf("vorbis: decoding: %w", err)
		}
		if n > 0 || err != nil {
			return n, err
		}
	}

	return 0, io.ErrNoProgress
}

// Decoder opens Ogg Vorbis streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("vorbis: %w", err)
	}

	// Length is only known for seekable input
	frames := int(dec.Length())
	if frames <= 0 {
		frames = -1
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frames:     frames,
	}, nil
}
