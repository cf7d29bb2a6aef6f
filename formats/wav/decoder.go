// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/granuloop/audio"
	"github.com/ik5/granuloop/utils"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Source streams normalized samples out of a WAV data chunk.
type Source struct {
	dec        *gowav.Decoder
	sampleRate int
	channels   int
	bitDepth   int
	frames     int
	pcm        *goaudio.IntBuffer
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }
func (s *Source) Close() error    { return nil }

// Len reports the number of frames in the data chunk.
func (s *Source) Len() int { return s.frames }

// BitDepth is the sample width stored in the file.
func (s *Source) BitDepth() int { return s.bitDepth }

// ReadSamples fills dst with whole interleaved frames.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.pcm.Data) < want {
		s.pcm.Data = make([]int, want)
	}
	s.pcm.Data = s.pcm.Data[:want]

	n, err := s.dec.PCMBuffer(s.pcm)
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("wav: reading PCM: %w", err)
	}
	if n == 0 {
		return 0, io.EOF
	}

	for i, v := range s.pcm.Data[:n] {
		dst[i] = utils.PCMToFloat(v, s.bitDepth)
	}

	if n < want {
		return n, io.EOF
	}

	return n, nil
}

// Decoder opens RIFF/WAVE files holding 16, 24 or 32-bit integer PCM.
type Decoder struct{}

// Decode parses the WAV headers. Readers that cannot seek are buffered in
// memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("wav: buffering input: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedEncoding, dec.WavAudioFormat)
	}

	bitDepth := int(dec.BitDepth)
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if !dec.WasPCMAccessed() {
		if err := dec.FwdToPCM(); err != nil {
			return nil, fmt.Errorf("wav: locating data chunk: %w", err)
		}
	}

	channels := int(dec.NumChans)
	if channels <= 0 {
		return nil, fmt.Errorf("wav: %w", audio.ErrInvalidChannels)
	}
	frameBytes := channels * bitDepth / 8

	return &Source{
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		bitDepth:   bitDepth,
		frames:     int(dec.PCMLen()) / frameBytes,
		pcm: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: int(dec.SampleRate)},
			SourceBitDepth: bitDepth,
		},
	}, nil
}
