// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes RIFF/WAVE files on top of
// github.com/go-audio/wav.
//
// Decoder accepts integer PCM at 16, 24 or 32 bits with any channel count
// and sample rate. Floating-point and 8-bit files are rejected with
// ErrUnsupportedEncoding and ErrUnsupportedBitDepth respectively:
//
//	f, _ := os.Open("field.wav")
//	src, err := wav.Decoder{}.Decode(f)
//
// Encoder writes a mono audio.Buffer, clipping anything outside [-1, 1].
// The header is patched on completion so the destination must be an
// io.WriteSeeker, usually an *os.File:
//
//	out, _ := os.Create("loop.wav")
//	err := wav.Encoder{BitDepth: 24}.Encode(out, buf)
package wav
