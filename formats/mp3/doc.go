// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1 and MPEG-2 Layer III audio using the pure Go
// github.com/hajimehoshi/go-mp3 decoder.
//
// The decoder always produces interleaved stereo; mono files are
// duplicated into both channels. Samples are 16-bit on the wire and are
// normalized to float32 in [-1, 1]:
//
//	f, _ := os.Open("street.mp3")
//	src, err := mp3.Decoder{}.Decode(f)
//
// When the underlying reader is an io.Seeker the stream length is known up
// front and the source implements audio.Lengther.
package mp3
