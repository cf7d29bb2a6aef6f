// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with the pure Go
// github.com/jfreymuth/oggvorbis reader.
//
// The decoder already yields float32 samples, so values pass through
// untouched in their original channel layout:
//
//	f, _ := os.Open("rain.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//
// Reads are rounded down to whole frames. Seekable input reports its
// length through audio.Lengther; anything else reports -1.
package vorbis
