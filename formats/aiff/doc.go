// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF and AIFF-C files through github.com/go-audio/aiff.
//
// Samples of 8, 16, 24 and 32 bits are normalized to float32 in [-1, 1].
// Any channel count and sample rate is accepted. The decoder needs random
// access, so plain readers are buffered in memory before parsing:
//
//	f, _ := os.Open("take.aif")
//	src, err := aiff.Decoder{}.Decode(f)
//
// ErrNotAiffFile is returned for input that is not an AIFF container and
// ErrUnsupportedBitDepth for other sample widths.
package aiff
