// SPDX-License-Identifier: EPL-2.0

package utils

// pcmScale returns the full-scale magnitude of a signed PCM sample of the
// given bit depth. Unknown depths fall back to 16-bit.
func pcmScale(bitDepth int) float64 {
	switch bitDepth {
	case 8:
		return 128
	case 24:
		return 8388608
	case 32:
		return 2147483648
	default:
		return 32768
	}
}

// FloatToPCM converts a normalized sample to a signed PCM integer of the
// given bit depth. Values outside [-1, 1] are clamped.
func FloatToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	scale := pcmScale(bitDepth)

	// The positive side is one step shorter than the negative one.
	return int(float64(x) * (scale - 1))
}

// PCMToFloat converts a signed PCM integer of the given bit depth to a
// normalized float sample.
func PCMToFloat(v int, bitDepth int) float32 {
	return float32(float64(v) / pcmScale(bitDepth))
}
