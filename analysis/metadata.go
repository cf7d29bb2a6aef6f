// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"math"
	"time"

	"github.com/ik5/granuloop/audio"
)

// silenceFloor keeps the decibel value finite for silent input.
const silenceFloor = 1e-10

// Metadata is the basic description of a clip at its native rate.
type Metadata struct {
	Duration   time.Duration
	SampleRate int
	Samples    int
	RMS        float64
	DB         float64
}

// Describe reports duration, level and size of buf.
func Describe(buf audio.Buffer) Metadata {
	rms := buf.RMS()

	return Metadata{
		Duration:   buf.Duration(),
		SampleRate: buf.SampleRate,
		Samples:    buf.Len(),
		RMS:        rms,
		DB:         Decibels(rms),
	}
}

// Decibels converts an RMS level to dBFS, flooring at -200 dB.
func Decibels(rms float64) float64 {
	return 20 * math.Log10(max(rms, silenceFloor))
}
