// SPDX-License-Identifier: EPL-2.0

package granular

import "github.com/ik5/granuloop/audio"

// MatchLoudness scales samples in place so their RMS equals target and
// returns the applied gain. Silent input is left alone with a gain of 1.
func MatchLoudness(samples []float64, target float64) float64 {
	current := audio.RMS(samples)
	if current == 0 {
		return 1
	}

	gain := target / current
	for i := range samples {
		samples[i] *= gain
	}

	return gain
}
