// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"math"

	"github.com/ik5/granuloop/utils"
)

// CrossfadeSamples converts a crossfade duration to whole samples.
func CrossfadeSamples(seconds float64, sampleRate int) int {
	return int(math.Round(seconds * float64(sampleRate)))
}

// Crossfade blends the first n samples of a loop into its last n: the tail
// is faded out linearly and the head, faded in, is added on top. It only
// runs when 0 < n < len(samples)/2 and reports whether it did.
func Crossfade(samples []float64, n int) bool {
	if n <= 0 || n >= len(samples)/2 {
		return false
	}

	tail := samples[len(samples)-n:]
	head := samples[:n]

	for i := range tail {
		in := ramp(0, 1, i, n)
		out := ramp(1, 0, i, n)
		tail[i] = tail[i]*out + head[i]*in
	}

	return true
}

// ramp is point i of n evenly spaced values from a to b inclusive.
func ramp(a, b float64, i, n int) float64 {
	if n == 1 {
		return a
	}

	return utils.LinearInterpolate(a, b, float64(i)/float64(n-1))
}
