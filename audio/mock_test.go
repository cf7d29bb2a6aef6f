// SPDX-License-Identifier: EPL-2.0

package audio

import "github.com/ik5/granuloop/internal/audiotest"

type mockSource = audiotest.MockSource

var (
	newMockSource     = audiotest.NewMockSource
	newSilentSource   = audiotest.NewSilentSource
	newSineSource     = audiotest.NewSineSource
	newConstantSource = audiotest.NewConstantSource
)
