// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"sync"

	"github.com/mjibson/go-dsp/window"
)

// Extractor cuts grains out of a source and shapes them with a symmetric
// Hann window, w[i] = 0.5 - 0.5*cos(2*pi*i/(N-1)). Windows are cached per
// length; an Extractor is safe for concurrent use.
type Extractor struct {
	mu      sync.RWMutex
	windows map[int][]float64
}

func NewExtractor() *Extractor {
	return &Extractor{windows: make(map[int][]float64)}
}

// Window returns the shared n-point Hann window. Callers must not modify it.
func (x *Extractor) Window(n int) []float64 {
	x.mu.RLock()
	w, ok := x.windows[n]
	x.mu.RUnlock()
	if ok {
		return w
	}

	w = window.Hann(n)

	x.mu.Lock()
	x.windows[n] = w
	x.mu.Unlock()

	return w
}

// Extract returns min(length, len(src)-offset) windowed samples starting at
// offset. An offset at or past the end yields an empty grain.
func (x *Extractor) Extract(src []float32, offset, length int) []float64 {
	g := ExtractRaw(src, offset, length)
	x.Apply(g)

	return g
}

// Apply multiplies grain in place by a Hann window of the same length.
func (x *Extractor) Apply(grain []float64) {
	if len(grain) == 0 {
		return
	}

	for i, w := range x.Window(len(grain)) {
		grain[i] *= w
	}
}

// ExtractRaw copies the same span as Extract without windowing.
func ExtractRaw(src []float32, offset, length int) []float64 {
	if offset < 0 || offset >= len(src) || length <= 0 {
		return nil
	}

	end := min(offset+length, len(src))
	g := make([]float64, end-offset)
	for i, s := range src[offset:end] {
		g[i] = float64(s)
	}

	return g
}
