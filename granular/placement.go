// SPDX-License-Identifier: EPL-2.0

package granular

import "math/rand/v2"

// Placement decides where grain i is read from and where it lands.
//
// Randomized placements draw from their generator on every call, so
// callers must ask for grains in index order and, for each grain, ask for
// the source offset before the output offset.
type Placement interface {
	SourceOffset(i int) int
	OutputOffset(i int) int
}

// Sequential tiles the source deterministically: grain i reads from
// (i*grain/2) mod max(1, source-grain) and is written at i*hop.
type Sequential struct {
	Grain     int
	Hop       int
	SourceLen int
}

func (p Sequential) SourceOffset(i int) int {
	return (i * p.Grain / 2) % max(1, p.SourceLen-p.Grain)
}

func (p Sequential) OutputOffset(i int) int {
	return i * p.Hop
}

// Randomized reads from a uniformly drawn source offset in
// [0, max(0, source-grain)] but keeps the output positions sequential.
type Randomized struct {
	Grain     int
	Hop       int
	SourceLen int
	Rand      *rand.Rand
}

func (p Randomized) SourceOffset(int) int {
	return p.Rand.IntN(max(0, p.SourceLen-p.Grain) + 1)
}

func (p Randomized) OutputOffset(i int) int {
	return i * p.Hop
}

// Pitch variation bounds of texture grains.
const (
	MinPitchFactor = 0.8
	MaxPitchFactor = 1.2

	// pitch factors closer to 1 than this are not applied
	pitchTolerance = 0.01
)

// TexturePlacement scatters grains randomly in both source and output and
// draws a pitch factor per grain. Per grain the draw order is source
// offset, pitch factor, output offset.
type TexturePlacement struct {
	Grain     int
	SourceLen int
	OutputLen int
	Rand      *rand.Rand
}

func (p TexturePlacement) SourceOffset(int) int {
	return p.Rand.IntN(max(0, p.SourceLen-p.Grain) + 1)
}

// PitchFactor draws uniformly from [MinPitchFactor, MaxPitchFactor).
func (p TexturePlacement) PitchFactor(int) float64 {
	return MinPitchFactor + (MaxPitchFactor-MinPitchFactor)*p.Rand.Float64()
}

// OutputOffset draws from [0, max(0, output-grain)], where grain is the
// length actually cut from a possibly shorter source.
func (p TexturePlacement) OutputOffset(int) int {
	effective := min(p.Grain, p.SourceLen)
	return p.Rand.IntN(max(0, p.OutputLen-effective) + 1)
}

// newPlacement selects the loop placement once per call.
func newPlacement(cfg Config, grain, hop, sourceLen int, rng *rand.Rand) Placement {
	if cfg.Randomize() {
		return Randomized{Grain: grain, Hop: hop, SourceLen: sourceLen, Rand: rng}
	}

	return Sequential{Grain: grain, Hop: hop, SourceLen: sourceLen}
}
