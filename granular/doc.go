// SPDX-License-Identifier: EPL-2.0

// Package granular turns a short mono clip into a longer loop by granular
// resynthesis.
//
// Two renderings are offered by an Engine:
//
//   - CreateGranularLoop overlap-adds Hann-windowed grains of the configured
//     size at a fixed hop. Source reads are sequential or, when the Config
//     asks for it, uniformly random. The result is matched to the input's
//     RMS and its ends are crossfaded so it repeats without a click.
//   - CreateTextureLoop scatters 50 ms grains at random output positions,
//     pitch-shifting each by a factor in [0.8, 1.2). The number of grains
//     follows the requested density. The result is loudness matched but not
//     crossfaded.
//
// Grains are rendered in parallel in chunks of 64; placements are drawn in
// grain order beforehand, so a seeded engine is bit-exact regardless of
// the worker count:
//
//	cfg, err := granular.NewConfig(100, 0.5, true)
//	if err != nil {
//	    return err
//	}
//	eng, _ := granular.New(cfg, granular.WithSeed(7))
//	loop, err := eng.CreateGranularLoop(ctx, clip, granular.DefaultLoopRequest())
//
// Errors wrap ErrConfiguration, ErrInvalidInput or ErrResourceExhausted,
// or are the context's error when the call was cancelled.
package granular
