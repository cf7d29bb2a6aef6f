// SPDX-License-Identifier: EPL-2.0

// Package granuloop turns short recordings into seamless loops and
// textures.
//
// The heavy lifting lives in the subpackages:
//   - audio: sources, decoders registry, mono mixing and resampling
//   - formats/wav, formats/aiff, formats/mp3, formats/vorbis: decoders
//     (and the WAV encoder)
//   - granular: the granular resynthesis engine
//   - analysis: metadata, quality score and environment classification
//
// This package wires them to files:
//
//	eng, err := granular.New(granular.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//
//	out := granuloop.OutputPath("output", "rain.mp3", granuloop.KindGranular)
//	_, err = granuloop.LoopFile(ctx, eng, "rain.mp3", out,
//	    granular.DefaultLoopRequest(), granuloop.FileOptions{})
//
// Inputs are decoded by extension through DefaultRegistry and mixed down
// to mono at their native rate. Outputs are mono PCM WAV.
package granuloop
