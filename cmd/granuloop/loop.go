// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/granuloop"
	"github.com/ik5/granuloop/granular"
)

var loopCmd = &cobra.Command{
	Use:   "loop <input>",
	Short: "Render a seamless granular loop",
	Long: `Resynthesise the input into a loop of the requested length.
Windowed grains are overlap-added, the result is matched to the input's
loudness and its ends are crossfaded.

Examples:
  granuloop loop rain.wav
  granuloop loop birds.mp3 -d 30 --grain-size 200 --overlap 0.75
  granuloop loop street.ogg -o street_loop.wav --seed 7`,
	Args: cobra.ExactArgs(1),
	RunE: runLoop,
}

var textureCmd = &cobra.Command{
	Use:   "texture <input>",
	Short: "Render an ambient texture",
	Long: `Scatter short pitch-varied grains of the input across the output.
Density sets how many grains are placed.

Examples:
  granuloop texture rain.wav
  granuloop texture forest.aiff -d 60 --density 0.4`,
	Args: cobra.ExactArgs(1),
	RunE: runTexture,
}

func fileOptions() granuloop.FileOptions {
	return granuloop.FileOptions{
		MaxFileSize: maxFileSize(),
		BitDepth:    bitDepth,
	}
}

func target(input, kind string) string {
	if outputPath != "" {
		return outputPath
	}

	return granuloop.OutputPath(outputDir, input, kind)
}

func runLoop(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	in, out := args[0], target(args[0], granuloop.KindGranular)
	req := granular.LoopRequest{DurationSeconds: duration, CrossfadeSeconds: crossfade}

	began := time.Now()
	loop, err := granuloop.LoopFile(cmd.Context(), eng, in, out, req, fileOptions())
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"input":    in,
		"output":   out,
		"seconds":  loop.Seconds(),
		"rate":     loop.SampleRate,
		"rms":      loop.RMS(),
		"elapsed":  time.Since(began).Round(time.Millisecond),
		"grain_ms": grainSizeMs,
	}).Info("granular loop written")

	fmt.Fprintln(cmd.OutOrStdout(), out)

	return nil
}

func runTexture(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	in, out := args[0], target(args[0], granuloop.KindTexture)
	req := granular.TextureRequest{DurationSeconds: duration, Density: density}

	began := time.Now()
	texture, err := granuloop.TextureFile(cmd.Context(), eng, in, out, req, fileOptions())
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"input":   in,
		"output":  out,
		"seconds": texture.Seconds(),
		"rate":    texture.SampleRate,
		"rms":     texture.RMS(),
		"elapsed": time.Since(began).Round(time.Millisecond),
		"density": density,
	}).Info("texture written")

	fmt.Fprintln(cmd.OutOrStdout(), out)

	return nil
}
