// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/granuloop/granular"
	"github.com/ik5/granuloop/internal/config"
)

var version = "0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "granuloop",
	Short: "Turn short recordings into seamless loops",
	Long: `granuloop resynthesises a short recording into a longer loop
with granular synthesis, or scatters it into an ambient texture.

Inputs may be WAV, AIFF, MP3 or Ogg Vorbis; outputs are mono WAV.
Defaults come from GRANULOOP_* environment variables.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

var defaults = config.Load()

var (
	// global flags
	logLevel      string
	logFormat     string
	workers       int
	seed          uint64
	maxFileSizeMB int

	// engine flags
	grainSizeMs int
	overlap     float64
	randomize   bool

	// output flags
	outputPath string
	outputDir  string
	bitDepth   int

	// request flags
	duration  float64
	crossfade float64
	density   float64
)

func init() {
	rootCmd.AddCommand(loopCmd)
	rootCmd.AddCommand(textureCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(formatsCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&logFormat, "log-format", defaults.LogFormat, "Log format (text or json)")
	pf.IntVar(&workers, "workers", defaults.Workers, "Goroutines rendering grains")
	pf.Uint64Var(&seed, "seed", defaults.Seed, "Random seed (0 picks a new one every run)")
	pf.IntVar(&maxFileSizeMB, "max-file-size-mb", defaults.MaxFileSizeMB, "Largest accepted input file in MiB (0 disables the check)")

	for _, cmd := range []*cobra.Command{loopCmd, textureCmd} {
		f := cmd.Flags()
		f.StringVarP(&outputPath, "output", "o", "", "Output WAV file (default: <output-dir>/<input>_<kind>_loop.wav)")
		f.StringVar(&outputDir, "output-dir", defaults.OutputDir, "Directory for generated files")
		f.IntVar(&bitDepth, "bit-depth", defaults.BitDepth, "Output bit depth (16, 24 or 32)")
		f.Float64VarP(&duration, "duration", "d", defaults.LoopDuration, "Output length in seconds")
		f.IntVar(&grainSizeMs, "grain-size", defaults.GrainSizeMs, "Grain size in milliseconds (20-500)")
		f.Float64Var(&overlap, "overlap", defaults.Overlap, "Grain overlap in [0, 0.9)")
		f.BoolVar(&randomize, "randomize", defaults.Randomize, "Read grains from random source positions")
	}

	loopCmd.Flags().Float64Var(&crossfade, "crossfade", defaults.Crossfade, "Loop-point crossfade in seconds")
	textureCmd.Flags().Float64Var(&density, "density", defaults.TextureDensity, "Grain density in (0, 1]")
}

func setupLogging(cmd *cobra.Command, _ []string) error {
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	logrus.SetLevel(lvl)
	logrus.SetOutput(cmd.ErrOrStderr())

	switch logFormat {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", logFormat)
	}

	return nil
}

// maxFileSize is the input limit in bytes after flag overrides.
func maxFileSize() int64 {
	cfg := defaults
	cfg.MaxFileSizeMB = maxFileSizeMB

	return cfg.MaxFileSize()
}

func newEngine() (*granular.Engine, error) {
	cfg, err := granular.NewConfig(grainSizeMs, overlap, randomize)
	if err != nil {
		return nil, err
	}

	opts := []granular.Option{
		granular.WithWorkers(workers),
		granular.WithLogger(logrus.StandardLogger()),
	}
	if seed != 0 {
		opts = append(opts, granular.WithSeed(seed))
	}

	return granular.New(cfg, opts...)
}
