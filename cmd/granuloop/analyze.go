// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ik5/granuloop"
	"github.com/ik5/granuloop/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input>",
	Short: "Describe a recording and guess its environment",
	Long: `Print duration, level, spectral features and a quality score for the
input, followed by a heuristic guess of the recording environment.

Example:
  granuloop analyze rain.wav`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported input formats",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(granuloop.DefaultRegistry().Formats(), " "))
	},
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	buf, err := granuloop.LoadFile(args[0], granuloop.FileOptions{MaxFileSize: maxFileSize()})
	if err != nil {
		return err
	}

	holder := analysis.NewHolder(func(context.Context) (analysis.Classifier, error) {
		return analysis.HeuristicClassifier{Log: logrus.StandardLogger()}, nil
	})
	defer holder.Close()

	md := analysis.Describe(buf)
	q, err := analysis.Assess(buf)
	if err != nil {
		return err
	}

	res, err := holder.Classify(cmd.Context(), buf)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "duration:     %v\n", md.Duration)
	fmt.Fprintf(w, "sample rate:  %d Hz\n", md.SampleRate)
	fmt.Fprintf(w, "samples:      %d\n", md.Samples)
	fmt.Fprintf(w, "level:        %.4f RMS (%.1f dB)\n", md.RMS, md.DB)
	fmt.Fprintf(w, "centroid:     %.0f Hz\n", q.SpectralCentroid)
	fmt.Fprintf(w, "rolloff:      %.0f Hz\n", q.SpectralRolloff)
	fmt.Fprintf(w, "zero cross:   %.3f\n", q.ZeroCrossingRate)
	fmt.Fprintf(w, "quality:      %d/2 (%s)\n", q.Score, strings.Join(q.Notes, ", "))
	fmt.Fprintf(w, "environment:  %s (%.0f%%)\n", res.Label, res.Confidence*100)

	return nil
}
