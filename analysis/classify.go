// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"context"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/ik5/granuloop/audio"
)

// ClassifierRate is the rate clips are converted to before classification.
const ClassifierRate = 16000

// Environment labels produced by HeuristicClassifier.
const (
	LabelHighFrequencyNoise = "High-frequency noise (e.g., machinery, electronics)"
	LabelHighFrequency      = "High-frequency sounds (e.g., birds, alarms)"
	LabelSpeech             = "Speech or conversation"
	LabelMusic              = "Music or tonal sounds"
	LabelLowFrequency       = "Low-frequency ambient (e.g., traffic, wind)"
	LabelMixedAmbient       = "Mixed ambient sounds"
)

// Classification names the detected environment of a clip.
type Classification struct {
	Label string
	// Confidence in [0.5, 1] grows with the distance of the deciding
	// feature from its threshold.
	Confidence float64
	Features   Features
}

// Classifier labels the environment a clip was recorded in.
type Classifier interface {
	Classify(ctx context.Context, buf audio.Buffer) (Classification, error)
}

// HeuristicClassifier decides on spectral centroid and zero-crossing rate
// measured at 16 kHz.
type HeuristicClassifier struct {
	Log logrus.FieldLogger
}

type split struct {
	threshold float64
	value     float64
}

func (s split) confidence() float64 {
	return 0.5 + 0.5*min(1, math.Abs(s.value-s.threshold)/s.threshold)
}

func (c HeuristicClassifier) Classify(ctx context.Context, buf audio.Buffer) (Classification, error) {
	if buf.Len() == 0 {
		return Classification{}, ErrEmptyBuffer
	}
	if err := ctx.Err(); err != nil {
		return Classification{}, err
	}

	resampled, err := audio.Resample(buf, ClassifierRate)
	if err != nil {
		return Classification{}, fmt.Errorf("analysis: preparing clip: %w", err)
	}

	f := Extract(resampled.Samples, resampled.SampleRate)
	label, dec := decide(f)

	// both splits on the path count, the weaker one bounds the result
	res := Classification{
		Label:      label,
		Confidence: min(dec[0].confidence(), dec[1].confidence()),
		Features:   f,
	}

	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{
			"function":   "Classify",
			"centroid":   f.SpectralCentroid,
			"zcr":        f.ZeroCrossingRate,
			"label":      res.Label,
			"confidence": res.Confidence,
		}).Debug("clip classified")
	}

	return res, nil
}

// decide walks the centroid and zero-crossing splits and returns the label
// with the two splits it passed through.
func decide(f Features) (string, [2]split) {
	c, z := f.SpectralCentroid, f.ZeroCrossingRate

	switch {
	case c > 2000:
		s := [2]split{{2000, c}, {0.1, z}}
		if z > 0.1 {
			return LabelHighFrequencyNoise, s
		}
		return LabelHighFrequency, s
	case c > 1000:
		s := [2]split{{1000, c}, {0.15, z}}
		if z > 0.15 {
			return LabelSpeech, s
		}
		return LabelMusic, s
	default:
		s := [2]split{{1000, c}, {0.05, z}}
		if z < 0.05 {
			return LabelLowFrequency, s
		}
		return LabelMixedAmbient, s
	}
}
