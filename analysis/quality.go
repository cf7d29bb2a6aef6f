// SPDX-License-Identifier: EPL-2.0

package analysis

import "github.com/ik5/granuloop/audio"

// Thresholds drive the quality score. A clip earns a point for a level
// above GoodDB and another for a zero-crossing rate below LowNoiseZCR.
type Thresholds struct {
	GoodDB       float64
	LowDB        float64
	LowNoiseZCR  float64
	HighNoiseZCR float64
}

// DefaultThresholds returns -30/-60 dB and 0.1/0.3 crossings per sample.
func DefaultThresholds() Thresholds {
	return Thresholds{
		GoodDB:       -30,
		LowDB:        -60,
		LowNoiseZCR:  0.1,
		HighNoiseZCR: 0.3,
	}
}

// Quality is the outcome of Assess. Score ranges from 0 to 2.
type Quality struct {
	Features

	RMS   float64
	DB    float64
	Score int
	Notes []string
}

// Assess scores buf with DefaultThresholds.
func Assess(buf audio.Buffer) (Quality, error) {
	return DefaultThresholds().Assess(buf)
}

// Assess measures buf at its native rate and scores it against t.
func (t Thresholds) Assess(buf audio.Buffer) (Quality, error) {
	if buf.Len() == 0 {
		return Quality{}, ErrEmptyBuffer
	}
	if buf.SampleRate <= 0 {
		return Quality{}, audio.ErrInvalidRate
	}

	q := Quality{
		Features: Extract(buf.Samples, buf.SampleRate),
		RMS:      buf.RMS(),
	}
	q.DB = Decibels(q.RMS)

	switch {
	case q.DB > t.GoodDB:
		q.Score++
		q.Notes = append(q.Notes, "Good signal level")
	case q.DB < t.LowDB:
		q.Notes = append(q.Notes, "Very low signal level")
	default:
		q.Notes = append(q.Notes, "Moderate signal level")
	}

	switch {
	case q.ZeroCrossingRate < t.LowNoiseZCR:
		q.Score++
		q.Notes = append(q.Notes, "Low noise")
	case q.ZeroCrossingRate > t.HighNoiseZCR:
		q.Notes = append(q.Notes, "High noise detected")
	default:
		q.Notes = append(q.Notes, "Moderate noise")
	}

	return q, nil
}
