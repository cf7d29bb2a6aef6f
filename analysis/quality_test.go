// SPDX-License-Identifier: EPL-2.0

package analysis

import (
	"errors"
	"slices"
	"testing"

	"github.com/ik5/granuloop/audio"
	"github.com/ik5/granuloop/internal/audiotest"
)

func TestAssess(t *testing.T) {
	t.Parallel()

	const rate = 16000

	tests := []struct {
		name  string
		buf   audio.Buffer
		score int
		notes []string
	}{
		{
			name:  "loud low tone",
			buf:   audio.Buffer{Samples: audiotest.Sine(rate, rate, 440, 1), SampleRate: rate},
			score: 2,
			notes: []string{"Good signal level", "Low noise"},
		},
		{
			name:  "quiet mid tone",
			buf:   audio.Buffer{Samples: audiotest.Sine(rate, rate, 2000, 0.01), SampleRate: rate},
			score: 0,
			notes: []string{"Moderate signal level", "Moderate noise"},
		},
		{
			name:  "faint noise",
			buf:   audio.Buffer{Samples: audiotest.Noise(rate, 0.001, 2), SampleRate: rate},
			score: 0,
			notes: []string{"Very low signal level", "High noise detected"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := Assess(tt.buf)
			if err != nil {
				t.Fatalf("Assess() error = %v", err)
			}

			if q.Score != tt.score {
				t.Errorf("Score = %d, want %d", q.Score, tt.score)
			}
			if !slices.Equal(q.Notes, tt.notes) {
				t.Errorf("Notes = %q, want %q", q.Notes, tt.notes)
			}
			if q.RMS != tt.buf.RMS() || q.DB != Decibels(q.RMS) {
				t.Errorf("RMS/DB = %v/%v", q.RMS, q.DB)
			}
		})
	}
}

func TestThresholds_Assess(t *testing.T) {
	t.Parallel()

	// a 2 kHz tone is moderate noise by default, low noise here
	th := DefaultThresholds()
	th.LowNoiseZCR = 0.3
	th.GoodDB = -50

	q, err := th.Assess(audio.Buffer{Samples: audiotest.Sine(16000, 16000, 2000, 0.01), SampleRate: 16000})
	if err != nil {
		t.Fatal(err)
	}

	if q.Score != 2 {
		t.Errorf("Score = %d, notes %q", q.Score, q.Notes)
	}
}

func TestAssess_Errors(t *testing.T) {
	t.Parallel()

	if _, err := Assess(audio.Buffer{SampleRate: 16000}); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("Assess(empty) error = %v", err)
	}
	if _, err := Assess(audio.Buffer{Samples: []float32{0.1}}); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("Assess(rate 0) error = %v", err)
	}
}
