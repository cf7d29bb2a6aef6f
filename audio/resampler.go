// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"

	"github.com/ik5/granuloop/utils"
)

// Resampler converts a Source to another sample rate with cubic
// interpolation. Channel layout is preserved. When downsampling, a one-pole
// low-pass tuned to the destination Nyquist frequency runs ahead of the
// interpolator.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// window[0..3] hold frames t-1, t, t+1, t+2; output lies between t and t+1
	window [4][]float32
	valid  [4]bool
	primed bool

	frac float64

	one []float32
	eof bool

	lowpass bool
	alpha   float32
	state   []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		one:      make([]float32, channels),
		state:    make([]float32, channels),
	}

	if step > 1 {
		r.lowpass = true
		// cutoff at dstRate/2 for a source sampled at srcRate
		r.alpha = float32(1 - math.Exp(-math.Pi/step))
	}

	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("closing resampled source: %w", err)
	}

	return nil
}

// pull reads a single frame into dst. ok is false when the source had
// nothing left.
func (r *Resampler) pull(dst []float32) (ok bool, err error) {
	if r.eof {
		return false, nil
	}

	n, err := r.src.ReadSamples(r.one)
	if err == io.EOF {
		r.eof = true
		err = nil
	}
	if err != nil {
		return false, fmt.Errorf("reading source frame: %w", err)
	}
	if n < r.channels {
		r.eof = true
		return false, nil
	}

	copy(dst, r.one)

	if r.lowpass {
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.state[c]
			r.state[c] = dst[c]
		}
	}

	return true, nil
}

// prime loads the first four frames. Short sources repeat their last frame.
func (r *Resampler) prime() error {
	r.primed = true

	for i := range r.window {
		if i == 0 && r.lowpass {
			// seed the filter with the first input to avoid a fade-in
			n, err := r.src.ReadSamples(r.one)
			if err != nil && err != io.EOF {
				return fmt.Errorf("reading source frame: %w", err)
			}
			if n < r.channels {
				r.eof = true
				return nil
			}
			copy(r.state, r.one)
			copy(r.window[0], r.one)
			r.valid[0] = true
			if err == io.EOF {
				r.eof = true
			}
			continue
		}

		ok, err := r.pull(r.window[i])
		if err != nil {
			return err
		}
		if ok {
			r.valid[i] = true
			continue
		}

		if i == 0 {
			return nil
		}
		for j := i; j < len(r.window); j++ {
			copy(r.window[j], r.window[i-1])
			r.valid[j] = true
		}

		return nil
	}

	return nil
}

// shift slides the window one frame forward.
func (r *Resampler) shift() error {
	first := r.window[0]
	copy(r.window[:], r.window[1:])
	copy(r.valid[:], r.valid[1:])
	r.window[3] = first

	ok, err := r.pull(r.window[3])
	if err != nil {
		return err
	}
	r.valid[3] = ok

	return nil
}

// ReadSamples fills dst with interleaved frames at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		for r.frac >= 1 {
			r.frac--
			if err := r.shift(); err != nil {
				return written * r.channels, err
			}
		}

		if !r.valid[1] || !r.valid[2] {
			return written * r.channels, io.EOF
		}

		x := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]

		for c := range out {
			y0 := r.window[1][c]
			if r.valid[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.valid[3] {
				y3 = r.window[3][c]
			}

			out[c] = utils.CubicInterpolate(y0, r.window[1][c], r.window[2][c], y3, x)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}

// Resample returns buf converted to rate. A buffer already at rate is
// cloned.
func Resample(buf Buffer, rate int) (Buffer, error) {
	if rate <= 0 || buf.SampleRate <= 0 {
		return Buffer{}, ErrInvalidRate
	}
	if buf.SampleRate == rate {
		return buf.Clone(), nil
	}
	if buf.Len() == 0 {
		return Buffer{SampleRate: rate}, nil
	}

	out, err := ReadAll(NewResampler(NewBufferSource(buf), rate), DefaultBufferSize)
	if err != nil {
		return Buffer{}, fmt.Errorf("resampling %d Hz to %d Hz: %w", buf.SampleRate, rate, err)
	}

	return out, nil
}
