// SPDX-License-Identifier: EPL-2.0

package granular

import (
	"context"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ik5/granuloop/audio"
)

// chunkGrains is how many grains are planned and rendered between two
// cancellation checks.
const chunkGrains = 64

// seedMix decorrelates the two PCG words derived from one seed.
const seedMix = 0x9E3779B97F4A7C15

// Engine resynthesises a clip into longer loops. It keeps no state between
// calls apart from an injected generator, and is safe for concurrent use.
type Engine struct {
	cfg       Config
	extractor *Extractor
	shifter   PitchShifter
	log       logrus.FieldLogger

	workers   int
	maxOutput int

	seed   uint64
	seeded bool

	rngMu sync.Mutex
	rng   *rand.Rand
}

// Option customises an Engine.
type Option func(*Engine)

// WithSeed makes every call start from the same generator state, so equal
// inputs give bit-identical output.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seed = seed
		e.seeded = true
	}
}

// WithRand hands the engine a caller-owned generator that is consumed
// across calls. It takes precedence over WithSeed.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithWorkers bounds the goroutines rendering grains. Values below 1 mean 1.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = max(1, n)
	}
}

// WithLogger sets the logger for per-call debug output.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMaxOutputSamples caps the output length a call may allocate.
func WithMaxOutputSamples(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxOutput = n
		}
	}
}

// WithPitchShifter replaces the texture path's SpectralShifter.
func WithPitchShifter(p PitchShifter) Option {
	return func(e *Engine) {
		if p != nil {
			e.shifter = p
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// New returns an engine for cfg. A zero Config is rejected.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if !cfg.valid {
		return nil, &ConfigError{Field: "config", Value: cfg, Reason: "must come from NewConfig or DefaultConfig"}
	}

	e := &Engine{
		cfg:       cfg,
		extractor: NewExtractor(),
		shifter:   SpectralShifter{},
		log:       discardLogger(),
		workers:   runtime.GOMAXPROCS(0),
		maxOutput: DefaultMaxOutputLength,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config { return e.cfg }

// generator returns the randomness for one call and a release func.
func (e *Engine) generator() (*rand.Rand, func()) {
	if e.rng != nil {
		e.rngMu.Lock()
		return e.rng, e.rngMu.Unlock
	}

	seed := e.seed
	if !e.seeded {
		seed = rand.Uint64()
	}

	return rand.New(rand.NewPCG(seed, seed^seedMix)), func() {}
}

func (e *Engine) outputLength(input audio.Buffer, seconds float64) (int, error) {
	if input.Len() == 0 {
		return 0, invalidInput("source buffer is empty")
	}
	if input.SampleRate <= 0 {
		return 0, invalidInput("sample rate %d is not positive", input.SampleRate)
	}
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0, invalidInput("duration %v must be a positive number of seconds", seconds)
	}

	n := math.Round(seconds * float64(input.SampleRate))
	if n > float64(e.maxOutput) {
		return 0, fmt.Errorf("%w: %.0f samples requested, limit is %d", ErrResourceExhausted, n, e.maxOutput)
	}

	return int(n), nil
}

// grainPlan is one grain's placement, decided before rendering.
type grainPlan struct {
	source int
	output int
	pitch  float64
}

// render turns plans into grains on up to e.workers goroutines and adds
// them to acc in plan order. plan is called sequentially, chunk by chunk,
// so the generator is never touched concurrently.
func (e *Engine) render(ctx context.Context, acc *Accumulator, count int, plan func(i int) grainPlan, cut func(p grainPlan) []float64) error {
	plans := make([]grainPlan, 0, chunkGrains)
	grains := make([][]float64, chunkGrains)

	for start := 0; start < count; start += chunkGrains {
		if err := ctx.Err(); err != nil {
			return err
		}

		end := min(start+chunkGrains, count)
		plans = plans[:0]
		for i := start; i < end; i++ {
			plans = append(plans, plan(i))
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(e.workers)

		for j := range plans {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				grains[j] = cut(plans[j])
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}

		for j, p := range plans {
			acc.Add(grains[j], p.output)
			grains[j] = nil
		}
	}

	return nil
}

// CreateGranularLoop resynthesises input into a loop of req.DurationSeconds:
// windowed grains are overlap-added at a fixed hop, the result is matched
// to the input's RMS and its ends are crossfaded.
func (e *Engine) CreateGranularLoop(ctx context.Context, input audio.Buffer, req LoopRequest) (audio.Buffer, error) {
	outLen, err := e.outputLength(input, req.DurationSeconds)
	if err != nil {
		return audio.Buffer{}, err
	}
	if math.IsNaN(req.CrossfadeSeconds) || math.IsInf(req.CrossfadeSeconds, 0) || req.CrossfadeSeconds < 0 {
		return audio.Buffer{}, invalidInput("crossfade %v must be zero or a positive number of seconds", req.CrossfadeSeconds)
	}

	began := time.Now()
	rate := input.SampleRate
	grain := e.cfg.GrainSamples(rate)
	hop := e.cfg.HopSamples(rate)
	count := (outLen+hop-1)/hop + 1

	rng, release := e.generator()
	defer release()

	placement := newPlacement(e.cfg, grain, hop, input.Len(), rng)
	acc := NewAccumulator(outLen)

	err = e.render(ctx, acc, count,
		func(i int) grainPlan {
			return grainPlan{source: placement.SourceOffset(i), output: placement.OutputOffset(i)}
		},
		func(p grainPlan) []float64 {
			return e.extractor.Extract(input.Samples, p.source, grain)
		},
	)
	if err != nil {
		return audio.Buffer{}, err
	}

	gain := MatchLoudness(acc.Samples(), input.RMS())
	fadeLen := CrossfadeSamples(req.CrossfadeSeconds, rate)
	faded := Crossfade(acc.Samples(), fadeLen)

	e.log.WithFields(logrus.Fields{
		"function":       "CreateGranularLoop",
		"grains":         count,
		"grain_samples":  grain,
		"hop_samples":    hop,
		"randomized":     e.cfg.Randomize(),
		"output_samples": outLen,
		"gain":           gain,
		"crossfaded":     faded,
		"elapsed":        time.Since(began),
	}).Debug("granular loop rendered")

	return acc.Buffer(rate), nil
}

// CreateTextureLoop scatters short pitch-varied grains across a buffer of
// req.DurationSeconds and matches the result to the input's RMS. There is
// no crossfade.
func (e *Engine) CreateTextureLoop(ctx context.Context, input audio.Buffer, req TextureRequest) (audio.Buffer, error) {
	outLen, err := e.outputLength(input, req.DurationSeconds)
	if err != nil {
		return audio.Buffer{}, err
	}
	if math.IsNaN(req.Density) || req.Density <= 0 || req.Density > 1 {
		return audio.Buffer{}, &ConfigError{Field: "density", Value: req.Density, Reason: "must be in (0, 1]"}
	}

	began := time.Now()
	rate := input.SampleRate
	grain := grainSamples(TextureGrainMs, rate)
	count := int(math.Floor(float64(outLen) * req.Density / float64(grain)))

	rng, release := e.generator()
	defer release()

	placement := TexturePlacement{Grain: grain, SourceLen: input.Len(), OutputLen: outLen, Rand: rng}
	acc := NewAccumulator(outLen)

	err = e.render(ctx, acc, count,
		func(i int) grainPlan {
			p := grainPlan{source: placement.SourceOffset(i)}
			p.pitch = placement.PitchFactor(i)
			p.output = placement.OutputOffset(i)
			return p
		},
		func(p grainPlan) []float64 {
			g := ExtractRaw(input.Samples, p.source, grain)
			if math.Abs(p.pitch-1) > pitchTolerance {
				g = e.shifter.Shift(g, p.pitch)
			}
			e.extractor.Apply(g)
			return g
		},
	)
	if err != nil {
		return audio.Buffer{}, err
	}

	gain := MatchLoudness(acc.Samples(), input.RMS())

	e.log.WithFields(logrus.Fields{
		"function":       "CreateTextureLoop",
		"grains":         count,
		"grain_samples":  grain,
		"density":        req.Density,
		"output_samples": outLen,
		"gain":           gain,
		"elapsed":        time.Since(began),
	}).Debug("texture loop rendered")

	return acc.Buffer(rate), nil
}
