// SPDX-License-Identifier: EPL-2.0

// Package audio holds the sample plumbing shared by the decoders, the
// granular engine and the analysis helpers.
//
// Two shapes of audio exist here. A Source is a pull-based stream of
// interleaved float32 PCM, which is what the format decoders produce:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// A Buffer is a whole mono clip in memory plus its sample rate. ReadAll
// turns the first into the second, averaging channels on the way:
//
//	src, _ := wav.Decoder{}.Decode(f)
//	buf, err := audio.ReadAll(src, audio.DefaultBufferSize)
//
// Samples are float32 in [-1, 1]. Values may exceed that range after
// processing; encoders clip when quantising.
//
// # Streaming helpers
//
// MonoMixer averages the channels of a Source. Resampler converts its rate
// with cubic interpolation and, when downsampling, a one-pole low-pass.
// Resample applies the same conversion to a Buffer.
//
// # Format registry
//
// Registry maps file extensions to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register(wav.Decoder{}, "wav", "wave")
//	decoder, err := registry.ForPath("clip.WAV")
//
// Lookups are case-insensitive. An unknown extension yields a *FormatError
// that matches ErrUnknownFormat with errors.Is.
//
// # End of stream
//
// ReadSamples returns io.EOF once the stream is exhausted, possibly together
// with the last samples. Callers consume n values before looking at err.
package audio
