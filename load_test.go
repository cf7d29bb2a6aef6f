// SPDX-License-Identifier: EPL-2.0

package granuloop

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/ik5/granuloop/audio"
	"github.com/ik5/granuloop/formats/wav"
	"github.com/ik5/granuloop/granular"
	"github.com/ik5/granuloop/internal/audiotest"
)

type stereoDecoder struct{}

func (stereoDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewConstantSource(8000, 2, 800, 0.25), nil
}

func TestDefaultRegistry(t *testing.T) {
	t.Parallel()

	want := []string{"aif", "aiff", "mp3", "oga", "ogg", "wav", "wave"}
	if got := DefaultRegistry().Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestLoad_MixesToMono(t *testing.T) {
	t.Parallel()

	buf, err := Load(strings.NewReader(""), stereoDecoder{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if buf.Len() != 800 || buf.SampleRate != 8000 {
		t.Errorf("Load() = %d samples at %d Hz", buf.Len(), buf.SampleRate)
	}
	if math.Abs(buf.RMS()-0.25) > 1e-6 {
		t.Errorf("RMS() = %v, want 0.25", buf.RMS())
	}
}

func TestSaveWAV_LoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "tone.wav")
	in := audio.Buffer{Samples: audiotest.Sine(4000, 8000, 440, 0.5), SampleRate: 8000}

	if err := SaveWAV(path, in, 16); err != nil {
		t.Fatalf("SaveWAV() error = %v", err)
	}

	out, err := LoadFile(path, FileOptions{})
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if out.SampleRate != 8000 || out.Len() != in.Len() {
		t.Fatalf("LoadFile() = %d samples at %d Hz", out.Len(), out.SampleRate)
	}
	for i := range in.Samples {
		if math.Abs(float64(in.Samples[i]-out.Samples[i])) > 1.0/16384 {
			t.Fatalf("sample %d = %v, want %v", i, out.Samples[i], in.Samples[i])
		}
	}
}

func TestLoadFile_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.wav")
	if err := os.WriteFile(garbage, []byte("definitely not RIFF data"), 0o600); err != nil {
		t.Fatal(err)
	}

	big := filepath.Join(dir, "big.wav")
	if err := SaveWAV(big, audio.Buffer{Samples: make([]float32, 1000), SampleRate: 8000}, 16); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		opts FileOptions
		want error
	}{
		{"unknown extension", filepath.Join(dir, "clip.flac"), FileOptions{}, audio.ErrUnknownFormat},
		{"no extension", filepath.Join(dir, "clip"), FileOptions{}, audio.ErrUnknownFormat},
		{"missing file", filepath.Join(dir, "missing.wav"), FileOptions{}, fs.ErrNotExist},
		{"not a wav", garbage, FileOptions{}, wav.ErrNotWavFile},
		{"too large", big, FileOptions{MaxFileSize: 1024}, ErrFileTooLarge},
		{"empty registry", big, FileOptions{Registry: audio.NewRegistry()}, audio.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := LoadFile(tt.path, tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("LoadFile() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := LoadFile(big, FileOptions{MaxFileSize: 1 << 20}); err != nil {
		t.Errorf("LoadFile() under the limit error = %v", err)
	}
}

func TestSaveWAV_BadBitDepth(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.wav")
	err := SaveWAV(path, audio.Buffer{Samples: []float32{0}, SampleRate: 8000}, 12)
	if !errors.Is(err, wav.ErrUnsupportedBitDepth) {
		t.Errorf("SaveWAV() error = %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		dir, input, kind string
		want             string
	}{
		{"output", "rain.mp3", KindGranular, filepath.Join("output", "rain_granular_loop.wav")},
		{"out", "/recordings/city.night.wav", KindTexture, filepath.Join("out", "city.night_texture_loop.wav")},
		{"", "noext", KindGranular, "noext_granular_loop.wav"},
	}

	for _, tt := range tests {
		if got := OutputPath(tt.dir, tt.input, tt.kind); got != tt.want {
			t.Errorf("OutputPath(%q, %q, %q) = %q, want %q", tt.dir, tt.input, tt.kind, got, tt.want)
		}
	}
}

func TestLoopFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "clip.wav")
	if err := SaveWAV(in, audio.Buffer{Samples: audiotest.Noise(8000, 0.5, 1), SampleRate: 8000}, 16); err != nil {
		t.Fatal(err)
	}

	eng, err := granular.New(granular.DefaultConfig(), granular.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	out := OutputPath(filepath.Join(dir, "loops"), in, KindGranular)
	loop, err := LoopFile(context.Background(), eng, in, out, granular.LoopRequest{DurationSeconds: 2, CrossfadeSeconds: 0.1}, FileOptions{BitDepth: 24})
	if err != nil {
		t.Fatalf("LoopFile() error = %v", err)
	}
	if loop.Len() != 16000 {
		t.Errorf("LoopFile() returned %d samples, want 16000", loop.Len())
	}

	written, err := LoadFile(out, FileOptions{})
	if err != nil {
		t.Fatalf("LoadFile(output) error = %v", err)
	}
	if written.Len() != 16000 || written.SampleRate != 8000 {
		t.Errorf("written loop = %d samples at %d Hz", written.Len(), written.SampleRate)
	}
}

func TestTextureFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "clip.wav")
	if err := SaveWAV(in, audio.Buffer{Samples: audiotest.Sine(8000, 8000, 330, 0.5), SampleRate: 8000}, 16); err != nil {
		t.Fatal(err)
	}

	eng, err := granular.New(granular.DefaultConfig(), granular.WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}

	out := OutputPath(dir, in, KindTexture)
	if _, err := TextureFile(context.Background(), eng, in, out, granular.TextureRequest{DurationSeconds: 1, Density: 0.7}, FileOptions{}); err != nil {
		t.Fatalf("TextureFile() error = %v", err)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("texture not written: %v", err)
	}

	_, err = TextureFile(context.Background(), eng, in, out, granular.TextureRequest{DurationSeconds: 1, Density: 2}, FileOptions{})
	if !errors.Is(err, granular.ErrConfiguration) {
		t.Errorf("TextureFile(density 2) error = %v", err)
	}
}
