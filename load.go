// SPDX-License-Identifier: EPL-2.0

package granuloop

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/granuloop/audio"
	"github.com/ik5/granuloop/formats/aiff"
	"github.com/ik5/granuloop/formats/mp3"
	"github.com/ik5/granuloop/formats/vorbis"
	"github.com/ik5/granuloop/formats/wav"
	"github.com/ik5/granuloop/granular"
)

// Output kinds used by OutputPath.
const (
	KindGranular = "granular"
	KindTexture  = "texture"
)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Decoder{}, "wav", "wave")
	reg.Register(aiff.Decoder{}, "aif", "aiff")
	reg.Register(mp3.Decoder{}, "mp3")
	reg.Register(vorbis.Decoder{}, "ogg", "oga")

	return reg
}

// FileOptions control how files are read and written.
type FileOptions struct {
	// Registry picks decoders by extension. Nil means DefaultRegistry.
	Registry *audio.Registry
	// MaxFileSize rejects larger inputs. Zero or less disables the check.
	MaxFileSize int64
	// BitDepth of written WAV files. Zero means 16.
	BitDepth int
}

// Load decodes r and mixes it down to a mono Buffer at its native rate.
func Load(r io.Reader, dec audio.Decoder) (audio.Buffer, error) {
	src, err := dec.Decode(r)
	if err != nil {
		return audio.Buffer{}, err
	}
	defer src.Close()

	return audio.ReadAll(src, src.BufSize())
}

// LoadFile opens path and decodes it with the decoder registered for its
// extension.
func LoadFile(path string, opts FileOptions) (audio.Buffer, error) {
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}

	dec, err := reg.ForPath(path)
	if err != nil {
		return audio.Buffer{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return audio.Buffer{}, err
	}
	defer f.Close()

	if opts.MaxFileSize > 0 {
		info, err := f.Stat()
		if err != nil {
			return audio.Buffer{}, err
		}
		if info.Size() > opts.MaxFileSize {
			return audio.Buffer{}, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrFileTooLarge, path, info.Size(), opts.MaxFileSize)
		}
	}

	buf, err := Load(f, dec)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("loading %s: %w", path, err)
	}

	return buf, nil
}

// SaveWAV writes b to path as mono PCM, creating parent directories.
func SaveWAV(path string, b audio.Buffer, bitDepth int) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	if err := (wav.Encoder{BitDepth: bitDepth}).Encode(f, b); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}

// OutputPath names the file a loop of kind made from input is written to:
// <dir>/<input stem>_<kind>_loop.wav.
func OutputPath(dir, input, kind string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return filepath.Join(dir, stem+"_"+kind+"_loop.wav")
}

// LoopFile loads in, renders a granular loop and writes it to out.
func LoopFile(ctx context.Context, eng *granular.Engine, in, out string, req granular.LoopRequest, opts FileOptions) (audio.Buffer, error) {
	src, err := LoadFile(in, opts)
	if err != nil {
		return audio.Buffer{}, err
	}

	loop, err := eng.CreateGranularLoop(ctx, src, req)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("rendering %s: %w", in, err)
	}

	if err := SaveWAV(out, loop, opts.BitDepth); err != nil {
		return audio.Buffer{}, err
	}

	return loop, nil
}

// TextureFile loads in, renders a texture and writes it to out.
func TextureFile(ctx context.Context, eng *granular.Engine, in, out string, req granular.TextureRequest, opts FileOptions) (audio.Buffer, error) {
	src, err := LoadFile(in, opts)
	if err != nil {
		return audio.Buffer{}, err
	}

	texture, err := eng.CreateTextureLoop(ctx, src, req)
	if err != nil {
		return audio.Buffer{}, fmt.Errorf("rendering %s: %w", in, err)
	}

	if err := SaveWAV(out, texture, opts.BitDepth); err != nil {
		return audio.Buffer{}, err
	}

	return texture, nil
}
