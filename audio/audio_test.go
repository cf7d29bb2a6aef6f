// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"slices"
	"sync"
	"testing"
)

type mockDecoder struct {
	name string
}

func (d *mockDecoder) Decode(r io.Reader) (Source, error) {
	return newSilentSource(44100, 2, 100), nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &mockDecoder{name: "wav"}
	ogg := &mockDecoder{name: "ogg"}

	registry.Register(wav, "wav", "wave")
	registry.Register(ogg, ".OGG", "oga")

	tests := []struct {
		format string
		want   Decoder
		wantOK bool
	}{
		{"wav", wav, true},
		{"wave", wav, true},
		{"WAV", wav, true},
		{".wav", wav, true},
		{"ogg", ogg, true},
		{"oga", ogg, true},
		{"flac", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			got, ok := registry.Get(tt.format)
			if ok != tt.wantOK {
				t.Fatalf("Get(%q) ok = %v, want %v", tt.format, ok, tt.wantOK)
			}
			if tt.wantOK && got != tt.want {
				t.Errorf("Get(%q) returned the wrong decoder", tt.format)
			}
		})
	}
}

func TestRegistry_Overwrite(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	first := &mockDecoder{name: "first"}
	second := &mockDecoder{name: "second"}

	registry.Register(first, "wav")
	registry.Register(second, "wav")

	if got, _ := registry.Get("wav"); got != second {
		t.Error("Get() did not return the last registered decoder")
	}
}

func TestRegistry_ForPath(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	wav := &mockDecoder{name: "wav"}
	registry.Register(wav, "wav")

	got, err := registry.ForPath("/tmp/Field Recording.WAV")
	if err != nil {
		t.Fatalf("ForPath() error = %v", err)
	}
	if got != wav {
		t.Error("ForPath() returned the wrong decoder")
	}

	_, err = registry.ForPath("notes.txt")
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Format != "txt" {
		t.Errorf("ForPath(notes.txt) error = %v, want FormatError{txt}", err)
	}

	_, err = registry.ForPath("README")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ForPath(README) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRegistry_Formats(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	if got := registry.Formats(); len(got) != 0 {
		t.Errorf("Formats() on empty registry = %v", got)
	}

	registry.Register(&mockDecoder{}, "mp3")
	registry.Register(&mockDecoder{}, "aiff", "aif")

	want := []string{"aif", "aiff", "mp3"}
	if got := registry.Formats(); !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	decoder := &mockDecoder{name: "test"}

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			registry.Register(decoder, "format")
		}()
		go func() {
			defer wg.Done()
			_, _ = registry.Get("format")
			_ = registry.Formats()
		}()
	}
	wg.Wait()

	if got, ok := registry.Get("format"); !ok || got != decoder {
		t.Error("Get() lost the decoder after concurrent registration")
	}
}

func BenchmarkRegistry_Get(b *testing.B) {
	registry := NewRegistry()
	registry.Register(&mockDecoder{}, "wav")

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.Get("wav")
	}
}

func BenchmarkRegistry_ForPath(b *testing.B) {
	registry := NewRegistry()
	registry.Register(&mockDecoder{}, "wav")

	b.ReportAllocs()

	for b.Loop() {
		_, _ = registry.ForPath("/data/clip.wav")
	}
}
