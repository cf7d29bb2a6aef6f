// SPDX-License-Identifier: EPL-2.0

package granuloop_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/granuloop"
	"github.com/ik5/granuloop/audio"
	"github.com/ik5/granuloop/granular"
	"github.com/ik5/granuloop/internal/audiotest"
)

func Example_loopFile() {
	dir, err := os.MkdirTemp("", "granuloop")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "birds.wav")
	clip := audio.Buffer{Samples: audiotest.Sine(16000, 16000, 880, 0.5), SampleRate: 16000}
	if err := granuloop.SaveWAV(in, clip, 16); err != nil {
		panic(err)
	}

	eng, err := granular.New(granular.DefaultConfig(), granular.WithSeed(1))
	if err != nil {
		panic(err)
	}

	out := granuloop.OutputPath(dir, in, granuloop.KindGranular)
	loop, err := granuloop.LoopFile(context.Background(), eng, in, out, granular.DefaultLoopRequest(), granuloop.FileOptions{})
	if err != nil {
		panic(err)
	}

	fmt.Println(filepath.Base(out))
	fmt.Printf("%.1f s at %d Hz\n", loop.Seconds(), loop.SampleRate)
	// Output:
	// birds_granular_loop.wav
	// 10.0 s at 16000 Hz
}

func ExampleDefaultRegistry() {
	reg := granuloop.DefaultRegistry()

	_, err := reg.ForPath("take1.MP3")
	fmt.Println(err)

	_, err = reg.ForPath("take1.flac")
	fmt.Println(err)
	// Output:
	// <nil>
	// unknown audio format: "flac"
}
