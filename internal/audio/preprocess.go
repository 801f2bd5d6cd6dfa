// Package audio decodes audio files into a normalized mono sample stream.
package audio

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/linuxmatters/jivescan/internal/config"
)

// Recording is a fully decoded, preprocessed audio stream: mono samples,
// DC-removed and peak-normalized to [-1, 1]. Treated as immutable once
// loaded.
type Recording struct {
	Samples    []float64
	SampleRate int
}

// Duration returns the recording length in seconds.
func (r *Recording) Duration() float64 {
	if r.SampleRate == 0 {
		return 0
	}
	return float64(len(r.Samples)) / float64(r.SampleRate)
}

// Load decodes an audio file and preprocesses it for energy analysis.
// The whole recording is buffered: the analyzer needs a global maximum
// before any per-window value is final, so streaming buys nothing here.
func Load(filename string) (*Recording, error) {
	dec, err := OpenDecoder(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer dec.Close()

	var samples []float64
	for {
		chunk, err := dec.ReadChunk(config.ChunkSize)
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("failed to decode audio: %w", err)
		}
		samples = append(samples, chunk...)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio data in %s", filename)
	}

	// DC removal must precede normalization: normalizing a biased signal
	// anchors the peak to the bias and wastes dynamic range.
	removeDCOffset(samples)
	normalize(samples)

	return &Recording{
		Samples:    samples,
		SampleRate: dec.SampleRate(),
	}, nil
}

// removeDCOffset subtracts the stream mean in place.
func removeDCOffset(samples []float64) {
	mean := stat.Mean(samples, nil)
	for i := range samples {
		samples[i] -= mean
	}
}

// normalize scales the stream in place so the peak absolute sample is 1.
// An all-silent stream is left untouched.
func normalize(samples []float64) {
	peak := floats.Norm(samples, math.Inf(1))
	if peak == 0 {
		return
	}
	for i := range samples {
		samples[i] /= peak
	}
}
