// Package energy converts a preprocessed sample stream into per-frame
// activity levels: one scaled energy value per video frame window, then a
// bounded integer level via frame-rate-specific thresholds.
package energy

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Analyze partitions samples into non-overlapping windows of 1000/fps ms
// and returns one scaled energy value per window, in chronological order.
//
// Each window's raw value is its mean squared amplitude. After all windows
// are computed the sequence is rescaled as sqrt(raw/max)*10, compressing
// the dynamic range so mid-level activity stays visually distinguishable.
// The rescale needs the global maximum, so this is inherently two-pass.
//
// Window boundaries are computed per index as i*sampleRate/fps so that
// windows track the exact 1000/fps ms width even when sampleRate is not
// divisible by fps; a fixed truncated width would drift by a frame every
// few minutes at rates like 32 kHz. The final window may be shorter than
// the others; it is averaged over its own sample count, not padded. An
// all-silent stream yields all zeros.
func Analyze(samples []float64, sampleRate, fps int) []float64 {
	if len(samples) == 0 || fps <= 0 || sampleRate < fps {
		return nil
	}

	numWindows := (len(samples)*fps + sampleRate - 1) / sampleRate
	energies := make([]float64, numWindows)

	for w := 0; w < numWindows; w++ {
		start := w * sampleRate / fps
		end := (w + 1) * sampleRate / fps
		if end > len(samples) {
			end = len(samples)
		}

		var sumSquares float64
		for _, s := range samples[start:end] {
			sumSquares += s * s
		}
		energies[w] = sumSquares / float64(end-start)
	}

	maxEnergy := floats.Max(energies)
	if maxEnergy == 0 {
		// Silent recording: leave the sequence at zero rather than
		// dividing by the zero maximum.
		return energies
	}

	for i, e := range energies {
		energies[i] = math.Sqrt(e/maxEnergy) * 10
	}

	return energies
}
