package energy

import (
	"math"
)

// Quantize maps each scaled energy value to an activity level: 0 for
// silence, otherwise an odd number up to 21. Levels drive the number of
// rectangles in the scanner's center column.
func Quantize(energies []float64, fps int) ([]int, error) {
	thresholds, err := Thresholds(fps)
	if err != nil {
		return nil, err
	}

	levels := make([]int, len(energies))
	for i, e := range energies {
		levels[i] = levelFor(e, thresholds)
	}

	return levels, nil
}

// levelFor walks the ascending threshold table, dividing the energy by
// each threshold in turn. A rounded ratio of zero stops the walk at the
// current index; a rounded ratio of one stops it after advancing one
// more index; anything larger keeps walking. Half-way ratios round to
// even, which sets the boundary behaviour the tables are tuned against.
// Energies past the table (not producible by the analyzer's rescale)
// clamp the counter to the last index, capping the level at 21.
func levelFor(e float64, thresholds []float64) int {
	counter := 0
	for counter < len(thresholds) {
		ratio := math.RoundToEven(e / thresholds[counter])
		if ratio == 0 {
			break
		}
		counter++
		if ratio == 1 {
			break
		}
	}
	if counter >= len(thresholds) {
		counter = len(thresholds) - 1
	}

	if counter == 0 {
		return 0
	}
	return counter*2 + 1
}
