package energy

import (
	"github.com/linuxmatters/jivescan/internal/config"
)

// Experimentally tuned energy thresholds, one ascending table per supported
// frame rate. The quantizer walks these in order.
var thresholdTables = map[int][]float64{
	config.FPSLow:  {0.1, 0.8, 1.6, 2.4, 3.2, 4, 5, 6, 7, 8, 10},
	config.FPSHigh: {0.6, 1, 1.5, 2.0, 2.5, 3, 3.5, 4, 5, 7, 10},
}

// Thresholds returns the threshold table for fps, or
// config.ErrUnsupportedFPS when no table exists.
func Thresholds(fps int) ([]float64, error) {
	table, ok := thresholdTables[fps]
	if !ok {
		return nil, config.ErrUnsupportedFPS
	}
	return table, nil
}
