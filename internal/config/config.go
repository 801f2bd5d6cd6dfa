// Package config holds the fixed process-level settings for jivescan:
// scanner geometry, colors, and the supported frame rates.
package config

import "errors"

// Supported output frame rates. The energy threshold tables are tuned per
// frame rate, so anything else is a configuration error.
const (
	FPSLow  = 10
	FPSHigh = 15
)

// ErrUnsupportedFPS is returned when the requested frame rate has no
// threshold table.
var ErrUnsupportedFPS = errors.New("unsupported frame rate: must be 10 or 15")

// ValidateFPS checks that fps is one of the supported frame rates.
func ValidateFPS(fps int) error {
	if fps != FPSLow && fps != FPSHigh {
		return ErrUnsupportedFPS
	}
	return nil
}

// Scanner geometry (pixels)
const (
	RectWidth  = 20 // Width of each rectangle
	RectHeight = 6  // Height of each rectangle
	VSpace     = 5  // Vertical gap between rectangles in a column
	HSpace     = 40 // Horizontal gap between column anchors

	// The scanner anchor sits this far below the image center
	CenterYOffset = 150
)

// Scanner colors. Rectangles are pure red with intensity rising per
// stacking step away from the column anchor.
const (
	BaseRed = 150
	RedStep = 10
)

// MaxLevel is the highest activity level the quantizer can produce:
// the last threshold index (10) maps to 10*2 + 1.
const MaxLevel = 21

// Audio settings
const (
	// Decoder read granularity in samples
	ChunkSize = 8192

	// AAC bitrate used when muxing the final output
	AudioBitrate = "128k"
)
