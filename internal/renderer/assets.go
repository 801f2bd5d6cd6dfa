package renderer

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"
)

// LoadBackground loads a PNG or JPEG background image as RGBA. The output
// video takes the size of the background, except that odd dimensions are
// rounded down to even: H.264 with yuv420p subsampling needs even frame
// dimensions. When that happens the image is rescaled with bilinear
// interpolation.
func LoadBackground(filename string) (*image.RGBA, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open background image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode background image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx() &^ 1
	height := bounds.Dy() &^ 1
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("background image too small: %dx%d", bounds.Dx(), bounds.Dy())
	}

	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	if width != bounds.Dx() || height != bounds.Dy() {
		draw.ApproxBiLinear.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	} else {
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return rgba, nil
}
