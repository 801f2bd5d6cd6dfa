package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/linuxmatters/jivescan/internal/config"
)

func testBackground(width, height int) *image.RGBA {
	bg := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(bg, bg.Bounds(), image.NewUniform(color.RGBA{R: 30, G: 60, B: 90, A: 255}), image.Point{}, draw.Src)
	return bg
}

// countScannerPixels counts pixels that carry the scanner's pure red
// signature, which the test background never produces.
func countScannerPixels(img *image.RGBA) int {
	count := 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] >= uint8(config.BaseRed) && img.Pix[i+1] == 0 && img.Pix[i+2] == 0 {
			count++
		}
	}
	return count
}

func TestDrawLevelZeroReproducesBackground(t *testing.T) {
	bg := testBackground(400, 600)
	frame := NewFrame(bg, DefaultGeometry(400, 600))

	frame.Draw(0)

	if !bytes.Equal(frame.Image().Pix, bg.Pix) {
		t.Error("Level 0 frame should be identical to the background")
	}
}

func TestDrawDoesNotMutateTemplate(t *testing.T) {
	bg := testBackground(400, 600)
	original := make([]byte, len(bg.Pix))
	copy(original, bg.Pix)

	frame := NewFrame(bg, DefaultGeometry(400, 600))
	frame.Draw(config.MaxLevel)

	if !bytes.Equal(bg.Pix, original) {
		t.Error("Drawing must not modify the background template")
	}
}

func TestDrawCenterRectangle(t *testing.T) {
	bg := testBackground(400, 600)
	geom := DefaultGeometry(400, 600)
	frame := NewFrame(bg, geom)

	frame.Draw(1)

	// Rectangle 0 of the center column sits on the anchor at base intensity.
	img := frame.Image()
	c := img.RGBAAt(geom.Center.X, geom.Center.Y)
	want := color.RGBA{R: uint8(config.BaseRed), G: 0, B: 0, A: 255}
	if c != want {
		t.Errorf("Expected %v at scanner anchor, got %v", want, c)
	}
}

func TestDrawOuterColumnsEmptyAtLowLevels(t *testing.T) {
	bg := testBackground(400, 600)
	geom := DefaultGeometry(400, 600)
	frame := NewFrame(bg, geom)

	// Level 3 gives counts {-1, 1, 3, 1, -1}: the outer pair stays empty.
	frame.Draw(3)

	img := frame.Image()
	bgColor := bg.RGBAAt(0, 0)
	for _, offset := range []int{-2, 2} {
		cx := geom.Center.X + offset*geom.HSpace
		if c := img.RGBAAt(cx, geom.Center.Y); c != bgColor {
			t.Errorf("Outer column at offset %d should be empty at level 3, got %v", offset, c)
		}
	}

	// The neighbours do get their single rectangle.
	for _, offset := range []int{-1, 1} {
		cx := geom.Center.X + offset*geom.HSpace
		if c := img.RGBAAt(cx, geom.Center.Y); c.G != 0 || c.B != 0 {
			t.Errorf("Neighbour column at offset %d should be lit at level 3, got %v", offset, c)
		}
	}
}

func TestDrawPixelCountGrowsWithLevel(t *testing.T) {
	bg := testBackground(400, 600)
	geom := DefaultGeometry(400, 600)
	frame := NewFrame(bg, geom)

	prev := -1
	for level := 1; level <= config.MaxLevel; level += 2 {
		frame.Draw(level)

		count := countScannerPixels(frame.Image())
		if count <= prev {
			t.Errorf("Level %d lit %d pixels, not more than the previous level's %d", level, count, prev)
		}
		prev = count
	}
}

func TestDrawMaxLevelRectangleCounts(t *testing.T) {
	bg := testBackground(400, 600)
	geom := DefaultGeometry(400, 600)
	frame := NewFrame(bg, geom)

	frame.Draw(config.MaxLevel)

	// 21 + 2*19 + 2*17 rectangles of RectWidth*RectHeight pixels, none
	// clipped at this frame size and none overlapping.
	wantRects := config.MaxLevel + 2*(config.MaxLevel-2) + 2*(config.MaxLevel-4)
	wantPixels := wantRects * config.RectWidth * config.RectHeight
	if count := countScannerPixels(frame.Image()); count != wantPixels {
		t.Errorf("Expected %d scanner pixels at max level, got %d", wantPixels, count)
	}
}

func TestDrawIntensityRisesAwayFromAnchor(t *testing.T) {
	bg := testBackground(400, 600)
	geom := DefaultGeometry(400, 600)
	frame := NewFrame(bg, geom)

	frame.Draw(5)

	img := frame.Image()
	pitch := geom.RectHeight + geom.VSpace
	anchor := img.RGBAAt(geom.Center.X, geom.Center.Y)
	below := img.RGBAAt(geom.Center.X, geom.Center.Y+pitch)
	above := img.RGBAAt(geom.Center.X, geom.Center.Y-pitch)

	if below.R <= anchor.R {
		t.Errorf("Rectangle below anchor should be brighter: anchor %d, below %d", anchor.R, below.R)
	}
	if above.R != below.R {
		t.Errorf("Mirrored rectangles should share intensity: above %d, below %d", above.R, below.R)
	}
}
