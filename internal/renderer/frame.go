// Package renderer draws the scanner display onto copies of the
// background image, one frame per activity level.
package renderer

import (
	"image"

	"github.com/linuxmatters/jivescan/internal/config"
)

// Geometry fixes the scanner layout for a given frame size.
type Geometry struct {
	RectWidth  int
	RectHeight int
	VSpace     int
	HSpace     int
	Center     image.Point
}

// DefaultGeometry anchors the scanner below the image center.
func DefaultGeometry(width, height int) Geometry {
	return Geometry{
		RectWidth:  config.RectWidth,
		RectHeight: config.RectHeight,
		VSpace:     config.VSpace,
		HSpace:     config.HSpace,
		Center:     image.Pt(width/2, height/2+config.CenterYOffset),
	}
}

// Frame renders activity levels onto a reusable RGBA buffer. The
// background template is never mutated; each Draw starts from a fresh copy
// of it. The buffer is exclusively owned by the renderer between Draw and
// the sink write, which is safe because the pipeline is sequential.
type Frame struct {
	img     *image.RGBA
	bgImage *image.RGBA
	geom    Geometry
}

// NewFrame creates a frame renderer over a background template.
func NewFrame(bgImage *image.RGBA, geom Geometry) *Frame {
	return &Frame{
		img:     image.NewRGBA(bgImage.Bounds()),
		bgImage: bgImage,
		geom:    geom,
	}
}

// Draw renders the five scanner columns for an activity level onto a
// fresh copy of the background. The center column gets level rectangles,
// its neighbours level-2, the outer pair level-4; columns at or below
// zero draw nothing, so level 0 reproduces the background untouched.
func (f *Frame) Draw(level int) {
	copy(f.img.Pix, f.bgImage.Pix)

	counts := columnCounts(level)
	for i, offset := range []int{-2, -1, 0, 1, 2} {
		cx := f.geom.Center.X + offset*f.geom.HSpace
		f.drawColumn(cx, f.geom.Center.Y, counts[i])
	}
}

// Image returns the current frame buffer.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// columnCounts returns the per-column rectangle counts, leftmost first.
func columnCounts(level int) [5]int {
	return [5]int{level - 4, level - 2, level, level - 2, level - 4}
}

// drawColumn stacks count rectangles around the column anchor. Rectangle 0
// sits on the anchor; indexes 1..count/2 stack downward, the rest stack
// upward, mirroring the downward run. Red intensity rises with each step
// away from the anchor.
func (f *Frame) drawColumn(cx, cy, count int) {
	if count <= 0 {
		return
	}

	pitch := f.geom.RectHeight + f.geom.VSpace
	half := count / 2

	for i := 0; i < count; i++ {
		switch {
		case i == 0:
			f.fillRect(cx, cy, config.BaseRed)
		case i <= half:
			f.fillRect(cx, cy+i*pitch, redAt(i))
		default:
			step := i - half
			f.fillRect(cx, cy-step*pitch, redAt(step))
		}
	}
}

// redAt returns the red intensity for a rectangle step steps from the
// column anchor.
func redAt(step int) uint8 {
	red := config.BaseRed + config.RedStep*step
	if red > 255 {
		red = 255
	}
	return uint8(red)
}

// fillRect draws a filled rectangle centered on (cx, cy), clipped to the
// frame bounds.
func (f *Frame) fillRect(cx, cy int, red uint8) {
	bounds := f.img.Bounds()

	x0 := cx - f.geom.RectWidth/2
	y0 := cy - f.geom.RectHeight/2
	x1 := x0 + f.geom.RectWidth
	y1 := y0 + f.geom.RectHeight

	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	if y0 < bounds.Min.Y {
		y0 = bounds.Min.Y
	}
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if y1 > bounds.Max.Y {
		y1 = bounds.Max.Y
	}

	for y := y0; y < y1; y++ {
		offset := y*f.img.Stride + x0*4
		for x := x0; x < x1; x++ {
			f.img.Pix[offset] = red
			f.img.Pix[offset+1] = 0
			f.img.Pix[offset+2] = 0
			f.img.Pix[offset+3] = 255
			offset += 4
		}
	}
}
