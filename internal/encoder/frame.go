package encoder

import (
	"unsafe"

	ffmpeg "github.com/csnewman/ffmpeg-go"
)

// convertRGBToYUV converts RGB24 data to YUV420p format.
//
// Y  =  0.299R + 0.587G + 0.114B
// U  = -0.169R - 0.331G + 0.500B + 128
// V  =  0.500R - 0.419G - 0.081B + 128
func convertRGBToYUV(rgbData []byte, yuvFrame *ffmpeg.AVFrame, width, height int) error {
	yPlane := yuvFrame.Data().Get(0)
	uPlane := yuvFrame.Data().Get(1)
	vPlane := yuvFrame.Data().Get(2)

	yLinesize := yuvFrame.Linesize().Get(0)
	uLinesize := yuvFrame.Linesize().Get(1)
	vLinesize := yuvFrame.Linesize().Get(2)

	rgbIdx := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := int(rgbData[rgbIdx])
			g := int(rgbData[rgbIdx+1])
			b := int(rgbData[rgbIdx+2])
			rgbIdx += 3

			yVal := (299*r + 587*g + 114*b) / 1000
			yVal = clampByte(yVal)

			yOffset := y*int(yLinesize) + x
			*(*uint8)(unsafe.Add(unsafe.Pointer(yPlane), yOffset)) = uint8(yVal)

			// U and V are subsampled: one value per 2x2 block
			if y%2 == 0 && x%2 == 0 {
				uVal := clampByte((-169*r-331*g+500*b)/1000 + 128)
				vVal := clampByte((500*r-419*g-81*b)/1000 + 128)

				uvY := y / 2
				uvX := x / 2

				uOffset := uvY*int(uLinesize) + uvX
				vOffset := uvY*int(vLinesize) + uvX

				*(*uint8)(unsafe.Add(unsafe.Pointer(uPlane), uOffset)) = uint8(uVal)
				*(*uint8)(unsafe.Add(unsafe.Pointer(vPlane), vOffset)) = uint8(vVal)
			}
		}
	}

	return nil
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
