package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// placeholder is the image stored for a tribute submitted without a file.
func placeholder() []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.NRGBA{R: 0xf4, G: 0xf1, B: 0xea, A: 0xff})

	var buf bytes.Buffer
	// Encoding a 1x1 image into memory cannot fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
