//go:build purego || js

package main

import (
	"fmt"

	"github.com/disintegration/imaging"

	cm "cornermetrics/pkg/cornermetrics"
)

// loadImage decodes an image, converts it to grayscale, and scales the
// samples to float32 [0, 1].
func loadImage(path string) (cm.Mat, int, int, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return cm.Mat{}, 0, 0, fmt.Errorf("opening image: %w", err)
	}
	gray := imaging.Grayscale(img)

	bounds := gray.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := cm.NewMatWithSize(h, w)
	dst := out.DataFloat32()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			// Grayscale NRGBA: R == G == B
			i := gray.PixOffset(bounds.Min.X+x, bounds.Min.Y+y)
			dst[y*w+x] = float32(gray.Pix[i]) / 255.0
		}
	}
	return out, w, h, nil
}
