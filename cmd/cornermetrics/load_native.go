//go:build !purego && !js

package main

import (
	"fmt"

	"gocv.io/x/gocv"

	cm "cornermetrics/pkg/cornermetrics"
)

// loadImage reads an image as a single-channel float32 Mat scaled to [0, 1].
func loadImage(path string) (cm.Mat, int, int, error) {
	src := gocv.IMRead(path, gocv.IMReadGrayScale)
	if src.Empty() {
		return cm.Mat{}, 0, 0, fmt.Errorf("could not load image: %s", path)
	}
	defer src.Close()

	w, h := src.Cols(), src.Rows()

	floatMat := gocv.NewMat()
	defer floatMat.Close()
	src.ConvertTo(&floatMat, gocv.MatTypeCV32F)
	data, _ := floatMat.DataPtrFloat32()

	out := cm.NewMatWithSize(h, w)
	dst := out.DataFloat32()
	for i := range dst {
		dst[i] = data[i] / 255.0
	}
	return out, w, h, nil
}
