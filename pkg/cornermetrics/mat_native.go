//go:build !purego && !js

package cornermetrics

import (
	"image"

	"gocv.io/x/gocv"
)

// Mat wraps gocv.Mat for the native OpenCV backend. Every Mat created by
// this package is single-channel CV_32F.
type Mat struct {
	m gocv.Mat
}

func NewMat() Mat { return Mat{m: gocv.NewMat()} }

func NewMatWithSize(rows, cols int) Mat {
	return Mat{m: gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV32F)}
}

func (mat Mat) Rows() int   { return mat.m.Rows() }
func (mat Mat) Cols() int   { return mat.m.Cols() }
func (mat Mat) Empty() bool { return mat.m.Empty() }
func (mat Mat) Clone() Mat  { return Mat{m: mat.m.Clone()} }
func (mat *Mat) Close()     { mat.m.Close() }

// DataFloat32 returns the backing float32 slice.
func (mat Mat) DataFloat32() []float32 {
	data, _ := mat.m.DataPtrFloat32()
	return data
}

// newKernelMat wraps 1-D filter taps as a column-vector Mat.
func newKernelMat(taps []float32) Mat {
	m := NewMatWithSize(len(taps), 1)
	copy(m.DataFloat32(), taps)
	return m
}

// --- CV operations ---

// sepFilter2DReflect correlates src with kernelX along rows and kernelY
// along columns, reflecting at the borders (reflect-101, the same policy
// as the pure backend). src and dst may be the same Mat.
func sepFilter2DReflect(src Mat, dst *Mat, kernelX, kernelY Mat) {
	gocv.SepFilter2D(src.m, &dst.m, gocv.MatTypeCV32F, kernelX.m, kernelY.m, image.Pt(-1, -1), 0, gocv.BorderReflect101)
}

// dilate3x3Reflect sets each dst pixel to the maximum of its 3x3
// neighborhood.
func dilate3x3Reflect(src Mat, dst *Mat) {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(3, 3))
	defer kernel.Close()
	gocv.MorphologyExWithParams(src.m, &dst.m, gocv.MorphDilate, kernel, 1, gocv.BorderReflect101)
}

// multiplyElements computes dst = a*b elementwise.
func multiplyElements(a, b Mat, dst *Mat) {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		panic("cornermetrics: elementwise multiply size mismatch")
	}
	gocv.Multiply(a.m, b.m, &dst.m)
}

// maxValue returns the largest value in m, or 0 for an empty Mat.
func maxValue(m Mat) float32 {
	if m.Empty() {
		return 0
	}
	_, maxVal, _, _ := gocv.MinMaxLoc(m.m)
	return maxVal
}

// maxAbsValue returns the largest absolute value in m, or 0 for an empty Mat.
func maxAbsValue(m Mat) float32 {
	if m.Empty() {
		return 0
	}
	minVal, maxVal, _, _ := gocv.MinMaxLoc(m.m)
	if -minVal > maxVal {
		return -minVal
	}
	return maxVal
}
