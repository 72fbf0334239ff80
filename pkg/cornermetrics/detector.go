package cornermetrics

import (
	"fmt"
	"math"
	"sync"
)

// harrisAlpha is the empirical trace weight in the Harris response.
const harrisAlpha = 0.06

// CornerDetector finds corner keypoints in a single-channel float32 image
// using a windowed structure tensor. The three sampling kernels are derived
// once at construction and reused across every Detect call; the detector
// holds no other state, so a single instance can detect on any number of
// images.
type CornerDetector struct {
	metric       Metric
	visualize    bool
	qualityLevel float64
	windowSigma  float64
	sink         DebugSink

	gKernel   Mat // Gaussian smoothing taps for the gradient estimate
	dgKernel  Mat // derivative-of-Gaussian taps
	winKernel Mat // windowing Gaussian for the structure tensor
}

// NewCornerDetector validates the params and builds the detector's kernels.
// Non-positive sigmas and a quality level outside (0, 1] are configuration
// errors and fail here rather than being coerced.
func NewCornerDetector(p *CornerDetectorParams) (*CornerDetector, error) {
	if p.QualityLevel <= 0 || p.QualityLevel > 1 {
		return nil, fmt.Errorf("quality level must be in (0, 1], got %g", p.QualityLevel)
	}
	gTaps, err := gaussianKernel1D(p.GradientSigma)
	if err != nil {
		return nil, fmt.Errorf("gradient kernel: %w", err)
	}
	dgTaps, err := derivGaussianKernel1D(p.GradientSigma)
	if err != nil {
		return nil, fmt.Errorf("gradient kernel: %w", err)
	}
	winTaps, err := gaussianKernel1D(p.WindowSigma)
	if err != nil {
		return nil, fmt.Errorf("window kernel: %w", err)
	}
	return &CornerDetector{
		metric:       p.Metric,
		visualize:    p.Visualize,
		qualityLevel: p.QualityLevel,
		windowSigma:  p.WindowSigma,
		sink:         p.Sink,
		gKernel:      newKernelMat(gTaps),
		dgKernel:     newKernelMat(dgTaps),
		winKernel:    newKernelMat(winTaps),
	}, nil
}

// Close releases the kernel buffers.
func (d *CornerDetector) Close() {
	d.gKernel.Close()
	d.dgKernel.Close()
	d.winKernel.Close()
}

// Detect runs the full pipeline on one image and returns the detected
// keypoints in row-major scan order. The input is not modified and no
// state is carried between calls.
func (d *CornerDetector) Detect(img Mat) []KeyPoint {
	// Estimate image gradients: differentiate along one axis while
	// smoothing along the other.
	ix := NewMat()
	defer ix.Close()
	iy := NewMat()
	defer iy.Close()
	sepFilter2DReflect(img, &ix, d.dgKernel, d.gKernel)
	sepFilter2DReflect(img, &iy, d.gKernel, d.dgKernel)

	a, b, c := d.structureTensor(ix, iy)
	defer a.Close()
	defer b.Close()
	defer c.Close()

	response := d.responseMap(a, b, c)
	defer response.Close()

	// Dilate so each pixel holds the maximum of its 3x3 neighborhood; a
	// pixel equal to its dilated value is a local maximum.
	localMax := NewMat()
	defer localMax.Close()
	dilate3x3Reflect(response, &localMax)

	showing := d.visualize && d.sink != nil

	var mask Mat
	var maskPtr *Mat
	if showing {
		maskPtr = &mask
		defer mask.Close()
	}
	keyPoints := d.extractKeyPoints(response, localMax, responseFloor(img), maskPtr)

	if showing {
		d.sink.Show("gradient-ix", ix)
		d.sink.Show("gradient-iy", iy)
		d.sink.Show("tensor-a", a)
		d.sink.Show("tensor-b", b)
		d.sink.Show("tensor-c", c)
		d.sink.Show("response", response)
		d.sink.Show("local-max", mask)
	}

	return keyPoints
}

// structureTensor forms the windowed second-moment components of the
// gradient field: A = Ix*Ix, B = Ix*Iy, C = Iy*Iy, each smoothed with the
// window Gaussian along both axes. The window taps are non-negative, so A
// and C stay non-negative. Each smoothing pass owns exactly one buffer, so
// the three passes run concurrently without changing the result.
func (d *CornerDetector) structureTensor(ix, iy Mat) (a, b, c Mat) {
	a, b, c = NewMat(), NewMat(), NewMat()
	multiplyElements(ix, ix, &a)
	multiplyElements(ix, iy, &b)
	multiplyElements(iy, iy, &c)

	var wg sync.WaitGroup
	for _, m := range []*Mat{&a, &b, &c} {
		wg.Add(1)
		go func(m *Mat) {
			defer wg.Done()
			sepFilter2DReflect(*m, m, d.winKernel, d.winKernel)
		}(m)
	}
	wg.Wait()
	return a, b, c
}

// responseMap reduces the tensor components to the scalar cornerness map
// for the configured metric. The components must agree in size; a mismatch
// means a pipeline stage broke its contract.
func (d *CornerDetector) responseMap(a, b, c Mat) Mat {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() ||
		a.Rows() != c.Rows() || a.Cols() != c.Cols() {
		panic("cornermetrics: tensor component size mismatch")
	}
	switch d.metric {
	case MetricHarris:
		return harrisResponse(a, b, c)
	case MetricHarmonicMean:
		return harmonicMeanResponse(a, c)
	case MetricMinEigen:
		return minEigenResponse(a, b, c)
	default:
		panic(fmt.Sprintf("cornermetrics: unknown metric %d", d.metric))
	}
}

// harrisResponse computes det(M) - alpha*trace(M)^2 per pixel, clamped at
// zero: flat and edge regions score at or below zero before the clamp.
func harrisResponse(a, b, c Mat) Mat {
	out := NewMatWithSize(a.Rows(), a.Cols())
	ad, bd, cd, od := a.DataFloat32(), b.DataFloat32(), c.DataFloat32(), out.DataFloat32()
	for i := range od {
		det := ad[i]*cd[i] - bd[i]*bd[i]
		tr := ad[i] + cd[i]
		r := det - harrisAlpha*tr*tr
		if r < 0 {
			r = 0
		}
		od[i] = r
	}
	return out
}

// harmonicMeanResponse computes A*C/(A+C) per pixel. A zero-gradient pixel
// has A+C == 0 and yields 0 rather than a division fault.
func harmonicMeanResponse(a, c Mat) Mat {
	out := NewMatWithSize(a.Rows(), a.Cols())
	ad, cd, od := a.DataFloat32(), c.DataFloat32(), out.DataFloat32()
	for i := range od {
		tr := ad[i] + cd[i]
		if tr == 0 {
			od[i] = 0
			continue
		}
		od[i] = ad[i] * cd[i] / tr
	}
	return out
}

// minEigenResponse computes the smaller eigenvalue of [[A,B],[B,C]] per
// pixel via the closed-form 2x2 symmetric solution. The discriminant is
// mathematically non-negative but can dip below zero in floating point,
// so it is clamped before the square root.
func minEigenResponse(a, b, c Mat) Mat {
	out := NewMatWithSize(a.Rows(), a.Cols())
	ad, bd, cd, od := a.DataFloat32(), b.DataFloat32(), c.DataFloat32(), out.DataFloat32()
	for i := range od {
		tr := float64(ad[i]) + float64(cd[i])
		det := float64(ad[i])*float64(cd[i]) - float64(bd[i])*float64(bd[i])
		disc := tr*tr - 4*det
		if disc < 0 {
			disc = 0
		}
		od[i] = float32((tr - math.Sqrt(disc)) / 2)
	}
	return out
}

// gradientNoiseRel bounds the relative magnitude of the spurious
// gradients the float32 convolution chain produces on a constant image.
// Measured rounding error stays within a few machine epsilons of the
// image magnitude; the bound carries a wide safety margin on top.
const gradientNoiseRel = 1e-4

// responseFloor is the cornerness level below which a response is
// indistinguishable from convolution rounding noise for the given input.
// Every metric scales with the squared gradient, so the floor is the
// square of the gradient noise bound.
func responseFloor(img Mat) float64 {
	noise := float64(maxAbsValue(img)) * gradientNoiseRel
	return noise * noise
}

// extractKeyPoints emits one keypoint per pixel that is a local maximum
// with a response above floor and at or above qualityLevel times the
// global maximum. Plateaus of equal maximal value all qualify; the floor
// keeps flat and near-flat images empty at any quality level (their
// whole response map is rounding noise) while quality 1.0 still returns
// the global-max plateau. When mask is non-nil it receives the
// qualifying pixels as a 0/1 buffer.
func (d *CornerDetector) extractKeyPoints(response, localMax Mat, floor float64, mask *Mat) []KeyPoint {
	rows, cols := response.Rows(), response.Cols()
	resp := response.DataFloat32()
	lm := localMax.DataFloat32()
	threshold := float64(maxValue(response)) * d.qualityLevel

	var maskData []float32
	if mask != nil {
		*mask = NewMatWithSize(rows, cols)
		maskData = mask.DataFloat32()
	}

	size := 3 * d.windowSigma
	keyPoints := make([]KeyPoint, 0, 64)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := r*cols + c
			v := float64(resp[i])
			if v <= floor || v < threshold || resp[i] != lm[i] {
				continue
			}
			if maskData != nil {
				maskData[i] = 1
			}
			keyPoints = append(keyPoints, KeyPoint{
				X:        float64(c),
				Y:        float64(r),
				Size:     size,
				Angle:    -1,
				Response: v,
			})
		}
	}
	return keyPoints
}
