package cornermetrics

import (
	"fmt"
	"math"
)

// kernelRadius is the sampled half-support of a Gaussian with the given
// sigma, truncated at 3 sigma.
func kernelRadius(sigma float64) int {
	return int(math.Ceil(3 * sigma))
}

// gaussianKernel1D samples a normalized 1-D Gaussian over +-3 sigma.
// The taps sum to 1. Both Mat backends sample these same taps, so the
// two builds stay numerically aligned.
func gaussianKernel1D(sigma float64) ([]float32, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("gaussian kernel: sigma must be positive, got %g", sigma)
	}
	radius := kernelRadius(sigma)
	taps := make([]float32, 2*radius+1)
	sum := 0.0
	for i := -radius; i <= radius; i++ {
		v := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		taps[i+radius] = float32(v)
		sum += v
	}
	for i := range taps {
		taps[i] = float32(float64(taps[i]) / sum)
	}
	return taps, nil
}

// derivGaussianKernel1D samples the first derivative of a Gaussian over
// +-3 sigma. The taps are scaled so that correlating a unit ramp yields
// exactly 1, approximating the analytic derivative.
func derivGaussianKernel1D(sigma float64) ([]float32, error) {
	if sigma <= 0 {
		return nil, fmt.Errorf("derivative kernel: sigma must be positive, got %g", sigma)
	}
	radius := kernelRadius(sigma)
	taps := make([]float32, 2*radius+1)
	norm := 0.0
	for i := -radius; i <= radius; i++ {
		v := float64(i) * math.Exp(-float64(i*i)/(2*sigma*sigma))
		taps[i+radius] = float32(v)
		norm += float64(i) * v
	}
	for i := range taps {
		taps[i] = float32(float64(taps[i]) / norm)
	}
	return taps, nil
}
