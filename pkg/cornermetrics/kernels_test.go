package cornermetrics

import (
	"math"
	"testing"
)

func TestGaussianKernelSymmetryAndSum(t *testing.T) {
	for _, sigma := range []float64{0.5, 1.0, 1.5, 2.7} {
		taps, err := gaussianKernel1D(sigma)
		if err != nil {
			t.Fatalf("sigma %g: %v", sigma, err)
		}

		wantLen := 2*int(math.Ceil(3*sigma)) + 1
		if len(taps) != wantLen {
			t.Errorf("sigma %g: kernel length %d, want %d", sigma, len(taps), wantLen)
		}

		sum := 0.0
		for _, v := range taps {
			sum += float64(v)
		}
		if math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("sigma %g: taps sum to %g, want 1", sigma, sum)
		}

		center := len(taps) / 2
		for i := 0; i <= center; i++ {
			if taps[i] != taps[len(taps)-1-i] {
				t.Errorf("sigma %g: taps[%d]=%g != taps[%d]=%g", sigma, i, taps[i], len(taps)-1-i, taps[len(taps)-1-i])
			}
		}
		for i := 0; i < len(taps); i++ {
			if taps[i] > taps[center] {
				t.Errorf("sigma %g: tap %d exceeds center tap", sigma, i)
			}
		}
	}
}

func TestDerivativeKernelProperties(t *testing.T) {
	for _, sigma := range []float64{0.8, 1.0, 2.0} {
		taps, err := derivGaussianKernel1D(sigma)
		if err != nil {
			t.Fatalf("sigma %g: %v", sigma, err)
		}

		center := len(taps) / 2
		if taps[center] != 0 {
			t.Errorf("sigma %g: center tap %g, want 0", sigma, taps[center])
		}
		for i := 0; i < center; i++ {
			if taps[i] != -taps[len(taps)-1-i] {
				t.Errorf("sigma %g: taps not antisymmetric at %d: %g vs %g", sigma, i, taps[i], taps[len(taps)-1-i])
			}
		}

		// Correlating a unit ramp must give exactly the analytic slope.
		ramp := 0.0
		for i, v := range taps {
			ramp += float64(i-center) * float64(v)
		}
		if math.Abs(ramp-1.0) > 1e-4 {
			t.Errorf("sigma %g: ramp response %g, want 1", sigma, ramp)
		}
	}
}

func TestKernelInvalidSigma(t *testing.T) {
	for _, sigma := range []float64{0, -0.5, -3} {
		if _, err := gaussianKernel1D(sigma); err == nil {
			t.Errorf("gaussianKernel1D(%g): expected error", sigma)
		}
		if _, err := derivGaussianKernel1D(sigma); err == nil {
			t.Errorf("derivGaussianKernel1D(%g): expected error", sigma)
		}
	}
}

func TestNewCornerDetectorValidation(t *testing.T) {
	tests := []struct {
		name    string
		params  CornerDetectorParams
		wantErr bool
	}{
		{"valid", CornerDetectorParams{Metric: MetricHarris, QualityLevel: 0.1, GradientSigma: 1, WindowSigma: 1.5}, false},
		{"zero gradient sigma", CornerDetectorParams{QualityLevel: 0.1, GradientSigma: 0, WindowSigma: 1.5}, true},
		{"negative window sigma", CornerDetectorParams{QualityLevel: 0.1, GradientSigma: 1, WindowSigma: -2}, true},
		{"zero quality", CornerDetectorParams{QualityLevel: 0, GradientSigma: 1, WindowSigma: 1.5}, true},
		{"quality above one", CornerDetectorParams{QualityLevel: 1.5, GradientSigma: 1, WindowSigma: 1.5}, true},
		{"quality exactly one", CornerDetectorParams{QualityLevel: 1, GradientSigma: 1, WindowSigma: 1.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewCornerDetector(&tt.params)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if d != nil {
				d.Close()
			}
		})
	}
}
