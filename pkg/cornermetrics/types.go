package cornermetrics

import (
	"fmt"
	"strings"
)

// Metric selects the cornerness response computed from the structure
// tensor components.
type Metric int

const (
	MetricHarris Metric = iota
	MetricHarmonicMean
	MetricMinEigen
)

func (m Metric) String() string {
	switch m {
	case MetricHarris:
		return "Harris"
	case MetricHarmonicMean:
		return "HarmonicMean"
	case MetricMinEigen:
		return "MinEigen"
	default:
		return "Unknown"
	}
}

// ParseMetric resolves a metric name as used in config files. Accepted
// spellings are case-insensitive with optional "-" or "_" separators.
func ParseMetric(s string) (Metric, error) {
	normalized := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	switch normalized {
	case "harris":
		return MetricHarris, nil
	case "harmonicmean":
		return MetricHarmonicMean, nil
	case "mineigen":
		return MetricMinEigen, nil
	}
	return 0, fmt.Errorf("unknown metric %q (want harris, harmonic-mean, or min-eigen)", s)
}

// KeyPoint is a detected corner.
type KeyPoint struct {
	X, Y     float64 // location in pixel coordinates
	Size     float64 // keypoint diameter, 3x the window sigma
	Angle    float64 // -1: orientation is not estimated
	Response float64 // response map value at (X, Y)
}

// CornerDetectorParams configures a CornerDetector. All values are fixed
// for the detector's lifetime at construction.
type CornerDetectorParams struct {
	Metric        Metric
	QualityLevel  float64 // fraction of the global max response, in (0, 1]
	GradientSigma float64 // sigma of the gradient smoothing/derivative kernels
	WindowSigma   float64 // sigma of the structure tensor window
	Visualize     bool    // show intermediate buffers on Sink
	Sink          DebugSink
}

// NewCornerDetectorParams returns params with default values.
func NewCornerDetectorParams() *CornerDetectorParams {
	return &CornerDetectorParams{
		Metric:        MetricHarris,
		QualityLevel:  0.1,
		GradientSigma: 1.0,
		WindowSigma:   1.5,
	}
}

// DebugSink receives intermediate pipeline buffers when visualization is
// enabled. The detector releases each buffer after Detect returns, so
// implementations must clone anything they keep. Detection never depends
// on a sink being present or succeeding.
type DebugSink interface {
	Show(label string, m Mat)
}
