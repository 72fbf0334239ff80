package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	cm "cornermetrics/pkg/cornermetrics"
)

// Config holds the detector settings read from a YAML file.
type Config struct {
	Metric        string  `yaml:"metric"`
	QualityLevel  float64 `yaml:"quality_level"`
	GradientSigma float64 `yaml:"gradient_sigma"`
	WindowSigma   float64 `yaml:"window_sigma"`
	Visualize     bool    `yaml:"visualize"`
	DebugDir      string  `yaml:"debug_dir"`   // where PNGSink writes intermediate buffers
	OverlayPath   string  `yaml:"overlay_path"` // JPEG with keypoints drawn on the source
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Metric:        "harris",
		QualityLevel:  0.1,
		GradientSigma: 1.0,
		WindowSigma:   1.5,
	}
}

// LoadConfig reads a YAML config file. Fields absent from the file keep
// their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// DetectorParams converts the file values into detector parameters.
// Sigma and quality validation happens in NewCornerDetector.
func (c *Config) DetectorParams() (*cm.CornerDetectorParams, error) {
	metric, err := cm.ParseMetric(c.Metric)
	if err != nil {
		return nil, err
	}
	p := cm.NewCornerDetectorParams()
	p.Metric = metric
	p.QualityLevel = c.QualityLevel
	p.GradientSigma = c.GradientSigma
	p.WindowSigma = c.WindowSigma
	p.Visualize = c.Visualize
	return p, nil
}
