package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	cm "cornermetrics/pkg/cornermetrics"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("cornermetrics", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: cornermetrics [-config file.yaml] <input-image>")
	}
	inputPath := fs.Arg(0)

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = LoadConfig(*configPath)
		if err != nil {
			return err
		}
	}

	params, err := cfg.DetectorParams()
	if err != nil {
		return err
	}

	var sink *cm.PNGSink
	if cfg.Visualize && cfg.DebugDir != "" {
		sink = &cm.PNGSink{Dir: cfg.DebugDir}
		params.Sink = sink
	}

	fmt.Printf("Loading: %s\n", inputPath)
	src, width, height, err := loadImage(inputPath)
	if err != nil {
		return err
	}
	defer src.Close()

	detector, err := cm.NewCornerDetector(params)
	if err != nil {
		return err
	}
	defer detector.Close()

	startTime := time.Now()
	keyPoints := detector.Detect(src)
	elapsed := time.Since(startTime)

	fmt.Println()
	fmt.Printf("=== Corner Detection Results (%.3fs) ===\n", elapsed.Seconds())
	fmt.Printf("  Image size:  %d x %d\n", width, height)
	fmt.Printf("  Metric:      %s\n", params.Metric)
	fmt.Printf("  Quality:     %.3f\n", params.QualityLevel)
	fmt.Printf("  Keypoints:   %d\n", len(keyPoints))
	for _, kp := range keyPoints {
		fmt.Printf("    (%6.1f, %6.1f)  size=%.1f  response=%.6g\n", kp.X, kp.Y, kp.Size, kp.Response)
	}
	fmt.Println("==============================")

	if sink != nil {
		if err := sink.Flush(); err != nil {
			return fmt.Errorf("writing debug images: %w", err)
		}
		fmt.Printf("Debug images written to %s\n", cfg.DebugDir)
	}

	if cfg.OverlayPath != "" {
		if err := cm.SaveKeypointOverlay(src, keyPoints, params.Metric, cfg.OverlayPath); err != nil {
			return fmt.Errorf("writing overlay: %w", err)
		}
		fmt.Printf("Overlay written to %s\n", cfg.OverlayPath)
	}

	return nil
}
