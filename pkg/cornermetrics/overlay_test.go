package cornermetrics

import (
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderKeypointOverlay(t *testing.T) {
	src := squareImage(9, 2, 6)
	defer src.Close()

	keyPoints := []KeyPoint{
		{X: 2, Y: 2, Size: 4.5, Angle: -1, Response: 0.01},
		{X: 6, Y: 6, Size: 4.5, Angle: -1, Response: 0.01},
	}
	img := RenderKeypointOverlay(src, keyPoints, MetricHarris)

	if img.Bounds().Dx() != 9 || img.Bounds().Dy() != 9+20 {
		t.Fatalf("overlay is %v, want 9x29", img.Bounds())
	}

	// The cross marker recolors the keypoint centers.
	for _, kp := range keyPoints {
		c := img.RGBAAt(int(kp.X), int(kp.Y))
		if c.R != 255 || c.G != 80 || c.B != 80 {
			t.Errorf("keypoint center (%g,%g) not marked: %v", kp.X, kp.Y, c)
		}
	}
}

func TestSaveKeypointOverlay(t *testing.T) {
	src := squareImage(9, 2, 6)
	defer src.Close()

	path := filepath.Join(t.TempDir(), "overlay.jpg")
	if err := SaveKeypointOverlay(src, nil, MetricMinEigen, path); err != nil {
		t.Fatalf("SaveKeypointOverlay: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := jpeg.Decode(f)
	if err != nil {
		t.Fatalf("decode overlay: %v", err)
	}
	if img.Bounds().Dx() != 9 {
		t.Errorf("overlay width %d, want 9", img.Bounds().Dx())
	}
}
