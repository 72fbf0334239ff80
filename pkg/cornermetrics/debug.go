package cornermetrics

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"
)

// PNGSink collects the buffers a detector shows and writes each one as a
// PNG file into Dir on Flush. The "response" buffer is rendered as a
// heatmap, everything else as min/max-normalized grayscale.
//
// Show clones every buffer, so frames stay valid after the detector
// releases its own copies. A PNGSink is not safe for concurrent Show
// calls; Detect shows buffers sequentially.
type PNGSink struct {
	Dir string

	frames []debugFrame
}

type debugFrame struct {
	label string
	m     Mat
}

func (s *PNGSink) Show(label string, m Mat) {
	s.frames = append(s.frames, debugFrame{label: label, m: m.Clone()})
}

// Flush writes all collected frames and releases them. PNG encoding is
// CPU-bound, so frames are written concurrently.
func (s *PNGSink) Flush() error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("debug dir: %w", err)
	}
	g := new(errgroup.Group)
	for _, frame := range s.frames {
		frame := frame
		g.Go(func() error {
			defer frame.m.Close()
			img := renderFrame(frame.label, frame.m)
			f, err := os.Create(filepath.Join(s.Dir, frame.label+".png"))
			if err != nil {
				return fmt.Errorf("debug frame %s: %w", frame.label, err)
			}
			defer f.Close()
			if err := png.Encode(f, img); err != nil {
				return fmt.Errorf("encode %s: %w", frame.label, err)
			}
			return nil
		})
	}
	err := g.Wait()
	s.frames = s.frames[:0]
	return err
}

func renderFrame(label string, m Mat) image.Image {
	if label == "response" {
		return renderHeatmap(m)
	}
	return renderGray(m)
}

func matValueRange(data []float32) (minV, maxV float32) {
	minV, maxV = data[0], data[0]
	for _, v := range data[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}

// renderGray maps the buffer to 8-bit grayscale, normalized to its own
// value range. A flat buffer renders black.
func renderGray(m Mat) *image.Gray {
	rows, cols := m.Rows(), m.Cols()
	img := image.NewGray(image.Rect(0, 0, cols, rows))
	data := m.DataFloat32()
	if len(data) == 0 {
		return img
	}
	minV, maxV := matValueRange(data)
	scale := 0.0
	if maxV > minV {
		scale = 255.0 / float64(maxV-minV)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := float64(data[r*cols+c]-minV) * scale
			img.SetGray(c, r, color.Gray{Y: uint8(v)})
		}
	}
	return img
}

// heatStops anchor the response heatmap from cold (low response) to hot.
var heatStops = []colorful.Color{
	{R: 0.02, G: 0.02, B: 0.20},
	{R: 0.85, G: 0.20, B: 0.09},
	{R: 0.98, G: 0.95, B: 0.64},
}

// heatColor blends between the stops in Luv space for a perceptually even
// gradient.
func heatColor(t float64) colorful.Color {
	if t <= 0 {
		return heatStops[0]
	}
	if t >= 1 {
		return heatStops[len(heatStops)-1]
	}
	scaled := t * float64(len(heatStops)-1)
	i := int(scaled)
	return heatStops[i].BlendLuv(heatStops[i+1], scaled-float64(i)).Clamped()
}

// renderHeatmap maps the buffer through the heat gradient, normalized to
// its own value range.
func renderHeatmap(m Mat) *image.RGBA {
	rows, cols := m.Rows(), m.Cols()
	img := image.NewRGBA(image.Rect(0, 0, cols, rows))
	data := m.DataFloat32()
	if len(data) == 0 {
		return img
	}
	minV, maxV := matValueRange(data)
	scale := 0.0
	if maxV > minV {
		scale = 1.0 / float64(maxV-minV)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			t := float64(data[r*cols+c]-minV) * scale
			cr, cg, cb := heatColor(t).RGB255()
			img.SetRGBA(c, r, color.RGBA{R: cr, G: cg, B: cb, A: 255})
		}
	}
	return img
}
