package cornermetrics

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// RenderKeypointOverlay draws the detected keypoints over the source image:
// one circle per keypoint (radius Size/2) with a center cross, plus a
// summary line below the image.
func RenderKeypointOverlay(src Mat, keyPoints []KeyPoint, metric Metric) *image.RGBA {
	rows, cols := src.Rows(), src.Cols()
	const summaryH = 20
	img := image.NewRGBA(image.Rect(0, 0, cols, rows+summaryH))

	// Grayscale backdrop from the source buffer.
	data := src.DataFloat32()
	if len(data) > 0 {
		minV, maxV := matValueRange(data)
		scale := 0.0
		if maxV > minV {
			scale = 255.0 / float64(maxV-minV)
		}
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				g := uint8(float64(data[y*cols+x]-minV) * scale)
				img.SetRGBA(x, y, color.RGBA{R: g, G: g, B: g, A: 255})
			}
		}
	}
	for y := rows; y < rows+summaryH; y++ {
		for x := 0; x < cols; x++ {
			img.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}

	markColor := color.RGBA{R: 255, G: 80, B: 80, A: 255}
	for _, kp := range keyPoints {
		cx := int(math.Round(kp.X))
		cy := int(math.Round(kp.Y))
		radius := int(math.Round(kp.Size / 2))
		if radius < 2 {
			radius = 2
		}
		drawCircle(img, cx, cy, radius, markColor)
		drawLine(img, cx-1, cy, cx+1, cy, markColor)
		drawLine(img, cx, cy-1, cx, cy+1, markColor)
	}

	summary := fmt.Sprintf("%s: %d corners", metric, len(keyPoints))
	drawText(img, basicfont.Face7x13, summary, 4, rows+summaryH-6, color.RGBA{R: 220, G: 220, B: 220, A: 255})
	return img
}

// SaveKeypointOverlay renders the overlay and writes it as a JPEG file.
func SaveKeypointOverlay(src Mat, keyPoints []KeyPoint, metric Metric, outputPath string) error {
	img := RenderKeypointOverlay(src, keyPoints, metric)
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create overlay file: %w", err)
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// drawText draws a string at (x, y) using the given font face.
func drawText(img *image.RGBA, face font.Face, s string, x, y int, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawCircle draws a circle outline using the midpoint algorithm.
func drawCircle(img *image.RGBA, cx, cy, radius int, c color.RGBA) {
	x := radius
	y := 0
	err := 0

	for x >= y {
		img.Set(cx+x, cy+y, c)
		img.Set(cx+y, cy+x, c)
		img.Set(cx-y, cy+x, c)
		img.Set(cx-x, cy+y, c)
		img.Set(cx-x, cy-y, c)
		img.Set(cx-y, cy-x, c)
		img.Set(cx+y, cy-x, c)
		img.Set(cx+x, cy-y, c)

		y++
		err += 1 + 2*y
		if 2*(err-x)+1 > 0 {
			x--
			err += 1 - 2*x
		}
	}
}

// drawLine draws a line between two points using Bresenham's algorithm.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	dx := intAbs(x1 - x0)
	dy := -intAbs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		img.Set(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func intAbs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
