package cornermetrics

import (
	"math"
	"math/rand"
	"testing"
)

func newTestMat(rows, cols int, values []float32) Mat {
	m := NewMatWithSize(rows, cols)
	copy(m.DataFloat32(), values)
	return m
}

func randomMat(rows, cols int, seed int64) Mat {
	rng := rand.New(rand.NewSource(seed))
	m := NewMatWithSize(rows, cols)
	data := m.DataFloat32()
	for i := range data {
		data[i] = rng.Float32()
	}
	return m
}

func TestSepFilterIdentityKernel(t *testing.T) {
	src := randomMat(7, 9, 1)
	defer src.Close()
	identity := newKernelMat([]float32{1})
	defer identity.Close()

	dst := NewMat()
	defer dst.Close()
	sepFilter2DReflect(src, &dst, identity, identity)

	sd, dd := src.DataFloat32(), dst.DataFloat32()
	for i := range sd {
		if math.Abs(float64(sd[i]-dd[i])) > 1e-6 {
			t.Fatalf("pixel %d changed under identity kernel: %g -> %g", i, sd[i], dd[i])
		}
	}
}

func TestSepFilterConstantImage(t *testing.T) {
	const value = 0.37
	src := NewMatWithSize(8, 8)
	defer src.Close()
	data := src.DataFloat32()
	for i := range data {
		data[i] = value
	}

	taps, err := gaussianKernel1D(1.5)
	if err != nil {
		t.Fatal(err)
	}
	kernel := newKernelMat(taps)
	defer kernel.Close()

	dst := NewMat()
	defer dst.Close()
	sepFilter2DReflect(src, &dst, kernel, kernel)

	// A normalized kernel over a constant image returns the constant,
	// including at the reflected borders.
	for i, v := range dst.DataFloat32() {
		if math.Abs(float64(v)-value) > 1e-5 {
			t.Fatalf("pixel %d: %g, want %g", i, v, value)
		}
	}
}

func TestDilate3x3SinglePeak(t *testing.T) {
	src := NewMatWithSize(5, 5)
	defer src.Close()
	src.DataFloat32()[2*5+2] = 1.0

	dst := NewMat()
	defer dst.Close()
	dilate3x3Reflect(src, &dst)

	dd := dst.DataFloat32()
	for r := 0; r < 5; r++ {
		for c := 0; c < 5; c++ {
			want := float32(0)
			if r >= 1 && r <= 3 && c >= 1 && c <= 3 {
				want = 1
			}
			if dd[r*5+c] != want {
				t.Errorf("dilated[%d][%d] = %g, want %g", r, c, dd[r*5+c], want)
			}
		}
	}
}

func TestDilate3x3CornerPeak(t *testing.T) {
	src := NewMatWithSize(4, 4)
	defer src.Close()
	src.DataFloat32()[0] = 2.0

	dst := NewMat()
	defer dst.Close()
	dilate3x3Reflect(src, &dst)

	dd := dst.DataFloat32()
	if dd[0] != 2 || dd[1] != 2 || dd[4] != 2 || dd[5] != 2 {
		t.Errorf("corner peak did not propagate: %v", dd[:6])
	}
	if dd[2] != 0 {
		t.Errorf("dilated[0][2] = %g, want 0", dd[2])
	}
}

func TestMultiplyElements(t *testing.T) {
	a := newTestMat(2, 3, []float32{1, 2, 3, 4, 5, 6})
	defer a.Close()
	b := newTestMat(2, 3, []float32{2, 2, 2, 0.5, 0.5, 0.5})
	defer b.Close()

	dst := NewMat()
	defer dst.Close()
	multiplyElements(a, b, &dst)

	want := []float32{2, 4, 6, 2, 2.5, 3}
	for i, v := range dst.DataFloat32() {
		if math.Abs(float64(v-want[i])) > 1e-6 {
			t.Errorf("product[%d] = %g, want %g", i, v, want[i])
		}
	}
}

func TestMultiplyElementsSizeMismatchPanics(t *testing.T) {
	a := NewMatWithSize(2, 3)
	defer a.Close()
	b := NewMatWithSize(3, 2)
	defer b.Close()
	dst := NewMat()
	defer dst.Close()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on size mismatch")
		}
	}()
	multiplyElements(a, b, &dst)
}

func TestMaxValue(t *testing.T) {
	m := newTestMat(2, 2, []float32{-5, -1, -3, -2})
	defer m.Close()
	if got := maxValue(m); got != -1 {
		t.Errorf("maxValue = %g, want -1", got)
	}

	empty := NewMat()
	if got := maxValue(empty); got != 0 {
		t.Errorf("maxValue(empty) = %g, want 0", got)
	}
}
