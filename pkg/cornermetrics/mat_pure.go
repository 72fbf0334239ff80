//go:build purego || js

package cornermetrics

// Mat is a pure Go single-channel float32 image, row-major and contiguous.
type Mat struct {
	data []float32
	rows int
	cols int
}

func NewMat() Mat { return Mat{} }

func NewMatWithSize(rows, cols int) Mat {
	return Mat{data: make([]float32, rows*cols), rows: rows, cols: cols}
}

func (m Mat) Rows() int   { return m.rows }
func (m Mat) Cols() int   { return m.cols }
func (m Mat) Empty() bool { return m.data == nil || m.rows == 0 || m.cols == 0 }

func (m Mat) Clone() Mat {
	out := NewMatWithSize(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

func (m *Mat) Close() {
	m.data = nil
	m.rows = 0
	m.cols = 0
}

// DataFloat32 returns the backing float32 slice.
func (m Mat) DataFloat32() []float32 { return m.data }

// newKernelMat wraps 1-D filter taps as a column-vector Mat.
func newKernelMat(taps []float32) Mat {
	m := NewMatWithSize(len(taps), 1)
	copy(m.data, taps)
	return m
}

// --- Pure Go CV operations ---

// reflectIndex mirrors an out-of-range index about the edge pixel
// (reflect-101 border): -1 -> 1, size -> size-2.
func reflectIndex(idx, size int) int {
	if idx < 0 {
		idx = -idx
	}
	for idx >= size {
		idx = 2*size - 2 - idx
		if idx < 0 {
			idx = -idx
		}
	}
	return idx
}

// sepFilter2DReflect correlates src with kernelX along rows and kernelY
// along columns, reflecting at the borders. src and dst may be the same
// Mat.
func sepFilter2DReflect(src Mat, dst *Mat, kernelX, kernelY Mat) {
	rows, cols := src.rows, src.cols
	srcData := src.data
	kx := kernelX.data
	ky := kernelY.data
	kxHalf := len(kx) / 2
	kyHalf := len(ky) / 2

	if dst.rows != rows || dst.cols != cols || dst.data == nil {
		*dst = NewMatWithSize(rows, cols)
	}

	temp := make([]float32, rows*cols)

	// Horizontal pass — split into border and interior
	for r := 0; r < rows; r++ {
		rowOff := r * cols
		// Left border
		for c := 0; c < kxHalf && c < cols; c++ {
			var sum float32
			for k := range kx {
				cc := reflectIndex(c+k-kxHalf, cols)
				sum += srcData[rowOff+cc] * kx[k]
			}
			temp[rowOff+c] = sum
		}
		// Interior — no bounds check needed
		for c := kxHalf; c < cols-kxHalf; c++ {
			var sum float32
			base := rowOff + c - kxHalf
			for k := range kx {
				sum += srcData[base+k] * kx[k]
			}
			temp[rowOff+c] = sum
		}
		// Right border
		for c := cols - kxHalf; c < cols; c++ {
			if c < kxHalf {
				continue // already handled in left border for tiny images
			}
			var sum float32
			for k := range kx {
				cc := reflectIndex(c+k-kxHalf, cols)
				sum += srcData[rowOff+cc] * kx[k]
			}
			temp[rowOff+c] = sum
		}
	}

	// Vertical pass — pre-compute row offsets to avoid multiply in inner loop
	dstData := dst.data
	rowOffs := make([]int, len(ky))

	// Top border rows
	for r := 0; r < kyHalf && r < rows; r++ {
		for k := range ky {
			rowOffs[k] = reflectIndex(r+k-kyHalf, rows) * cols
		}
		dstOff := r * cols
		for c := 0; c < cols; c++ {
			var sum float32
			for k := range ky {
				sum += temp[rowOffs[k]+c] * ky[k]
			}
			dstData[dstOff+c] = sum
		}
	}
	// Interior rows
	for r := kyHalf; r < rows-kyHalf; r++ {
		for k := range ky {
			rowOffs[k] = (r + k - kyHalf) * cols
		}
		dstOff := r * cols
		for c := 0; c < cols; c++ {
			var sum float32
			for k := range ky {
				sum += temp[rowOffs[k]+c] * ky[k]
			}
			dstData[dstOff+c] = sum
		}
	}
	// Bottom border rows
	for r := rows - kyHalf; r < rows; r++ {
		if r < kyHalf {
			continue
		}
		for k := range ky {
			rowOffs[k] = reflectIndex(r+k-kyHalf, rows) * cols
		}
		dstOff := r * cols
		for c := 0; c < cols; c++ {
			var sum float32
			for k := range ky {
				sum += temp[rowOffs[k]+c] * ky[k]
			}
			dstData[dstOff+c] = sum
		}
	}
}

// dilate3x3Reflect sets each dst pixel to the maximum of its 3x3
// neighborhood, reflecting at the borders.
func dilate3x3Reflect(src Mat, dst *Mat) {
	rows, cols := src.rows, src.cols
	if dst.rows != rows || dst.cols != cols || dst.data == nil {
		*dst = NewMatWithSize(rows, cols)
	}
	sd := src.data
	dd := dst.data
	for r := 0; r < rows; r++ {
		r0 := reflectIndex(r-1, rows) * cols
		r1 := r * cols
		r2 := reflectIndex(r+1, rows) * cols
		for c := 0; c < cols; c++ {
			c0 := reflectIndex(c-1, cols)
			c2 := reflectIndex(c+1, cols)
			maxv := sd[r1+c]
			for _, v := range [8]float32{
				sd[r0+c0], sd[r0+c], sd[r0+c2],
				sd[r1+c0], sd[r1+c2],
				sd[r2+c0], sd[r2+c], sd[r2+c2],
			} {
				if v > maxv {
					maxv = v
				}
			}
			dd[r1+c] = maxv
		}
	}
}

// multiplyElements computes dst = a*b elementwise.
func multiplyElements(a, b Mat, dst *Mat) {
	if a.rows != b.rows || a.cols != b.cols {
		panic("cornermetrics: elementwise multiply size mismatch")
	}
	if dst.rows != a.rows || dst.cols != a.cols || dst.data == nil {
		*dst = NewMatWithSize(a.rows, a.cols)
	}
	ad, bd, dd := a.data, b.data, dst.data
	for i := range dd {
		dd[i] = ad[i] * bd[i]
	}
}

// maxValue returns the largest value in m, or 0 for an empty Mat.
func maxValue(m Mat) float32 {
	if len(m.data) == 0 {
		return 0
	}
	maxv := m.data[0]
	for _, v := range m.data[1:] {
		if v > maxv {
			maxv = v
		}
	}
	return maxv
}

// maxAbsValue returns the largest absolute value in m, or 0 for an empty Mat.
func maxAbsValue(m Mat) float32 {
	var maxv float32
	for _, v := range m.data {
		if v < 0 {
			v = -v
		}
		if v > maxv {
			maxv = v
		}
	}
	return maxv
}
