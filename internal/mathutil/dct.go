// Package mathutil holds the numerical kernels shared by the fingerprint
// algorithms: the 2-D DCT-II and the median used by pHash, plus general
// statistics helpers.
package mathutil

import "math"

func alpha(k, n int) float64 {
	if k == 0 {
		return math.Sqrt(1.0 / float64(n))
	}
	return math.Sqrt(2.0 / float64(n))
}

// DCT1D computes the 1-D DCT-II of input.
func DCT1D(input []float64) []float64 {
	n := len(input)
	cos := make([][]float64, n)
	for k := 0; k < n; k++ {
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			row[i] = math.Cos(math.Pi * float64(2*i+1) * float64(k) / (2 * float64(n)))
		}
		cos[k] = row
	}

	out := make([]float64, n)
	for k := 0; k < n; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += input[i] * cos[k][i]
		}
		out[k] = alpha(k, n) * sum
	}
	return out
}

// DCT2D computes the full separable 2-D DCT-II of a square matrix: a DCT-1D
// pass over every row, then over every column.
func DCT2D(matrix [][]float64) [][]float64 {
	h := len(matrix)
	rowPass := make([][]float64, h)
	for y := 0; y < h; y++ {
		rowPass[y] = DCT1D(matrix[y])
	}

	w := len(rowPass[0])
	out := make([][]float64, h)
	for y := range out {
		out[y] = make([]float64, w)
	}
	for x := 0; x < w; x++ {
		col := make([]float64, h)
		for y := 0; y < h; y++ {
			col[y] = rowPass[y][x]
		}
		colDCT := DCT1D(col)
		for y := 0; y < h; y++ {
			out[y][x] = colDCT[y]
		}
	}
	return out
}

// DCT2DTopLeft computes only the top-left outW x outH submatrix of the 2-D
// DCT-II of a square N x N matrix, reusing one precomputed cosine table
// (shared across the row and column pass, since the basis functions depend
// only on the coefficient index, not on row vs. column) — the fast path
// pHash needs instead of computing and discarding the full N x N transform.
func DCT2DTopLeft(matrix [][]float64, outW, outH int) [][]float64 {
	n := len(matrix)

	cosTable := make([][]float64, outW)
	if outH > outW {
		cosTable = make([][]float64, outH)
	}
	for k := range cosTable {
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			row[i] = math.Cos(math.Pi * float64(2*i+1) * float64(k) / (2 * float64(n)))
		}
		cosTable[k] = row
	}

	temp := make([][]float64, n)
	for y := 0; y < n; y++ {
		temp[y] = make([]float64, outW)
		for k := 0; k < outW; k++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += matrix[y][i] * cosTable[k][i]
			}
			temp[y][k] = alpha(k, n) * sum
		}
	}

	out := make([][]float64, outH)
	for k := 0; k < outH; k++ {
		out[k] = make([]float64, outW)
		for x := 0; x < outW; x++ {
			var sum float64
			for i := 0; i < n; i++ {
				sum += temp[i][x] * cosTable[k][i]
			}
			out[k][x] = alpha(k, n) * sum
		}
	}
	return out
}
