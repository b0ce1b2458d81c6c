package fingerprint

import (
	"image"
	"math"

	"github.com/arikiri/imagedup/internal/imgproc"
	"github.com/arikiri/imagedup/internal/mathutil"
	"github.com/arikiri/imagedup/pkg/api"
)

const (
	phashSourceSize = 32
	phashCoeffSize  = 8
)

// ComputePerceptual computes the canonical perceptual hash: resize to
// 32x32, grayscale, take the top-left 8x8 submatrix of the 2-D DCT-II
// (including the DC coefficient at [0][0]), then one bit per coefficient,
// '1' iff the coefficient is strictly greater than the median of all 64.
//
// The DC coefficient is included here by design of this variant; see
// ComputeWeighted for the DC-excluding, frequency-weighted alternative.
func ComputePerceptual(img image.Image) (api.HashResult, error) {
	orig := img.Bounds()
	coeffs, err := dctCoeffs(img)
	if err != nil {
		return api.HashResult{}, err
	}

	values := make([]float64, 0, phashCoeffSize*phashCoeffSize)
	for y := 0; y < phashCoeffSize; y++ {
		values = append(values, coeffs[y]...)
	}
	median := mathutil.Median(values)

	bits := make([]byte, 0, len(values))
	for _, v := range values {
		if v > median {
			bits = append(bits, '1')
		} else {
			bits = append(bits, '0')
		}
	}

	return api.HashResult{Hash: string(bits), Width: uint32(orig.Dx()), Height: uint32(orig.Dy())}, nil
}

// ComputeWeighted is the non-default perceptual-hash variant: it excludes
// the DC coefficient and weights each remaining coefficient by
// 1 - (distance_to_origin / max_distance) before taking the median
// threshold. Exposed for callers that want the source system's historical
// default behavior; ComputePerceptual is the canonical form.
func ComputeWeighted(img image.Image) (api.HashResult, error) {
	orig := img.Bounds()
	coeffs, err := dctCoeffs(img)
	if err != nil {
		return api.HashResult{}, err
	}

	maxDist := math.Hypot(phashCoeffSize-1, phashCoeffSize-1)

	type cell struct {
		weighted float64
	}
	var cells []cell
	for y := 0; y < phashCoeffSize; y++ {
		for x := 0; x < phashCoeffSize; x++ {
			if y == 0 && x == 0 {
				continue
			}
			dist := math.Hypot(float64(x), float64(y))
			weight := 1 - dist/maxDist
			cells = append(cells, cell{weighted: coeffs[y][x] * weight})
		}
	}

	values := make([]float64, len(cells))
	for i, c := range cells {
		values[i] = c.weighted
	}
	median := mathutil.Median(values)

	bits := make([]byte, 0, len(values))
	for _, v := range values {
		if v > median {
			bits = append(bits, '1')
		} else {
			bits = append(bits, '0')
		}
	}

	return api.HashResult{Hash: string(bits), Width: uint32(orig.Dx()), Height: uint32(orig.Dy())}, nil
}

func dctCoeffs(img image.Image) ([][]float64, error) {
	resized := imgproc.ResizeExact(img, phashSourceSize, phashSourceSize)
	gray := imgproc.ToGrayscale(resized)
	matrix := imgproc.ToMatrix(gray)
	return mathutil.DCT2DTopLeft(matrix, phashCoeffSize, phashCoeffSize), nil
}
