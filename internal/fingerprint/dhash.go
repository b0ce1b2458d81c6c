package fingerprint

import (
	"image"

	"github.com/arikiri/imagedup/internal/imgproc"
	"github.com/arikiri/imagedup/pkg/api"
)

const (
	dhashWidth  = 9
	dhashHeight = 8
)

// ComputeDifference computes the difference hash: resize to 9x8, grayscale,
// then for each row compare each pixel to its right-hand neighbor, bit='1'
// iff pixel[x,y] > pixel[x+1,y].
func ComputeDifference(img image.Image) (api.HashResult, error) {
	orig := img.Bounds()
	resized := imgproc.ResizeExact(img, dhashWidth, dhashHeight)
	gray := imgproc.ToGrayscale(resized)
	b := gray.Bounds()

	bits := make([]byte, 0, dhashHeight*(dhashWidth-1))
	for y := 0; y < dhashHeight; y++ {
		for x := 0; x < dhashWidth-1; x++ {
			current := gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			next := gray.GrayAt(b.Min.X+x+1, b.Min.Y+y).Y
			if current > next {
				bits = append(bits, '1')
			} else {
				bits = append(bits, '0')
			}
		}
	}

	return api.HashResult{Hash: string(bits), Width: uint32(orig.Dx()), Height: uint32(orig.Dy())}, nil
}
