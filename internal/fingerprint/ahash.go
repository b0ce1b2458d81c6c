package fingerprint

import (
	"image"

	"github.com/arikiri/imagedup/internal/imgproc"
	"github.com/arikiri/imagedup/pkg/api"
)

const ahashSize = 8

// ComputeAverage computes the average hash: resize to 8x8, grayscale, then
// one bit per pixel, '1' if the pixel's intensity is strictly greater than
// the image's mean intensity (truncated to an integer), in row-major order.
func ComputeAverage(img image.Image) (api.HashResult, error) {
	orig := img.Bounds()
	resized := imgproc.ResizeExact(img, ahashSize, ahashSize)
	gray := imgproc.ToGrayscale(resized)

	b := gray.Bounds()
	var sum uint32
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			sum += uint32(gray.GrayAt(x, y).Y)
		}
	}
	mean := uint8(sum / uint32(b.Dx()*b.Dy()))

	bits := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if gray.GrayAt(x, y).Y > mean {
				bits = append(bits, '1')
			} else {
				bits = append(bits, '0')
			}
		}
	}

	return api.HashResult{Hash: string(bits), Width: uint32(orig.Dx()), Height: uint32(orig.Dy())}, nil
}
