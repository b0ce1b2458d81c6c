package fingerprint

import (
	"image"

	"github.com/arikiri/imagedup/internal/imgproc"
	"github.com/arikiri/imagedup/pkg/api"
)

// ComputePath decodes the image at path and computes its fingerprint under
// algorithm, the single entry point the detection pipeline and CLI use.
func ComputePath(path string, algorithm api.Algorithm) (api.HashResult, error) {
	img, err := imgproc.Decode(path)
	if err != nil {
		return api.HashResult{}, err
	}
	return Compute(img, algorithm)
}

// Compute dispatches to the algorithm-specific fingerprint function. The
// result's Width and Height are img's own dimensions, even when an oversized
// img is downsampled by imgproc.Pyramid before fingerprinting.
func Compute(img image.Image, algorithm api.Algorithm) (result api.HashResult, err error) {
	orig := img.Bounds()
	defer func() {
		if err == nil {
			result.Width, result.Height = uint32(orig.Dx()), uint32(orig.Dy())
		}
	}()
	img = imgproc.Pyramid(img)

	switch algorithm {
	case api.Exact:
		return ComputeExact(img)
	case api.Average:
		return ComputeAverage(img)
	case api.Difference:
		return ComputeDifference(img)
	case api.Perceptual:
		return ComputePerceptual(img)
	case api.ORB:
		return ComputeORB(img)
	default:
		return api.HashResult{}, api.NewError(api.InvalidInput, "unknown algorithm")
	}
}
