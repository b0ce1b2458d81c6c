package imgproc

import (
	"image"

	"github.com/nfnt/resize"
)

// MaxFingerprintDimension bounds the resolution an oversized source image is
// downsampled to before any fingerprint algorithm runs, keeping a single
// large input from dominating a request's memory budget.
const MaxFingerprintDimension = 4096

// Pyramid downsamples img in successive halvings until both dimensions fit
// within MaxFingerprintDimension. It uses nfnt/resize's independent Lanczos3
// path rather than the primary decode/resize pipeline, since this is a
// one-off bound on pathological inputs rather than the per-algorithm exact
// resize every fingerprint computation performs afterward.
func Pyramid(img image.Image) image.Image {
	b := img.Bounds()
	w, h := uint(b.Dx()), uint(b.Dy())
	if w <= MaxFingerprintDimension && h <= MaxFingerprintDimension {
		return img
	}

	for w > MaxFingerprintDimension || h > MaxFingerprintDimension {
		w /= 2
		h /= 2
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return resize.Resize(w, h, img, resize.Lanczos3)
}
