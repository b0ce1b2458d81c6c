// Package imgproc decodes images and prepares them for fingerprinting:
// exact (non-aspect-preserving) resize, grayscale conversion, and float64
// matrix extraction for the DCT-based algorithms.
package imgproc

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/arikiri/imagedup/pkg/api"
)

// MinDimension is the smallest width or height FAST keypoint detection can
// operate on; below this, ORB reports ImageTooSmall.
const MinDimension = 12

// Decode opens and decodes an image file, registering the standard library
// decoders plus golang.org/x/image's bmp/tiff/webp so the full supported
// extension set is actually readable.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, api.Wrap(api.IoError, "open image", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, api.Wrap(api.IoError, fmt.Sprintf("decode image %s", path), err)
	}
	return img, nil
}

// ResizeExact resizes img to exactly width x height using Lanczos
// resampling, without preserving aspect ratio. Hash algorithms depend on
// this exact, non-cropping behavior.
func ResizeExact(img image.Image, width, height int) image.Image {
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// ToGrayscale converts img to an 8-bit grayscale image.
func ToGrayscale(img image.Image) *image.Gray {
	gray := imaging.Grayscale(img)
	out := image.NewGray(gray.Bounds())
	for y := gray.Bounds().Min.Y; y < gray.Bounds().Max.Y; y++ {
		for x := gray.Bounds().Min.X; x < gray.Bounds().Max.X; x++ {
			r, _, _, _ := gray.At(x, y).RGBA()
			out.SetGray(x, y, color.Gray{Y: uint8(r >> 8)})
		}
	}
	return out
}

// ToMatrix converts a grayscale image into a row-major float64 matrix with
// values in [0,255], unnormalized — the input range the DCT kernels expect.
func ToMatrix(gray *image.Gray) [][]float64 {
	b := gray.Bounds()
	w, h := b.Dx(), b.Dy()
	m := make([][]float64, h)
	for y := 0; y < h; y++ {
		row := make([]float64, w)
		for x := 0; x < w; x++ {
			row[x] = float64(gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y)
		}
		m[y] = row
	}
	return m
}

// CheckMinDimension validates an image meets the minimum usable size for
// keypoint-based algorithms.
func CheckMinDimension(img image.Image) error {
	b := img.Bounds()
	if b.Dx() < MinDimension || b.Dy() < MinDimension {
		return api.NewError(api.ImageTooSmall, fmt.Sprintf("image %dx%d below minimum %dx%d", b.Dx(), b.Dy(), MinDimension, MinDimension))
	}
	return nil
}

// PixelBytes serializes the decoded image's pixels as a deterministic,
// row-major RGBA byte stream, used as the input to the Exact algorithm's
// SHA-256 digest.
func PixelBytes(img image.Image) []byte {
	b := img.Bounds()
	buf := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := img.At(x, y).RGBA()
			buf = append(buf, byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8))
		}
	}
	return buf
}
