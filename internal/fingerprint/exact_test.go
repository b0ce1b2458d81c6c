package fingerprint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkerboard(w, h int, a, b color.Gray) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x+y)%2 == 0 {
				img.SetGray(x, y, a)
			} else {
				img.SetGray(x, y, b)
			}
		}
	}
	return img
}

func solidImage(w, h int, c color.Gray) *image.Gray {
	return checkerboard(w, h, c, c)
}

func TestComputeExactIdenticalPixelsMatch(t *testing.T) {
	img1 := checkerboard(16, 16, color.Gray{Y: 10}, color.Gray{Y: 200})
	img2 := checkerboard(16, 16, color.Gray{Y: 10}, color.Gray{Y: 200})

	h1, err := ComputeExact(img1)
	require.NoError(t, err)
	h2, err := ComputeExact(img2)
	require.NoError(t, err)

	assert.Equal(t, h1.Hash, h2.Hash)
	assert.Len(t, h1.Hash, 64)
}

func TestComputeExactDiffersOnAnyPixelChange(t *testing.T) {
	img1 := solidImage(8, 8, color.Gray{Y: 100})
	img2 := solidImage(8, 8, color.Gray{Y: 101})

	h1, err := ComputeExact(img1)
	require.NoError(t, err)
	h2, err := ComputeExact(img2)
	require.NoError(t, err)

	assert.NotEqual(t, h1.Hash, h2.Hash)
}
