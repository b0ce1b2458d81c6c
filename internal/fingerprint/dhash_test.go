package fingerprint

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeDifferenceProducesSixtyFourBits(t *testing.T) {
	img := checkerboard(64, 64, color.Gray{Y: 0}, color.Gray{Y: 255})
	result, err := ComputeDifference(img)
	require.NoError(t, err)
	assert.Len(t, result.Hash, 8*8)
	assert.Equal(t, uint32(64), result.Width)
	assert.Equal(t, uint32(64), result.Height)
}

func TestComputeDifferenceSolidImageIsAllZeroBits(t *testing.T) {
	img := solidImage(32, 32, color.Gray{Y: 77})
	result, err := ComputeDifference(img)
	require.NoError(t, err)
	for _, c := range result.Hash {
		assert.Equal(t, byte('0'), byte(c))
	}
}

func TestComputeDifferenceDetectsLeftToRightGradient(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 9, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 9; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(255 - x*25)})
		}
	}
	result, err := ComputeDifference(img)
	require.NoError(t, err)
	for _, c := range result.Hash {
		assert.Equal(t, byte('1'), byte(c), "descending gradient should set every bit")
	}
}
