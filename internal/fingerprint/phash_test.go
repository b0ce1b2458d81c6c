package fingerprint

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePerceptualShapeAndStability(t *testing.T) {
	img1 := checkerboard(64, 64, color.Gray{Y: 10}, color.Gray{Y: 240})
	img2 := checkerboard(64, 64, color.Gray{Y: 10}, color.Gray{Y: 240})

	h1, err := ComputePerceptual(img1)
	require.NoError(t, err)
	h2, err := ComputePerceptual(img2)
	require.NoError(t, err)

	assert.Len(t, h1.Hash, 64)
	assert.Equal(t, uint32(64), h1.Width)
	assert.Equal(t, uint32(64), h1.Height)
	assert.Equal(t, h1.Hash, h2.Hash)
}

func TestComputeWeightedExcludesDCAndHasSixtyThreeBits(t *testing.T) {
	img := checkerboard(64, 64, color.Gray{Y: 5}, color.Gray{Y: 250})
	result, err := ComputeWeighted(img)
	require.NoError(t, err)
	assert.Len(t, result.Hash, 63)
	assert.Equal(t, uint32(64), result.Width)
	assert.Equal(t, uint32(64), result.Height)
}

func TestComputePerceptualDifferentImagesDiffer(t *testing.T) {
	img1 := checkerboard(64, 64, color.Gray{Y: 0}, color.Gray{Y: 255})
	img2 := solidImage(64, 64, color.Gray{Y: 128})

	h1, err := ComputePerceptual(img1)
	require.NoError(t, err)
	h2, err := ComputePerceptual(img2)
	require.NoError(t, err)
	assert.NotEqual(t, h1.Hash, h2.Hash)
}
