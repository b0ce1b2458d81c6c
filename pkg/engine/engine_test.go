package engine

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/arikiri/imagedup/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string, size int, fill color.Gray) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetGray(x, y, fill)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func thresholdPtr(v float64) *float64 {
	return &v
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(DefaultConfig())
	require.NoError(t, err)
	return eng
}

func TestDetectGroupsIdenticalImages(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "a.png"), 16, color.Gray{Y: 50})
	writePNG(t, filepath.Join(root, "b.png"), 16, color.Gray{Y: 50})
	writePNG(t, filepath.Join(root, "c.png"), 16, color.Gray{Y: 220})

	eng := newTestEngine(t)
	groups, err := eng.Detect(context.Background(), api.DetectionRequest{
		FolderPaths:         []string{root},
		Algorithm:           api.Exact,
		SimilarityThreshold: thresholdPtr(95),
		Recursive:           false,
	})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Images, 2)
}

func TestDetectEmptyFolderListReturnsEmptyResult(t *testing.T) {
	eng := newTestEngine(t)
	groups, err := eng.Detect(context.Background(), api.DetectionRequest{})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestListImagesAndFolderStats(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "a.png"), 10, color.Gray{Y: 10})

	eng := newTestEngine(t)
	paths, err := eng.ListImages([]string{root}, false)
	require.NoError(t, err)
	assert.Len(t, paths, 1)

	stats, err := eng.FolderStats(root, false)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ImageCount)
}

func TestStatsSummarizesRequest(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "a.png"), 10, color.Gray{Y: 10})

	eng := newTestEngine(t)
	stats, err := eng.Stats(api.DetectionRequest{
		FolderPaths: []string{root},
		Algorithm:   api.Perceptual,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.ImageCount)
	assert.Equal(t, "perceptual", stats.AlgorithmName)
	assert.Equal(t, api.DefaultSimilarityThreshold, stats.SimilarityThreshold)
}

func TestAreDuplicatesSamePathIsTrue(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "a.png")
	writePNG(t, path, 16, color.Gray{Y: 88})

	eng := newTestEngine(t)
	dup, err := eng.AreDuplicates(path, path, api.Average, 90)
	require.NoError(t, err)
	assert.True(t, dup)
}

func TestAreDuplicatesRejectsExactSizeMismatch(t *testing.T) {
	root := t.TempDir()
	p1 := filepath.Join(root, "a.png")
	p2 := filepath.Join(root, "b.png")
	writePNG(t, p1, 8, color.Gray{Y: 50})
	writePNG(t, p2, 64, color.Gray{Y: 50})

	eng := newTestEngine(t)
	dup, err := eng.AreDuplicates(p1, p2, api.Exact, 90)
	require.NoError(t, err)
	assert.False(t, dup)
}

func TestAlgorithmsListsAllFive(t *testing.T) {
	eng := newTestEngine(t)
	assert.Len(t, eng.Algorithms(), 5)
}

func TestResolveThresholdFallsBackOnlyWhenUnset(t *testing.T) {
	assert.Equal(t, api.DefaultSimilarityThreshold, resolveThreshold(nil))
	assert.Equal(t, 0.0, resolveThreshold(thresholdPtr(0)))
	assert.Equal(t, 42.0, resolveThreshold(thresholdPtr(42)))
}

func TestStatsHonorsExplicitZeroThreshold(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "a.png"), 10, color.Gray{Y: 10})

	eng := newTestEngine(t)
	stats, err := eng.Stats(api.DetectionRequest{
		FolderPaths:         []string{root},
		Algorithm:           api.Perceptual,
		SimilarityThreshold: thresholdPtr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.SimilarityThreshold)
}

// TestDetectZeroThresholdMergesDissimilarCandidatePair drives
// findDuplicateGroups directly with two hand-crafted average-hash strings
// that share their first LSH band (so they are always a candidate pair)
// but differ enough elsewhere to score well under the default threshold.
func TestDetectZeroThresholdMergesDissimilarCandidatePair(t *testing.T) {
	root := t.TempDir()
	pathA := filepath.Join(root, "a.png")
	pathB := filepath.Join(root, "b.png")
	writePNG(t, pathA, 16, color.Gray{Y: 50})
	writePNG(t, pathB, 16, color.Gray{Y: 50})

	sharedBand := "0000000000000000"
	hashA := sharedBand + "000000000000000000000000000000000000000000000000"
	hashB := sharedBand + "111111111111111111110000000000000000000000000000"
	hashes := []api.HashResult{{Hash: hashA}, {Hash: hashB}}

	eng := newTestEngine(t)
	defaultGroups, err := eng.findDuplicateGroups([]string{pathA, pathB}, hashes, api.Average, api.DefaultSimilarityThreshold)
	require.NoError(t, err)
	assert.Empty(t, defaultGroups, "a ~69 percent similarity score should not group at the default 90 percent threshold")

	zeroGroups, err := eng.findDuplicateGroups([]string{pathA, pathB}, hashes, api.Average, 0)
	require.NoError(t, err)
	require.Len(t, zeroGroups, 1, "threshold 0 should merge every candidate pair, however dissimilar")
	assert.Len(t, zeroGroups[0].Images, 2)
}
