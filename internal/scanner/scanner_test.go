package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
}

func TestEnumerateTopLevelOnly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	writeFile(t, filepath.Join(root, "b.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	writeFile(t, filepath.Join(root, "sub", "c.png"))

	paths, err := Enumerate([]string{root}, false)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(root, "a.jpg"), paths[0])
}

func TestEnumerateRecursiveDescendsSubfolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	writeFile(t, filepath.Join(root, "sub", "c.png"))

	paths, err := Enumerate([]string{root}, true)
	require.NoError(t, err)
	assert.Len(t, paths, 2)
}

func TestEnumerateInvalidFolderErrors(t *testing.T) {
	_, err := Enumerate([]string{filepath.Join(t.TempDir(), "missing")}, false)
	assert.Error(t, err)
}

func TestEnumerateSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.jpg"))
	target := filepath.Join(root, "real.jpg")
	link := filepath.Join(root, "link.jpg")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported in this environment: %v", err)
	}

	paths, err := Enumerate([]string{root}, false)
	require.NoError(t, err)
	assert.Len(t, paths, 1)
	assert.Equal(t, target, paths[0])
}

func TestStatsCountsFilesImagesAndFolders(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.jpg"))
	writeFile(t, filepath.Join(root, "notes.txt"))
	require.NoError(t, os.Mkdir(filepath.Join(root, "sub"), 0755))
	writeFile(t, filepath.Join(root, "sub", "b.png"))

	stats, err := Stats(root, false)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalFiles)
	assert.Equal(t, 1, stats.ImageCount)
	assert.Equal(t, 2, stats.FolderCount)

	recStats, err := Stats(root, true)
	require.NoError(t, err)
	assert.Equal(t, 3, recStats.TotalFiles)
	assert.Equal(t, 2, recStats.ImageCount)
	assert.Equal(t, 2, recStats.FolderCount)
}
