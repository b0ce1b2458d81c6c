// Package scanner enumerates image files beneath one or more directory
// trees. Enumeration always skips symlinks and always filters by the
// supported extension set — there is no configuration knob to change either
// behavior.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arikiri/imagedup/pkg/api"
)

// Enumerate returns every supported-image-format path found under each of
// folders, walking recursively if recursive is set. Folders are processed
// concurrently; order within the result is not guaranteed.
func Enumerate(folders []string, recursive bool) ([]string, error) {
	type result struct {
		paths []string
		err   error
	}
	results := make([]result, len(folders))

	var wg sync.WaitGroup
	for i, folder := range folders {
		wg.Add(1)
		go func(i int, folder string) {
			defer wg.Done()
			paths, err := enumerateFolder(folder, recursive)
			results[i] = result{paths: paths, err: err}
		}(i, folder)
	}
	wg.Wait()

	var all []string
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		all = append(all, r.paths...)
	}
	return all, nil
}

func enumerateFolder(folder string, recursive bool) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, api.NewError(api.InvalidInput, fmt.Sprintf("invalid folder path: %s", folder))
	}

	if recursive {
		return enumerateRecursive(folder)
	}
	return enumerateTopLevel(folder)
}

func enumerateRecursive(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isSymlink(d) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && isImageFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, api.Wrap(api.IoError, "walk directory", err)
	}
	return paths, nil
}

func enumerateTopLevel(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, api.Wrap(api.IoError, "read directory", err)
	}

	var paths []string
	for _, entry := range entries {
		if isSymlink(entry) || entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if isImageFile(path) {
			paths = append(paths, path)
		}
	}
	return paths, nil
}

func isImageFile(path string) bool {
	return api.IsSupportedExtension(strings.ToLower(filepath.Ext(path)))
}

func isSymlink(d fs.DirEntry) bool {
	return d.Type()&fs.ModeSymlink != 0
}

// Stats computes FolderStats for folder. The non-recursive count visits
// only the folder's direct children; the recursive count walks the full
// tree. FolderCount starts at 1 for folder itself.
func Stats(folder string, recursive bool) (api.FolderStats, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return api.FolderStats{}, api.NewError(api.InvalidInput, fmt.Sprintf("invalid folder path: %s", folder))
	}

	stats := api.FolderStats{FolderCount: 1}

	if recursive {
		err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == folder {
				return nil
			}
			if d.IsDir() {
				stats.FolderCount++
				return nil
			}
			stats.TotalFiles++
			if isImageFile(path) {
				stats.ImageCount++
			}
			return nil
		})
		if err != nil {
			return api.FolderStats{}, api.Wrap(api.IoError, "walk directory", err)
		}
		return stats, nil
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		return api.FolderStats{}, api.Wrap(api.IoError, "read directory", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			stats.FolderCount++
			continue
		}
		stats.TotalFiles++
		if isImageFile(filepath.Join(folder, entry.Name())) {
			stats.ImageCount++
		}
	}
	return stats, nil
}
