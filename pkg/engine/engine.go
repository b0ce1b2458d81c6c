// Package engine ties the scanner, fingerprint, similarity, and dsu
// packages together into the duplicate-detection pipeline: enumerate
// images, fingerprint them, generate LSH candidate pairs, verify similarity,
// and group connected components into DuplicateGroups.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/arikiri/imagedup/internal/dsu"
	"github.com/arikiri/imagedup/internal/fingerprint"
	"github.com/arikiri/imagedup/internal/scanner"
	"github.com/arikiri/imagedup/internal/similarity"
	"github.com/arikiri/imagedup/internal/utils"
	"github.com/arikiri/imagedup/pkg/api"
)

// Engine runs duplicate-detection requests against the local filesystem.
type Engine struct {
	config Config
	logger *utils.Logger
}

// New creates an Engine with the given Config.
func New(config Config) (*Engine, error) {
	logCfg := utils.GetDefaultConfig()
	logCfg.Level = config.LogLevel
	logCfg.FilePath = config.LogFilePath

	logger, err := utils.NewLogger(logCfg)
	if err != nil {
		return nil, api.Wrap(api.InternalError, "create logger", err)
	}
	if config.NumWorkers <= 0 {
		config.NumWorkers = api.DefaultNumWorkers
	}
	return &Engine{config: config, logger: logger}, nil
}

// ListImages enumerates every supported-format image path under folders.
func (e *Engine) ListImages(folders []string, recursive bool) ([]string, error) {
	return scanner.Enumerate(folders, recursive)
}

// Algorithms returns the names of every supported fingerprinting algorithm.
func (e *Engine) Algorithms() []string {
	return api.Algorithms()
}

// FolderStats counts files, images, and subfolders beneath folder.
func (e *Engine) FolderStats(folder string, recursive bool) (api.FolderStats, error) {
	return scanner.Stats(folder, recursive)
}

// Stats summarizes a detection request without fingerprinting anything.
func (e *Engine) Stats(request api.DetectionRequest) (api.DetectionStats, error) {
	paths, err := scanner.Enumerate(request.FolderPaths, request.Recursive)
	if err != nil {
		return api.DetectionStats{}, err
	}

	folderCount := 0
	for _, folder := range request.FolderPaths {
		stats, err := scanner.Stats(folder, request.Recursive)
		if err != nil {
			continue
		}
		folderCount += stats.FolderCount
	}

	threshold := resolveThreshold(request.SimilarityThreshold)
	return api.DetectionStats{
		ImageCount:          len(paths),
		FolderCount:         folderCount,
		AlgorithmName:       request.Algorithm.Name(),
		SimilarityThreshold: threshold,
	}, nil
}

// Detect runs the full duplicate-detection pipeline over request and
// returns every group of two or more mutually similar images, largest
// group first. An empty folder list yields an empty result, not an error.
func (e *Engine) Detect(ctx context.Context, request api.DetectionRequest) ([]api.DuplicateGroup, error) {
	return e.DetectWithProgress(ctx, request, nil)
}

// DetectWithProgress runs Detect, invoking onProgress(current, total) as each
// image finishes fingerprinting. onProgress may be nil.
func (e *Engine) DetectWithProgress(ctx context.Context, request api.DetectionRequest, onProgress func(current, total int)) ([]api.DuplicateGroup, error) {
	threshold := resolveThreshold(request.SimilarityThreshold)
	if threshold < 0 || threshold > 100 {
		return nil, api.NewError(api.InvalidInput, fmt.Sprintf("similarity threshold %v outside [0,100]", threshold))
	}

	paths, err := scanner.Enumerate(request.FolderPaths, request.Recursive)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	var groups []api.DuplicateGroup
	err = e.logger.LogOperation("detect_duplicates", func() error {
		hashes, err := e.computeHashes(ctx, paths, request.Algorithm, onProgress)
		if err != nil {
			return err
		}
		groups, err = e.findDuplicateGroups(paths, hashes, request.Algorithm, threshold)
		return err
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(groups, func(i, j int) bool {
		return len(groups[i].Images) > len(groups[j].Images)
	})
	return groups, nil
}

// computeHashes fingerprints every path concurrently, bounded by
// e.config.NumWorkers. A path that fails to fingerprint contributes a
// zero-value HashResult at its index rather than dropping out of
// alignment with paths; if every path fails, the whole call errors.
func (e *Engine) computeHashes(ctx context.Context, paths []string, algorithm api.Algorithm, onProgress func(current, total int)) ([]api.HashResult, error) {
	results := make([]api.HashResult, len(paths))
	var errorCount, done int
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.config.NumWorkers)

	report := func(failed bool) {
		mu.Lock()
		if failed {
			errorCount++
		}
		done++
		current := done
		mu.Unlock()
		if onProgress != nil {
			onProgress(current, len(paths))
		}
	}

	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				report(true)
				return
			}

			hash, err := fingerprint.ComputePath(path, algorithm)
			if err != nil {
				e.logger.Warnf("fingerprint failed for %s: %v", path, err)
				report(true)
				return
			}
			results[i] = hash
			report(false)
		}(i, path)
	}
	wg.Wait()

	if errorCount > 0 {
		e.logger.Infof("%d of %d images failed fingerprinting", errorCount, len(paths))
	}
	if errorCount == len(paths) {
		return nil, api.NewError(api.InternalError, "all images failed fingerprinting")
	}
	return results, nil
}

func (e *Engine) findDuplicateGroups(paths []string, hashes []api.HashResult, algorithm api.Algorithm, threshold float64) ([]api.DuplicateGroup, error) {
	if len(paths) != len(hashes) {
		return nil, api.NewError(api.InternalError, fmt.Sprintf("hash count (%d) does not match path count (%d)", len(hashes), len(paths)))
	}

	hashStrings := make([]string, len(hashes))
	for i, h := range hashes {
		hashStrings[i] = h.Hash
	}

	pairs := similarity.CandidatePairs(hashStrings, algorithm)

	set := dsu.New(len(hashes))
	for _, pair := range pairs {
		score := similarity.Score(hashStrings[pair.I], hashStrings[pair.J], algorithm)
		if score >= threshold {
			set.Union(pair.I, pair.J)
		}
	}

	var groups []api.DuplicateGroup
	for _, indices := range set.Groups() {
		images := make([]api.ImageInfo, 0, len(indices))
		for _, idx := range indices {
			info, err := fileInfo(paths[idx], hashes[idx])
			if err != nil {
				continue
			}
			images = append(images, info)
		}
		if len(images) > 1 {
			groups = append(groups, api.DuplicateGroup{
				Images:              images,
				SimilarityThreshold: threshold,
			})
		}
	}
	return groups, nil
}

// AreDuplicates reports whether the two images at path1 and path2 are
// similar at or above threshold under algorithm. Identical paths always
// match. A file-size prefilter rejects obvious non-duplicates (exact
// mismatch for the Exact algorithm, >2x size ratio for the others) before
// paying the cost of fingerprinting either file.
func (e *Engine) AreDuplicates(path1, path2 string, algorithm api.Algorithm, threshold float64) (bool, error) {
	if abs1, err1 := filepath.Abs(path1); err1 == nil {
		if abs2, err2 := filepath.Abs(path2); err2 == nil && abs1 == abs2 {
			return true, nil
		}
	}

	info1, err1 := os.Stat(path1)
	info2, err2 := os.Stat(path2)
	if err1 == nil && err2 == nil && info1.Size() > 0 && info2.Size() > 0 {
		size1, size2 := info1.Size(), info2.Size()
		if algorithm == api.Exact && size1 != size2 {
			return false, nil
		}
		if algorithm != api.Exact {
			var ratio float64
			if size1 > size2 {
				ratio = float64(size1) / float64(size2)
			} else {
				ratio = float64(size2) / float64(size1)
			}
			if ratio > 2.0 {
				return false, nil
			}
		}
	}

	hash1, err := fingerprint.ComputePath(path1, algorithm)
	if err != nil {
		return false, err
	}
	hash2, err := fingerprint.ComputePath(path2, algorithm)
	if err != nil {
		return false, err
	}

	return similarity.Score(hash1.Hash, hash2.Hash, algorithm) >= threshold, nil
}

// resolveThreshold returns threshold if the request supplied one, and
// DefaultSimilarityThreshold otherwise. A nil pointer means "not supplied";
// an explicit 0 is a real threshold (it merges every candidate pair) and
// must pass through unchanged.
func resolveThreshold(threshold *float64) float64 {
	if threshold == nil {
		return api.DefaultSimilarityThreshold
	}
	return *threshold
}

// fileInfo builds an ImageInfo for path. CreatedAt and ModifiedAt both use
// ModTime: the standard library exposes no portable file birth time. If path
// cannot be stat'ed, SizeBytes is 0 and both timestamps are "0".
func fileInfo(path string, hash api.HashResult) (api.ImageInfo, error) {
	stat, err := os.Stat(path)
	if err != nil {
		return api.ImageInfo{
			Path:       path,
			Hash:       hash.Hash,
			Width:      hash.Width,
			Height:     hash.Height,
			CreatedAt:  "0",
			ModifiedAt: "0",
		}, nil
	}
	return api.ImageInfo{
		Path:       path,
		Hash:       hash.Hash,
		Width:      hash.Width,
		Height:     hash.Height,
		SizeBytes:  stat.Size(),
		CreatedAt:  strconv.FormatInt(stat.ModTime().Unix(), 10),
		ModifiedAt: strconv.FormatInt(stat.ModTime().Unix(), 10),
	}, nil
}
