// Package imaged re-exports the engine's public surface for single-import
// library use.
package imaged

import (
	"context"

	"github.com/arikiri/imagedup/pkg/api"
	"github.com/arikiri/imagedup/pkg/engine"
)

// Engine construction.
var (
	New                   = engine.New
	DefaultConfig         = engine.DefaultConfig
	HighPerformanceConfig = engine.HighPerformanceConfig
	QuietConfig           = engine.QuietConfig
)

// Common types.
type (
	Config         = engine.Config
	Engine         = engine.Engine
	Algorithm      = api.Algorithm
	DuplicateGroup = api.DuplicateGroup
	ImageInfo      = api.ImageInfo
	DetectionRequest = api.DetectionRequest
	DetectionStats = api.DetectionStats
	FolderStats    = api.FolderStats
)

// Algorithm constants.
const (
	Exact      = api.Exact
	Average    = api.Average
	Difference = api.Difference
	Perceptual = api.Perceptual
	ORB        = api.ORB
)

// QuickDetect runs duplicate detection over folders with default engine
// settings, for callers that don't need to hold on to an Engine. threshold
// is passed through to the request exactly as given, including 0.
func QuickDetect(folders []string, algorithm api.Algorithm, threshold float64, recursive bool) ([]api.DuplicateGroup, error) {
	eng, err := engine.New(engine.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return eng.Detect(context.Background(), api.DetectionRequest{
		FolderPaths:         folders,
		Algorithm:           algorithm,
		SimilarityThreshold: &threshold,
		Recursive:           recursive,
	})
}
