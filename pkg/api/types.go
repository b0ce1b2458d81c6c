package api

// Algorithm identifies one of the supported fingerprinting algorithms.
type Algorithm int

const (
	Exact Algorithm = iota
	Average
	Difference
	Perceptual
	ORB
)

// Name returns the canonical, stable string form of the algorithm, used in
// requests, stats responses and CLI flags.
func (a Algorithm) Name() string {
	switch a {
	case Exact:
		return "exact"
	case Average:
		return "average"
	case Difference:
		return "difference"
	case Perceptual:
		return "perceptual"
	case ORB:
		return "orb"
	default:
		return "unknown"
	}
}

// IsFeatureBased reports whether the algorithm produces a variable-length
// feature payload (ORB) rather than a fixed-width bit hash.
func (a Algorithm) IsFeatureBased() bool {
	return a == ORB
}

// ParseAlgorithm resolves an algorithm name as accepted on the wire/CLI.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "exact":
		return Exact, nil
	case "average", "ahash":
		return Average, nil
	case "difference", "dhash":
		return Difference, nil
	case "perceptual", "phash":
		return Perceptual, nil
	case "orb":
		return ORB, nil
	default:
		return 0, &Error{Kind: InvalidInput, Message: "unknown algorithm: " + name}
	}
}

// Algorithms returns every algorithm name known to the engine, in a stable
// order, for CLI/API discovery.
func Algorithms() []string {
	return []string{Exact.Name(), Average.Name(), Difference.Name(), Perceptual.Name(), ORB.Name()}
}

// Fingerprint is the algorithm-tagged string encoding of an image's hash or
// feature payload: a fixed-length '0'/'1' string for the bit-hash algorithms,
// a hex digest for Exact, or a Base64 feature blob for ORB.
type Fingerprint struct {
	Algorithm Algorithm
	Value     string
}

// HashResult is the outcome of fingerprinting a single image: its
// fingerprint plus the source image's width and height (not the size of the
// resized working copy the algorithm hashes).
type HashResult struct {
	Hash   string
	Width  uint32
	Height uint32
}

// ImageInfo describes one image found during enumeration or included in a
// duplicate group. Timestamps are seconds-since-epoch as decimal strings;
// unreadable timestamps fall back to "0" rather than failing the request.
type ImageInfo struct {
	Path        string `json:"path"`
	Hash        string `json:"hash"`
	Width       uint32 `json:"width"`
	Height      uint32 `json:"height"`
	SizeBytes   int64  `json:"size_bytes"`
	CreatedAt   string `json:"created_at"`
	ModifiedAt  string `json:"modified_at"`
}

// DuplicateGroup is a set of two or more images judged mutually similar
// (directly or transitively) at or above SimilarityThreshold.
type DuplicateGroup struct {
	Images               []ImageInfo `json:"images"`
	SimilarityThreshold  float64     `json:"similarity_threshold"`
}

// DetectionRequest is the input to a duplicate-detection run.
//
// SimilarityThreshold is a pointer so a request can distinguish "use the
// engine default" (nil) from an explicit threshold of 0, which is a
// meaningful value: it unites every LSH candidate pair, so each connected
// component of the candidate graph becomes a group, rather than falling back
// to DefaultSimilarityThreshold.
type DetectionRequest struct {
	FolderPaths         []string  `json:"folder_paths"`
	Algorithm           Algorithm `json:"algorithm"`
	SimilarityThreshold *float64  `json:"similarity_threshold,omitempty"`
	Recursive           bool      `json:"recursive"`
}

// DetectionStats summarizes a detection request without running it.
type DetectionStats struct {
	ImageCount          int     `json:"image_count"`
	FolderCount         int     `json:"folder_count"`
	AlgorithmName       string  `json:"algorithm_name"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
}

// FolderStats counts files, images, and directories beneath a folder.
// FolderCount includes the folder itself.
type FolderStats struct {
	TotalFiles  int `json:"total_files"`
	ImageCount  int `json:"image_count"`
	FolderCount int `json:"folder_count"`
}
