package api

// VersionString is the library version, reported by the CLI.
const VersionString = "1.0.0"

// DefaultSimilarityThreshold is used when a request omits one.
const DefaultSimilarityThreshold = 90.0

// DefaultNumWorkers is the default size of the fingerprinting worker pool.
const DefaultNumWorkers = 4

// supportedExtensions lists the file extensions enumeration recognizes as
// images, lower-cased and dot-prefixed. This mirrors the source system's
// extension set exactly — no "tif" variant, only "tiff".
var supportedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
	".tiff": true,
}

// IsSupportedExtension reports whether ext (as returned by filepath.Ext,
// including the leading dot) names a recognized image format.
func IsSupportedExtension(ext string) bool {
	return supportedExtensions[ext]
}

// SupportedExtensions returns the recognized extension set as a slice.
func SupportedExtensions() []string {
	out := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		out = append(out, ext)
	}
	return out
}
