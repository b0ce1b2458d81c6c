package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"image"

	"github.com/arikiri/imagedup/internal/imgproc"
	"github.com/arikiri/imagedup/pkg/api"
)

// ComputeExact returns the SHA-256 hex digest of img's decoded pixel byte
// stream — not the file's raw bytes, so two images with identical pixel
// content but different encodings still match.
func ComputeExact(img image.Image) (api.HashResult, error) {
	sum := sha256.Sum256(imgproc.PixelBytes(img))
	b := img.Bounds()
	return api.HashResult{
		Hash:   hex.EncodeToString(sum[:]),
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}, nil
}
