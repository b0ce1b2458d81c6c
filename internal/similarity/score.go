// Package similarity computes pairwise similarity scores between
// fingerprints (C5) and generates LSH candidate pairs for large datasets
// (C6).
package similarity

import (
	"math"
	"math/bits"

	"github.com/arikiri/imagedup/internal/fingerprint"
	"github.com/arikiri/imagedup/pkg/api"
)

// Score returns the similarity between two fingerprints of the same
// algorithm as a value in [0,100].
func Score(hash1, hash2 string, algorithm api.Algorithm) float64 {
	switch algorithm {
	case api.Exact:
		if hash1 == hash2 {
			return 100.0
		}
		return 0.0
	case api.ORB:
		sim, err := orbSimilarity(hash1, hash2)
		if err != nil {
			return 0.0
		}
		return sim
	default:
		return hammingSimilarity(hash1, hash2)
	}
}

// hammingSimilarity scores two equal-length bit strings by Hamming distance;
// unequal lengths are penalized by counting the length difference as
// additional mismatched positions, matching the perceptual-hash comparator.
func hammingSimilarity(a, b string) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	distance := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			distance++
		}
	}
	lenDiff := len(a) - len(b)
	if lenDiff < 0 {
		lenDiff = -lenDiff
	}
	distance += lenDiff

	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 100.0
	}
	return 100.0 * (1.0 - float64(distance)/float64(maxLen))
}

const (
	orbRatioThreshold = 0.8
	orbMaxDistance    = 80
)

func orbSimilarity(hash1, hash2 string) (float64, error) {
	d1, err := fingerprint.DecodeORB(hash1)
	if err != nil {
		return 0, err
	}
	d2, err := fingerprint.DecodeORB(hash2)
	if err != nil {
		return 0, err
	}

	matches := matchDescriptors(d1, d2)
	minLen := len(d1)
	if len(d2) < minLen {
		minLen = len(d2)
	}
	if minLen == 0 {
		return 0, nil
	}
	return float64(len(matches)) / float64(minLen) * 100.0, nil
}

type descriptorMatch struct {
	i, j int
}

func hammingDistance(a, b [32]byte) uint32 {
	var dist uint32
	for i := range a {
		dist += uint32(bits.OnesCount8(a[i] ^ b[i]))
	}
	return dist
}

// matchDescriptors runs brute-force nearest-neighbor matching with Lowe's
// ratio test, then filters by geometric (distance) consistency once the
// candidate set is large enough to make the check meaningful.
func matchDescriptors(d1, d2 []fingerprint.Descriptor) []descriptorMatch {
	var matches []descriptorMatch

	for i, a := range d1 {
		bestDist := uint32(math.MaxUint32)
		secondBest := uint32(math.MaxUint32)
		bestIdx := -1

		for j, b := range d2 {
			dist := hammingDistance(a.Data, b.Data)
			if dist < bestDist {
				secondBest = bestDist
				bestDist = dist
				bestIdx = j
			} else if dist < secondBest {
				secondBest = dist
			}
		}

		if bestIdx < 0 || bestDist >= orbMaxDistance {
			continue
		}
		if secondBest != math.MaxUint32 {
			if float64(bestDist)/float64(secondBest) >= orbRatioThreshold {
				continue
			}
		}
		matches = append(matches, descriptorMatch{i: i, j: bestIdx})
	}

	if len(matches) > 10 {
		matches = filterByDistanceConsistency(matches, d1, d2)
	}
	return matches
}

func filterByDistanceConsistency(matches []descriptorMatch, d1, d2 []fingerprint.Descriptor) []descriptorMatch {
	if len(matches) < 4 {
		return matches
	}
	minConsistent := len(matches) / 4

	var kept []descriptorMatch
	for i, m := range matches {
		consistent := 0
		for j, other := range matches {
			if i == j {
				continue
			}
			dist1 := euclidean(float64(d1[m.i].X), float64(d1[m.i].Y), float64(d1[other.i].X), float64(d1[other.i].Y))
			dist2 := euclidean(float64(d2[m.j].X), float64(d2[m.j].Y), float64(d2[other.j].X), float64(d2[other.j].Y))
			if dist1 > 0.1 && dist2 > 0.1 {
				ratio := dist1 / dist2
				if ratio < 1 {
					ratio = 1 / ratio
				}
				if ratio < 1.5 {
					consistent++
				}
			}
			if consistent >= minConsistent {
				break
			}
		}
		if consistent >= minConsistent {
			kept = append(kept, m)
		}
	}
	return kept
}

func euclidean(x1, y1, x2, y2 float64) float64 {
	dx, dy := x1-x2, y1-y2
	return math.Sqrt(dx*dx + dy*dy)
}
