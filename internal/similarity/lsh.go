package similarity

import (
	"sort"
	"sync"

	"github.com/arikiri/imagedup/pkg/api"
)

const (
	maxBucketSize      = 2000
	orbPrefixBytes     = 256
	smallDatasetLimit  = 5000
	largeBatchORB      = 2000
	largeBatchExact    = 10000
	largeBatchBinary   = 5000
)

func bandsForAlgorithm(algorithm api.Algorithm) int {
	switch algorithm {
	case api.Exact:
		return 1
	case api.ORB:
		return 6
	case api.Perceptual:
		return 8
	default:
		return 4
	}
}

// Index is a locality-sensitive hash table over fingerprint strings,
// banding each hash into a small number of u64 bucket keys so near-duplicate
// fingerprints are likely to collide in at least one bucket.
type Index struct {
	algorithm api.Algorithm
	bands     int
	buckets   map[uint64][]int
	mu        sync.Mutex
}

// NewIndex creates an LSH index tuned for algorithm.
func NewIndex(algorithm api.Algorithm) *Index {
	return &Index{
		algorithm: algorithm,
		bands:     bandsForAlgorithm(algorithm),
		buckets:   make(map[uint64][]int),
	}
}

// Add inserts hash at index into every band bucket it falls into. Buckets at
// capacity are left as-is: inserted-but-capped rather than growing
// unbounded, trading a little recall for a hard memory bound on adversarial
// inputs with many collisions in one bucket.
func (idx *Index) Add(hash string, index int) {
	if hash == "" {
		return
	}
	keys := idx.bucketKeys(hash)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, key := range keys {
		bucket := idx.buckets[key]
		if len(bucket) >= maxBucketSize {
			continue
		}
		found := false
		for _, existing := range bucket {
			if existing == index {
				found = true
				break
			}
		}
		if !found {
			idx.buckets[key] = append(bucket, index)
		}
	}
}

// Query returns every index sharing at least one band bucket with hash,
// sorted ascending.
func (idx *Index) Query(hash string) []int {
	if hash == "" {
		return nil
	}
	keys := idx.bucketKeys(hash)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	seen := make(map[int]bool)
	for _, key := range keys {
		for _, candidate := range idx.buckets[key] {
			seen[candidate] = true
		}
	}

	out := make([]int, 0, len(seen))
	for i := range seen {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// BatchAdd inserts every hash, offsetting stored indices by startIndex.
// Large batches are inserted concurrently; small ones sequentially, since
// goroutine setup cost dominates below a few hundred rows.
func (idx *Index) BatchAdd(hashes []string, startIndex int) {
	if len(hashes) <= 500 {
		for i, h := range hashes {
			idx.Add(h, startIndex+i)
		}
		return
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, 8)
	for i, h := range hashes {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, h string) {
			defer wg.Done()
			defer func() { <-sem }()
			idx.Add(h, startIndex+i)
		}(i, h)
	}
	wg.Wait()
}

func (idx *Index) bucketKeys(hash string) []uint64 {
	switch idx.algorithm {
	case api.Exact:
		return []uint64{polynomialHash(hash)}
	case api.ORB:
		return orbBucketKeys(hash, idx.bands)
	default:
		return binaryBucketKeys(hash, idx.bands)
	}
}

// polynomialHash is a base-31 rolling hash over the string's bytes, wrapping
// on uint64 overflow exactly like the reference implementation's
// wrapping_mul/wrapping_add.
func polynomialHash(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}

// bitsToU64 packs the first 64 characters of a '0'/'1' string into a u64,
// bit i (LSB-first) set when bits[i] == '1'.
func bitsToU64(s string) uint64 {
	var result uint64
	limit := len(s)
	if limit > 64 {
		limit = 64
	}
	for i := 0; i < limit; i++ {
		if s[i] == '1' {
			result |= 1 << uint(i)
		}
	}
	return result
}

func orbBucketKeys(hash string, bands int) []uint64 {
	prefixLen := len(hash)
	if prefixLen > orbPrefixBytes {
		prefixLen = orbPrefixBytes
	}
	signature := hash[:prefixLen]

	chunkSize := len(signature) / bands
	if chunkSize == 0 {
		return []uint64{polynomialHash(signature)}
	}

	keys := make([]uint64, 0, bands)
	for i := 0; i < bands; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == bands-1 || end > len(signature) {
			end = len(signature)
		}
		keys = append(keys, polynomialHash(signature[start:end]))
	}
	return keys
}

func binaryBucketKeys(hash string, bands int) []uint64 {
	bandSize := len(hash) / bands
	if bandSize == 0 {
		return []uint64{bitsToU64(hash)}
	}

	keys := make([]uint64, 0, bands)
	for i := 0; i < bands; i++ {
		start := i * bandSize
		end := start + bandSize
		if i == bands-1 {
			end = len(hash)
		}
		keys = append(keys, bitsToU64(hash[start:end]))
	}
	return keys
}

// Pair is a candidate duplicate pair of indices into the original hash
// slice, with i < j.
type Pair struct {
	I, J int
}

// CandidatePairs generates every pair of indices whose fingerprints share at
// least one LSH bucket, choosing a single-index strategy for small datasets
// and a sharded, two-phase intra-batch/cross-batch strategy for large ones.
func CandidatePairs(hashes []string, algorithm api.Algorithm) []Pair {
	if len(hashes) <= 1 {
		return nil
	}
	if len(hashes) <= smallDatasetLimit {
		return candidatePairsSmall(hashes, algorithm)
	}
	return candidatePairsLarge(hashes, algorithm)
}

func candidatePairsSmall(hashes []string, algorithm api.Algorithm) []Pair {
	idx := NewIndex(algorithm)
	idx.BatchAdd(hashes, 0)

	seen := make(map[Pair]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, 8)

	for i := range hashes {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			for _, j := range idx.Query(hashes[i]) {
				if j > i {
					mu.Lock()
					seen[Pair{I: i, J: j}] = true
					mu.Unlock()
				}
			}
		}(i)
	}
	wg.Wait()

	return sortedPairs(seen)
}

func batchSizeForAlgorithm(algorithm api.Algorithm) int {
	switch algorithm {
	case api.ORB:
		return largeBatchORB
	case api.Exact:
		return largeBatchExact
	default:
		return largeBatchBinary
	}
}

// candidatePairsLarge mirrors the reference large-dataset strategy: shard
// the dataset, find candidates within each shard (intra-batch), then build
// one LSH index per shard and query every later shard's hashes against every
// earlier shard's index (cross-batch), merging global index pairs.
func candidatePairsLarge(hashes []string, algorithm api.Algorithm) []Pair {
	batchSize := batchSizeForAlgorithm(algorithm)
	n := len(hashes)
	batchCount := (n + batchSize - 1) / batchSize

	batchBounds := func(b int) (int, int) {
		start := b * batchSize
		end := start + batchSize
		if end > n {
			end = n
		}
		return start, end
	}

	result := make(map[Pair]bool)
	var mu sync.Mutex
	var wg sync.WaitGroup

	// Phase 1: intra-batch candidates.
	for b := 0; b < batchCount; b++ {
		start, end := batchBounds(b)
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			local := hashes[start:end]
			idx := NewIndex(algorithm)
			idx.BatchAdd(local, 0)

			pairs := make(map[Pair]bool)
			for i := range local {
				for _, j := range idx.Query(local[i]) {
					if j > i {
						pairs[Pair{I: start + i, J: start + j}] = true
					}
				}
			}
			mu.Lock()
			for p := range pairs {
				result[p] = true
			}
			mu.Unlock()
		}(start, end)
	}
	wg.Wait()

	// Phase 2: one LSH index per batch, queried cross-batch.
	batchIndices := make([]*Index, batchCount)
	var wg2 sync.WaitGroup
	for b := 0; b < batchCount; b++ {
		start, end := batchBounds(b)
		wg2.Add(1)
		go func(b, start, end int) {
			defer wg2.Done()
			idx := NewIndex(algorithm)
			idx.BatchAdd(hashes[start:end], 0)
			batchIndices[b] = idx
		}(b, start, end)
	}
	wg2.Wait()

	var wg3 sync.WaitGroup
	for i := 0; i < batchCount; i++ {
		iStart, _ := batchBounds(i)
		for j := i + 1; j < batchCount; j++ {
			jStart, jEnd := batchBounds(j)
			wg3.Add(1)
			go func(iStart, jStart, jEnd int, iIdx *Index) {
				defer wg3.Done()
				pairs := make(map[Pair]bool)
				for local := jStart; local < jEnd; local++ {
					for _, k := range iIdx.Query(hashes[local]) {
						pairs[Pair{I: iStart + k, J: local}] = true
					}
				}
				mu.Lock()
				for p := range pairs {
					result[p] = true
				}
				mu.Unlock()
			}(iStart, jStart, jEnd, batchIndices[i])
		}
	}
	wg3.Wait()

	return sortedPairs(result)
}

func sortedPairs(set map[Pair]bool) []Pair {
	out := make([]Pair, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].I != out[b].I {
			return out[a].I < out[b].I
		}
		return out[a].J < out[b].J
	})
	return out
}
