package similarity

import (
	"testing"

	"github.com/arikiri/imagedup/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestBandsForAlgorithm(t *testing.T) {
	assert.Equal(t, 1, bandsForAlgorithm(api.Exact))
	assert.Equal(t, 6, bandsForAlgorithm(api.ORB))
	assert.Equal(t, 8, bandsForAlgorithm(api.Perceptual))
	assert.Equal(t, 4, bandsForAlgorithm(api.Average))
	assert.Equal(t, 4, bandsForAlgorithm(api.Difference))
}

func TestIndexAddAndQueryFindsIdenticalHash(t *testing.T) {
	idx := NewIndex(api.Perceptual)
	hash := "1100110011001100110011001100110011001100110011001100110011001100"
	idx.Add(hash, 0)
	idx.Add(hash, 1)

	matches := idx.Query(hash)
	assert.ElementsMatch(t, []int{0, 1}, matches)
}

func TestIndexQueryEmptyHashReturnsNil(t *testing.T) {
	idx := NewIndex(api.Average)
	assert.Nil(t, idx.Query(""))
}

func TestCandidatePairsSmallDatasetFindsExactDuplicates(t *testing.T) {
	hashes := []string{"abc", "abc", "xyz"}
	pairs := CandidatePairs(hashes, api.Exact)
	assert.Contains(t, pairs, Pair{I: 0, J: 1})
}

func TestCandidatePairsEmptyForSingleOrNoHashes(t *testing.T) {
	assert.Nil(t, CandidatePairs(nil, api.Exact))
	assert.Nil(t, CandidatePairs([]string{"a"}, api.Exact))
}

func TestPolynomialHashDeterministic(t *testing.T) {
	assert.Equal(t, polynomialHash("hello"), polynomialHash("hello"))
	assert.NotEqual(t, polynomialHash("hello"), polynomialHash("world"))
}

func TestBitsToU64(t *testing.T) {
	assert.Equal(t, uint64(0b101), bitsToU64("101"))
	assert.Equal(t, uint64(0), bitsToU64("000"))
}
