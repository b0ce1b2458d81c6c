package similarity

import (
	"testing"

	"github.com/arikiri/imagedup/pkg/api"
	"github.com/stretchr/testify/assert"
)

func TestScoreExactMatch(t *testing.T) {
	assert.Equal(t, 100.0, Score("abcd", "abcd", api.Exact))
	assert.Equal(t, 0.0, Score("abcd", "abce", api.Exact))
}

func TestScoreHammingIdenticalBitsIsPerfect(t *testing.T) {
	hash := "1100110010101010"
	assert.Equal(t, 100.0, Score(hash, hash, api.Perceptual))
}

func TestScoreHammingPenalizesEveryMismatch(t *testing.T) {
	a := "11110000"
	b := "00001111"
	assert.Equal(t, 0.0, Score(a, b, api.Average))
}

func TestScoreHammingPartialMismatch(t *testing.T) {
	a := "11110000"
	b := "11111111"
	got := Score(a, b, api.Difference)
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestHammingSimilarityPenalizesLengthDifference(t *testing.T) {
	got := hammingSimilarity("1111", "11110000")
	assert.InDelta(t, 50.0, got, 1e-9)
}

func TestOrbSimilarityEmptyOnDecodeFailure(t *testing.T) {
	got := Score("not-base64!!", "also-not-base64!!", api.ORB)
	assert.Equal(t, 0.0, got)
}
