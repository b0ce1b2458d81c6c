package dsu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnionMergesSets(t *testing.T) {
	d := New(5)
	d.Union(0, 1)
	d.Union(1, 2)

	assert.Equal(t, d.Find(0), d.Find(2))
	assert.NotEqual(t, d.Find(0), d.Find(3))
}

func TestGroupsExcludesSingletons(t *testing.T) {
	d := New(6)
	d.Union(0, 1)
	d.Union(2, 3)
	// 4 and 5 remain singletons.

	groups := d.Groups()
	assert.Len(t, groups, 2)

	var members [][]int
	for _, g := range groups {
		members = append(members, g)
	}
	total := 0
	for _, g := range members {
		total += len(g)
	}
	assert.Equal(t, 4, total)
}

func TestUnionIsIdempotent(t *testing.T) {
	d := New(3)
	d.Union(0, 1)
	d.Union(0, 1)
	d.Union(1, 0)
	assert.Equal(t, d.Find(0), d.Find(1))
}

func TestEmptyDSUHasNoGroups(t *testing.T) {
	d := New(0)
	assert.Empty(t, d.Groups())
}
