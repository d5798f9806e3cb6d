package cnv

import (
	"testing"

	"github.com/grailbio/testutil/expect"
	"github.com/stretchr/testify/require"
)

func TestMergeSpansUnion(t *testing.T) {
	cluster := []CNV{
		{"chr2", 100, 200, 1},
		{"chr2", 150, 400, 1},
		{"chr2", 90, 160, 1},
	}
	expect.EQ(t, Merge(cluster), CNV{"chr2", 90, 400, 1})
}

func TestMergeSingletonUnchanged(t *testing.T) {
	c := CNV{"chrX", 7, 7000, 0}
	merged := Merge([]CNV{c})
	expect.EQ(t, merged, c)
	// Merging an already-merged singleton is a no-op.
	expect.EQ(t, Merge([]CNV{merged}), c)
}

func TestMergeInvariantViolations(t *testing.T) {
	// These clusters cannot be produced by Cluster; Merge must refuse to
	// pick an arbitrary representative for them.
	require.Panics(t, func() { Merge(nil) })
	require.Panics(t, func() {
		Merge([]CNV{{"chr1", 1, 10, 2}, {"chr2", 1, 10, 2}})
	})
	require.Panics(t, func() {
		Merge([]CNV{{"chr1", 1, 10, 2}, {"chr1", 1, 10, 3}})
	})
}
