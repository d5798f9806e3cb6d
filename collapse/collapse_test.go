package collapse

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/grailbio/cnv/cnv"
	"github.com/grailbio/testutil/expect"
)

func TestPartitionRows(t *testing.T) {
	rows := []Row{
		{"FAM1", "chr1", 100, 200, 2},
		{"FAM1", "chr1", 100, 200, 2}, // exact duplicate, deduplicated
		{"FAM1", "chr2", 100, 200, 2},
		{"FAM2", "chr1", 100, 200, 2},
	}
	families := PartitionRows(rows)
	expect.EQ(t, len(families), 2)
	expect.EQ(t, len(families["FAM1"]), 2)
	expect.EQ(t, len(families["FAM1"]["chr1"]), 1)
	expect.EQ(t, len(families["FAM1"]["chr2"]), 1)
	expect.EQ(t, len(families["FAM2"]["chr1"]), 1)
	expect.True(t, families["FAM1"]["chr1"].Contains(cnv.CNV{Chrom: "chr1", Start: 100, End: 200, CopyNumber: 2}))
}

func TestGroupBucketIsolation(t *testing.T) {
	// Identical coordinates in different (family, chromosome) buckets must
	// survive as separate merged calls.
	rows := []Row{
		{"FAM1", "chr1", 100, 200, 2},
		{"FAM1", "chr2", 100, 200, 2},
		{"FAM2", "chr1", 100, 200, 2},
	}
	opts := DefaultOpts
	results, err := Group(PartitionRows(rows), &opts)
	expect.NoError(t, err)
	expect.EQ(t, len(results), 3)
	expect.EQ(t, results[0].Family, "FAM1")
	expect.EQ(t, results[0].Merged, cnv.CNV{Chrom: "chr1", Start: 100, End: 200, CopyNumber: 2})
	expect.EQ(t, results[1].Family, "FAM1")
	expect.EQ(t, results[1].Merged.Chrom, "chr2")
	expect.EQ(t, results[2].Family, "FAM2")
}

func TestGroupMergesWithinBucket(t *testing.T) {
	rows := []Row{
		{"FAM1", "chr1", 100, 200, 2},
		{"FAM1", "chr1", 120, 210, 2},
		{"FAM1", "chr1", 5000, 5100, 3},
	}
	opts := DefaultOpts
	results, err := Group(PartitionRows(rows), &opts)
	expect.NoError(t, err)
	expect.EQ(t, len(results), 2)
	expect.EQ(t, results[0].Merged, cnv.CNV{Chrom: "chr1", Start: 100, End: 210, CopyNumber: 2})
	expect.EQ(t, results[0].Members, []cnv.CNV{
		{Chrom: "chr1", Start: 100, End: 200, CopyNumber: 2},
		{Chrom: "chr1", Start: 120, End: 210, CopyNumber: 2},
	})
	expect.EQ(t, results[1].Merged, cnv.CNV{Chrom: "chr1", Start: 5000, End: 5100, CopyNumber: 3})
	expect.EQ(t, len(results[1].Members), 1)
}

func TestGroupParallelismInvariant(t *testing.T) {
	var rows []Row
	families := []string{"FAM1", "FAM2", "FAM3", "FAM4", "FAM5"}
	for i, fam := range families {
		base := cnv.PosType(1000 * (i + 1))
		rows = append(rows,
			Row{fam, "chr1", base, base + 100, 2},
			Row{fam, "chr1", base + 10, base + 110, 2},
			Row{fam, "chr3", base, base + 100, 1},
		)
	}
	serialOpts := DefaultOpts
	serialOpts.Parallelism = 1
	serial, err := Group(PartitionRows(rows), &serialOpts)
	expect.NoError(t, err)

	for _, parallelism := range []int{0, 2, 16} {
		opts := DefaultOpts
		opts.Parallelism = parallelism
		results, err := Group(PartitionRows(rows), &opts)
		expect.NoError(t, err)
		expect.EQ(t, results, serial, "parallelism=%d", parallelism)
	}
}

func TestGroupEmpty(t *testing.T) {
	opts := DefaultOpts
	results, err := Group(PartitionRows(nil), &opts)
	expect.NoError(t, err)
	expect.EQ(t, len(results), 0)
}

func TestCollapseEndToEnd(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOpts
	results, err := Collapse(ctx, "testdata/cnvs.tsv", &opts)
	expect.NoError(t, err)
	// FAM1/chr1: 100-200 and 120-210 merge (the duplicate 120-210 row
	// collapses first); 5000-5100 cn=3 stays a singleton.  FAM1/chr2 and
	// FAM2/chr1 are isolated buckets.
	expect.EQ(t, len(results), 4)
	expect.EQ(t, results[0].Merged, cnv.CNV{Chrom: "chr1", Start: 100, End: 210, CopyNumber: 2})
	expect.EQ(t, len(results[0].Members), 2)
	expect.EQ(t, results[1].Merged, cnv.CNV{Chrom: "chr1", Start: 5000, End: 5100, CopyNumber: 3})
	expect.EQ(t, results[2].Merged, cnv.CNV{Chrom: "chr2", Start: 100, End: 200, CopyNumber: 2})
	expect.EQ(t, results[3].Family, "FAM2")
}

func TestCollapseWithBED(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOpts
	opts.BedPath = "testdata/regions.bed"
	results, err := Collapse(ctx, "testdata/cnvs.tsv", &opts)
	expect.NoError(t, err)
	// Only chr1:0-1000 and chr2:500-600 pass: FAM1/chr1 5000-5100 and
	// FAM1/chr2 100-200 are dropped.
	expect.EQ(t, len(results), 2)
	expect.EQ(t, results[0].Family, "FAM1")
	expect.EQ(t, results[0].Merged, cnv.CNV{Chrom: "chr1", Start: 100, End: 210, CopyNumber: 2})
	expect.EQ(t, results[1].Family, "FAM2")
	expect.EQ(t, results[1].Merged, cnv.CNV{Chrom: "chr1", Start: 100, End: 200, CopyNumber: 2})
}

func TestCollapseRejectsBadOverlap(t *testing.T) {
	ctx := context.Background()
	for _, frac := range []float64{0, -0.5, 1.5} {
		opts := DefaultOpts
		opts.MinOverlap = frac
		_, err := Collapse(ctx, "testdata/cnvs.tsv", &opts)
		expect.NotNil(t, err, "overlap=%v", frac)
		expect.True(t, strings.Contains(err.Error(), "out of range"), "err=%v", err)
	}
}

func TestWriteResults(t *testing.T) {
	results := []Result{
		{
			Family: "FAM1",
			Merged: cnv.CNV{Chrom: "chr1", Start: 100, End: 210, CopyNumber: 2},
			Members: []cnv.CNV{
				{Chrom: "chr1", Start: 100, End: 200, CopyNumber: 2},
				{Chrom: "chr1", Start: 120, End: 210, CopyNumber: 2},
			},
		},
	}
	var buf bytes.Buffer
	expect.NoError(t, WriteResults(&buf, results, false))
	expect.EQ(t, buf.String(),
		"family\tchr\tcoord_start\tcoord_end\tcopy_number\n"+
			"FAM1\tchr1\t100\t210\t2\n")

	buf.Reset()
	expect.NoError(t, WriteResults(&buf, results, true))
	expect.EQ(t, buf.String(),
		"family\tchr\tcoord_start\tcoord_end\tcopy_number\tmembers\n"+
			"FAM1\tchr1\t100\t210\t2\t100-200,120-210\n")
}
