package collapse

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/grailbio/testutil/expect"
)

func TestRegionSetIntersects(t *testing.T) {
	regions, err := ReadBED(context.Background(), "testdata/regions.bed")
	expect.NoError(t, err)

	tests := []struct {
		chrom      string
		start, end int32
		want       bool
	}{
		{"chr1", 100, 200, true},
		// 1-based call 1000-1200 still touches the 0-based region [0, 1000)
		// at its last base; 1001-1200 does not.
		{"chr1", 1000, 1200, true},
		{"chr1", 1001, 1200, false},
		{"chr2", 100, 200, false},
		{"chr2", 550, 560, true},
		// Unknown chromosome.
		{"chr9", 100, 200, false},
	}
	for _, tt := range tests {
		expect.EQ(t, regions.Intersects(tt.chrom, tt.start, tt.end), tt.want,
			"%s:%d-%d", tt.chrom, tt.start, tt.end)
	}
}

func TestRegionSetFilterRows(t *testing.T) {
	regions, err := ReadBED(context.Background(), "testdata/regions.bed")
	expect.NoError(t, err)
	rows := []Row{
		{"FAM1", "chr1", 100, 200, 2},
		{"FAM1", "chr1", 5000, 5100, 3},
		{"FAM1", "chr2", 100, 200, 2},
		{"FAM2", "chr2", 590, 800, 2},
	}
	expect.EQ(t, regions.FilterRows(rows), []Row{
		{"FAM1", "chr1", 100, 200, 2},
		{"FAM2", "chr2", 590, 800, 2},
	})
}

func TestScanBED(t *testing.T) {
	// Unsorted input, an empty interval (skipped), and extra columns.
	regions, err := scanBED(bufio.NewScanner(strings.NewReader(
		"chr2\t500\t600\tname1\t0\n" +
			"chr1\t10\t10\n" +
			"chr1\t0\t1000\n")))
	expect.NoError(t, err)
	expect.True(t, regions.Intersects("chr1", 5, 15))
	expect.True(t, regions.Intersects("chr2", 501, 501))
	expect.False(t, regions.Intersects("chr3", 1, 100))

	_, err = scanBED(bufio.NewScanner(strings.NewReader("chr1\t100\n")))
	expect.NotNil(t, err)
	_, err = scanBED(bufio.NewScanner(strings.NewReader("chr1\t200\t100\n")))
	expect.NotNil(t, err)
}
