package cnv

import "fmt"

// Merge reduces a cluster to one call spanning the union of its members'
// coordinates.  Chromosome and copy-number are shared by every member — the
// clustering engine only connects equal-copy-number calls within one
// chromosome bucket — so they are taken from the first member, but checked:
// a mixed cluster is a programming error, and guessing would hide it.
// An empty cluster is likewise impossible under Cluster's contract.
func Merge(cluster []CNV) CNV {
	if len(cluster) == 0 {
		panic("internal error: cnv.Merge requires a non-empty cluster")
	}
	merged := cluster[0]
	for _, c := range cluster[1:] {
		if c.Chrom != merged.Chrom {
			panic(fmt.Sprintf("internal error: cnv.Merge: cluster mixes chromosomes %s and %s", merged.Chrom, c.Chrom))
		}
		if c.CopyNumber != merged.CopyNumber {
			panic(fmt.Sprintf("internal error: cnv.Merge: cluster mixes copy-numbers %d and %d", merged.CopyNumber, c.CopyNumber))
		}
		if c.Start < merged.Start {
			merged.Start = c.Start
		}
		if c.End > merged.End {
			merged.End = c.End
		}
	}
	return merged
}
