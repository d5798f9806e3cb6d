package cnv

import "sort"

// PosType is the integer type used to represent genomic positions.  CNV
// callers inherit BAM's 2^31-1 position limit, so int32 is sufficient for
// the same reason it is in BED/BAM handling code.
type PosType = int32

// CNV is a single copy-number-variant call.  Start and End are 1-based and
// both inclusive; Start <= End is assumed, not checked (the ingestion layer
// rejects rows that violate it).  CNV is a plain comparable value: two calls
// with identical fields are the same call, so a CNV can key a map.
type CNV struct {
	Chrom      string
	Start, End PosType
	CopyNumber int
}

// Len returns the number of bases the call covers.
func (c CNV) Len() PosType {
	return c.End - c.Start + 1
}

// less orders calls by (Start, End, CopyNumber, Chrom).  Within one
// family/chromosome bucket Chrom never differs; it participates anyway so
// the order is total over arbitrary calls.
func less(a, b CNV) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.End != b.End {
		return a.End < b.End
	}
	if a.CopyNumber != b.CopyNumber {
		return a.CopyNumber < b.CopyNumber
	}
	return a.Chrom < b.Chrom
}

// SortCNVs sorts calls in place by (start, end, copy-number, chromosome).
func SortCNVs(calls []CNV) {
	sort.Slice(calls, func(i, j int) bool { return less(calls[i], calls[j]) })
}

// Set is a deduplicated collection of calls.
type Set map[CNV]struct{}

// Add inserts a call; inserting an identical call again is a no-op.
func (s Set) Add(c CNV) {
	s[c] = struct{}{}
}

// Contains reports whether the call is in the set.
func (s Set) Contains(c CNV) bool {
	_, ok := s[c]
	return ok
}

// Sorted returns the set's members ordered by (start, end, copy-number,
// chromosome), so callers iterating over a Set do not depend on map order.
func (s Set) Sorted() []CNV {
	calls := make([]CNV, 0, len(s))
	for c := range s {
		calls = append(calls, c)
	}
	SortCNVs(calls)
	return calls
}
