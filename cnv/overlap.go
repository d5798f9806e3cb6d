package cnv

// DefaultMinOverlap is the default reciprocal-overlap fraction above which
// two equal-copy-number calls are treated as the same variant.
const DefaultMinOverlap = 0.7

// Overlaps reports whether calls a and b overlap enough to represent the
// same variant.  The shared span must cover at least minFrac of a's length
// OR of b's length; requiring only one side means a short call sitting
// inside a long one always qualifies.  Copy-number is the caller's problem,
// not checked here.
//
// Calls that merely touch (overlapStart == overlapEnd, i.e. they share a
// single base) do not overlap; the comparison below is strict on purpose.
func Overlaps(a, b CNV, minFrac float64) bool {
	overlapStart := a.Start
	if b.Start > overlapStart {
		overlapStart = b.Start
	}
	overlapEnd := a.End
	if b.End < overlapEnd {
		overlapEnd = b.End
	}
	if overlapStart >= overlapEnd {
		return false
	}
	overlapLen := float64(overlapEnd - overlapStart + 1)
	return overlapLen/float64(a.Len()) >= minFrac ||
		overlapLen/float64(b.Len()) >= minFrac
}
