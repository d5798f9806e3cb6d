package cnv

// unionFind is a disjoint-set forest over indexes 0..n-1, with union by size
// and path halving.  It stands in for a graph library: connected components
// of the overlap graph fall out of union-ing every passing pair.
type unionFind struct {
	parent []int
	size   []int
}

func newUnionFind(n int) unionFind {
	u := unionFind{
		parent: make([]int, n),
		size:   make([]int, n),
	}
	for i := range u.parent {
		u.parent[i] = i
		u.size[i] = 1
	}
	return u
}

func (u unionFind) find(x int) int {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

func (u unionFind) union(x, y int) {
	rx, ry := u.find(x), u.find(y)
	if rx == ry {
		return
	}
	if u.size[rx] < u.size[ry] {
		rx, ry = ry, rx
	}
	u.parent[ry] = rx
	u.size[rx] += u.size[ry]
}

// Cluster partitions a bucket of calls into groups representing the same
// underlying variant.  Two calls are grouped when they have equal
// copy-number and pass Overlaps, either directly or through a chain of
// intermediate calls.  Overlap is not transitive, so a group may contain
// pairs that individually fail the test; connectivity through the overlap
// graph is what defines membership, matching connected components rather
// than pairwise equality.  A call with no partner forms a singleton group.
//
// Every pair is examined, so cost is quadratic in the bucket size.  Buckets
// hold the calls of one family on one chromosome, typically tens of calls,
// and that simplicity is worth more than an interval-index here.
//
// The set is sorted before indexing, each group is emitted in sorted order,
// and groups are emitted in order of their smallest member, so the result is
// identical regardless of map iteration order.
func Cluster(s Set, minFrac float64) [][]CNV {
	calls := s.Sorted()
	u := newUnionFind(len(calls))
	for i := 0; i < len(calls); i++ {
		for j := i + 1; j < len(calls); j++ {
			if calls[i].CopyNumber == calls[j].CopyNumber && Overlaps(calls[i], calls[j], minFrac) {
				u.union(i, j)
			}
		}
	}
	clusters := make([][]CNV, 0, len(calls))
	clusterIdx := make(map[int]int, len(calls))
	for i, c := range calls {
		root := u.find(i)
		k, ok := clusterIdx[root]
		if !ok {
			k = len(clusters)
			clusterIdx[root] = k
			clusters = append(clusters, nil)
		}
		clusters[k] = append(clusters[k], c)
	}
	return clusters
}
