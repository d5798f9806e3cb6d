// Copyright 2026 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package collapse deduplicates the CNV calls of each family: calls on one
// chromosome with equal copy-number and sufficient reciprocal overlap are
// collapsed into one call spanning their union.  The clustering itself lives
// in the cnv package; this package owns ingestion, bucketing, the per-family
// driver, and output.
package collapse

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/cnv/cnv"
)

// Row is one line of the input CNV table: a call plus the family it belongs
// to.
type Row struct {
	Family     string
	Chrom      string
	Start, End cnv.PosType
	CopyNumber int
}

// Opts mirrors the commandline options.
type Opts struct {
	// MinOverlap is the reciprocal-overlap fraction, in (0, 1], that two
	// equal-copy-number calls need before they are treated as one variant.
	MinOverlap float64
	// BedPath, if nonempty, restricts collapsing to calls intersecting the
	// BED's regions.
	BedPath string
	// Members adds each merged call's originating calls to the output.
	Members bool
	// Parallelism bounds the number of families collapsed concurrently;
	// 0 means runtime.NumCPU().
	Parallelism int
}

// DefaultOpts sets the default values of Opts.
var DefaultOpts = Opts{
	MinOverlap: cnv.DefaultMinOverlap,
}

// FamilyCNVs maps family ID -> chromosome -> the family's deduplicated calls
// on that chromosome.  Built once by PartitionRows, read-only afterwards.
type FamilyCNVs map[string]map[string]cnv.Set

// PartitionRows buckets raw rows by (family, chromosome).  Identical calls
// within one bucket collapse to a single set member; calls in different
// buckets never interact downstream, even with identical coordinates.
func PartitionRows(rows []Row) FamilyCNVs {
	families := make(FamilyCNVs)
	for _, row := range rows {
		chroms := families[row.Family]
		if chroms == nil {
			chroms = make(map[string]cnv.Set)
			families[row.Family] = chroms
		}
		set := chroms[row.Chrom]
		if set == nil {
			set = make(cnv.Set)
			chroms[row.Chrom] = set
		}
		set.Add(cnv.CNV{
			Chrom:      row.Chrom,
			Start:      row.Start,
			End:        row.End,
			CopyNumber: row.CopyNumber,
		})
	}
	return families
}

// Result is one merged call, the family it came from, and the cluster that
// produced it.  Members is sorted and always has at least one element.
type Result struct {
	Family  string
	Merged  cnv.CNV
	Members []cnv.CNV
}

// Group collapses every (family, chromosome) bucket and returns the merged
// calls.  Buckets are independent, so families are split across parallel
// jobs; this only affects speed, never the result.  Results are ordered by
// (family, chromosome, start, end, copy-number) so repeated runs produce
// byte-identical output.
func Group(families FamilyCNVs, opts *Opts) ([]Result, error) {
	famIDs := make([]string, 0, len(families))
	for id := range families {
		famIDs = append(famIDs, id)
	}
	if len(famIDs) == 0 {
		return nil, nil
	}
	sort.Strings(famIDs)

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}
	if parallelism > len(famIDs) {
		parallelism = len(famIDs)
	}
	perJob := make([][]Result, parallelism)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * len(famIDs)) / parallelism
		endIdx := ((jobIdx + 1) * len(famIDs)) / parallelism
		var results []Result
		for _, famID := range famIDs[startIdx:endIdx] {
			for _, set := range families[famID] {
				for _, cluster := range cnv.Cluster(set, opts.MinOverlap) {
					results = append(results, Result{
						Family:  famID,
						Merged:  cnv.Merge(cluster),
						Members: cluster,
					})
				}
			}
		}
		perJob[jobIdx] = results
		return nil
	})
	if err != nil {
		return nil, err
	}
	var results []Result
	for _, jobResults := range perJob {
		results = append(results, jobResults...)
	}
	sort.Slice(results, func(i, j int) bool {
		ri, rj := &results[i], &results[j]
		if ri.Family != rj.Family {
			return ri.Family < rj.Family
		}
		if ri.Merged.Chrom != rj.Merged.Chrom {
			return ri.Merged.Chrom < rj.Merged.Chrom
		}
		if ri.Merged.Start != rj.Merged.Start {
			return ri.Merged.Start < rj.Merged.Start
		}
		if ri.Merged.End != rj.Merged.End {
			return ri.Merged.End < rj.Merged.End
		}
		return ri.Merged.CopyNumber < rj.Merged.CopyNumber
	})
	return results, nil
}

// Collapse runs the whole pipeline: read the CNV table at tablePath, apply
// the optional BED restriction, bucket by (family, chromosome), and collapse
// every bucket.
func Collapse(ctx context.Context, tablePath string, opts *Opts) ([]Result, error) {
	if opts.MinOverlap <= 0 || opts.MinOverlap > 1 {
		return nil, fmt.Errorf("collapse.Collapse: overlap fraction %v out of range (0, 1]", opts.MinOverlap)
	}
	rows, err := ReadCNVTable(ctx, tablePath)
	if err != nil {
		return nil, err
	}
	if opts.BedPath != "" {
		regions, err := ReadBED(ctx, opts.BedPath)
		if err != nil {
			return nil, err
		}
		nRaw := len(rows)
		rows = regions.FilterRows(rows)
		log.Printf("BED restriction kept %d of %d call(s).\n", len(rows), nRaw)
	}
	return Group(PartitionRows(rows), opts)
}
