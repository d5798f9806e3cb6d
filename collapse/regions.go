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
package collapse

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/biogo/store/interval"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/cnv/cnv"
	"github.com/klauspost/compress/gzip"
)

// bedInterval adapts one BED row, 0-based half-open, to biogo's
// interval-tree element interface.
type bedInterval struct {
	start, end int
	uid        uintptr
}

func (iv bedInterval) Overlap(b interval.IntRange) bool {
	return iv.end > b.Start && iv.start < b.End
}
func (iv bedInterval) ID() uintptr { return iv.uid }
func (iv bedInterval) Range() interval.IntRange {
	return interval.IntRange{Start: iv.start, End: iv.end}
}

// RegionSet answers interval-intersection queries against a BED's regions.
// Unlike a BED union, the input need not be sorted, and overlapping regions
// need not be merged; the trees answer intersection directly.
type RegionSet struct {
	trees map[string]*interval.IntTree
}

// Intersects reports whether the 1-based inclusive span [start, end] on
// chrom shares at least one base with any region.
func (r *RegionSet) Intersects(chrom string, start, end cnv.PosType) bool {
	tree := r.trees[chrom]
	if tree == nil {
		return false
	}
	return len(tree.Get(bedInterval{start: int(start) - 1, end: int(end)})) > 0
}

// FilterRows returns the rows whose call intersects at least one region.
func (r *RegionSet) FilterRows(rows []Row) []Row {
	var kept []Row
	for _, row := range rows {
		if r.Intersects(row.Chrom, row.Start, row.End) {
			kept = append(kept, row)
		}
	}
	return kept
}

func scanBED(scanner *bufio.Scanner) (*RegionSet, error) {
	regions := &RegionSet{trees: map[string]*interval.IntTree{}}
	var uid uintptr
	lineIdx := 0
	for scanner.Scan() {
		lineIdx++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("collapse.scanBED: line %d has fewer tokens than expected", lineIdx)
		}
		start, err := strconv.Atoi(fields[1])
		if err != nil || start < 0 {
			return nil, fmt.Errorf("collapse.scanBED: invalid start coordinate %q on line %d", fields[1], lineIdx)
		}
		end, err := strconv.Atoi(fields[2])
		if err != nil || end < start {
			return nil, fmt.Errorf("collapse.scanBED: invalid coordinate pair on line %d", lineIdx)
		}
		if end == start {
			// Empty interval; it can intersect nothing.
			continue
		}
		tree := regions.trees[fields[0]]
		if tree == nil {
			tree = &interval.IntTree{}
			regions.trees[fields[0]] = tree
		}
		if err := tree.Insert(bedInterval{start: start, end: end, uid: uid}, true); err != nil {
			return nil, err
		}
		uid++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	for _, tree := range regions.trees {
		tree.AdjustRanges()
	}
	log.Printf("BED loaded, %d region(s).\n", int(uid))
	return regions, nil
}

// ReadBED loads the first three columns of a BED file into a RegionSet.
// Coordinates are the usual 0-based [start, end).  The file need not be
// sorted.  Gzipped input is decompressed transparently.
func ReadBED(ctx context.Context, path string) (regions *RegionSet, err error) {
	var in file.File
	if in, err = file.Open(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, in, &err)
	reader := io.Reader(in.Reader(ctx))
	switch fileio.DetermineType(path) {
	case fileio.Gzip:
		var gz *gzip.Reader
		if gz, err = gzip.NewReader(reader); err != nil {
			return
		}
		defer func() {
			if cerr := gz.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		reader = gz
	}
	return scanBED(bufio.NewScanner(reader))
}
