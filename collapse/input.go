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
	"math"
	"strconv"
	"strings"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/grailbio/cnv/cnv"
	"github.com/klauspost/compress/gzip"
)

// Names of the consumed columns, as emitted in the upstream master sample
// sheet.  All other columns are ignored.
const (
	colFamily     = "master_sample_sheet_FAMILY_ID"
	colChrom      = "chr"
	colStart      = "coord_start"
	colEnd        = "coord_end"
	colCopyNumber = "copy_number"
)

// columnIndex holds the header position of each consumed column.  The
// columns may appear anywhere in the header, in any order; base/tsv's struct
// reader binds fields positionally, which is why the lookup is by name here.
type columnIndex struct {
	family, chrom, start, end, copyNumber int
}

func (idx columnIndex) minFields() int {
	n := idx.family
	for _, pos := range []int{idx.chrom, idx.start, idx.end, idx.copyNumber} {
		if pos > n {
			n = pos
		}
	}
	return n + 1
}

func resolveColumns(header []string) (idx columnIndex, err error) {
	idx = columnIndex{-1, -1, -1, -1, -1}
	for i, name := range header {
		switch strings.TrimSpace(name) {
		case colFamily:
			idx.family = i
		case colChrom:
			idx.chrom = i
		case colStart:
			idx.start = i
		case colEnd:
			idx.end = i
		case colCopyNumber:
			idx.copyNumber = i
		}
	}
	for _, col := range []struct {
		name string
		pos  int
	}{
		{colFamily, idx.family},
		{colChrom, idx.chrom},
		{colStart, idx.start},
		{colEnd, idx.end},
		{colCopyNumber, idx.copyNumber},
	} {
		if col.pos == -1 {
			err = errors.E(fmt.Sprintf("CNV table is missing column %q", col.name))
			return
		}
	}
	return
}

func parsePos(token string, lineIdx int) (cnv.PosType, error) {
	pos, err := strconv.Atoi(token)
	if err != nil || pos < 0 || pos >= math.MaxInt32 {
		return 0, fmt.Errorf("collapse.scanCNVTable: invalid coordinate %q on line %d", token, lineIdx)
	}
	return cnv.PosType(pos), nil
}

func scanCNVTable(scanner *bufio.Scanner) (rows []Row, err error) {
	if !scanner.Scan() {
		if err = scanner.Err(); err != nil {
			return
		}
		err = errors.E("empty CNV table")
		return
	}
	var cols columnIndex
	if cols, err = resolveColumns(strings.Split(scanner.Text(), "\t")); err != nil {
		return
	}
	minFields := cols.minFields()
	lineIdx := 1
	for scanner.Scan() {
		lineIdx++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < minFields {
			err = fmt.Errorf("collapse.scanCNVTable: line %d has fewer columns than the header promises", lineIdx)
			return
		}
		row := Row{
			Family: fields[cols.family],
			Chrom:  fields[cols.chrom],
		}
		if row.Start, err = parsePos(fields[cols.start], lineIdx); err != nil {
			return
		}
		if row.End, err = parsePos(fields[cols.end], lineIdx); err != nil {
			return
		}
		if row.End < row.Start {
			err = fmt.Errorf("collapse.scanCNVTable: end %d before start %d on line %d", row.End, row.Start, lineIdx)
			return
		}
		if row.CopyNumber, err = strconv.Atoi(fields[cols.copyNumber]); err != nil || row.CopyNumber < 0 {
			err = fmt.Errorf("collapse.scanCNVTable: invalid copy-number %q on line %d", fields[cols.copyNumber], lineIdx)
			return
		}
		rows = append(rows, row)
	}
	err = scanner.Err()
	return
}

// ReadCNVTable loads CNV calls from the tab-delimited table at path.  The
// first row must be a header containing (among any number of other columns,
// in any order) master_sample_sheet_FAMILY_ID, chr, coord_start, coord_end,
// and copy_number.  Coordinates are 1-based inclusive.  Gzipped tables are
// decompressed transparently, and path can be anything base/file
// understands.
func ReadCNVTable(ctx context.Context, path string) (rows []Row, err error) {
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
	if rows, err = scanCNVTable(bufio.NewScanner(reader)); err != nil {
		return
	}
	log.Printf("CNV table loaded, %d call(s).\n", len(rows))
	return
}
