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
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/file"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/cnv/cnv"
)

// memberList renders a cluster as comma-separated start-end spans, e.g.
// "100-200,150-400".  Members share one chromosome and copy-number with the
// merged call, so repeating those per member would say nothing.
func memberList(members []cnv.CNV) string {
	var sb strings.Builder
	for i, c := range members {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(c.Start)))
		sb.WriteByte('-')
		sb.WriteString(strconv.Itoa(int(c.End)))
	}
	return sb.String()
}

// WriteResults writes one TSV row per merged call, preceded by a header.
// With members set, a final column lists the originating calls.
func WriteResults(w io.Writer, results []Result, members bool) (err error) {
	tsvw := tsv.NewWriter(w)
	tsvw.WriteString("family\tchr\tcoord_start\tcoord_end\tcopy_number")
	if members {
		tsvw.WriteString("members")
	}
	if err = tsvw.EndLine(); err != nil {
		return
	}
	for _, r := range results {
		tsvw.WriteString(r.Family)
		tsvw.WriteString(r.Merged.Chrom)
		tsvw.WriteUint32(uint32(r.Merged.Start))
		tsvw.WriteUint32(uint32(r.Merged.End))
		tsvw.WriteUint32(uint32(r.Merged.CopyNumber))
		if members {
			tsvw.WriteString(memberList(r.Members))
		}
		if err = tsvw.EndLine(); err != nil {
			return
		}
	}
	return tsvw.Flush()
}

// WriteResultsToPath is a wrapper for WriteResults that writes to a path
// instead of an io.Writer.
func WriteResultsToPath(ctx context.Context, path string, results []Result, members bool) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return
	}
	defer file.CloseAndReport(ctx, dst, &err)
	return WriteResults(dst.Writer(ctx), results, members)
}
