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

/*
Given a tab-delimited table of CNV calls annotated with family IDs,
cnv-collapse merges, within each family and chromosome, the calls that
represent the same variant: equal copy-number and reciprocal overlap of at
least -overlap (default 0.7) on either side, closed under chaining.  Each
group is reported once, spanning the union of its members' coordinates.

Calls with different copy-numbers are never merged, nor are calls from
different families or chromosomes, no matter how their coordinates relate.

Sample usage:
cnv-collapse \
    -overlap 0.7 \
    -bed my-regions.bed \
    -out collapsed.tsv \
    calls.tsv
*/
package main
