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
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/cnv/collapse"
)

var (
	overlap     = flag.Float64("overlap", collapse.DefaultOpts.MinOverlap, "Reciprocal-overlap fraction, in (0,1], that two equal-copy-number CNVs need before they are merged")
	bedPath     = flag.String("bed", collapse.DefaultOpts.BedPath, "Optional BED path; only CNVs intersecting its regions are collapsed")
	members     = flag.Bool("members", collapse.DefaultOpts.Members, "Append a column listing each merged CNV's originating calls as start-end spans")
	outPath     = flag.String("out", "", "Output TSV path; default is stdout")
	parallelism = flag.Int("parallelism", collapse.DefaultOpts.Parallelism, "Maximum number of families collapsed concurrently; 0 = runtime.NumCPU()")
)

func cnvCollapseUsage() {
	fmt.Printf("Usage: %s [OPTIONS] cnvpath\n", os.Args[0])
	fmt.Printf("Other options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = cnvCollapseUsage
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() != 1 {
		log.Fatalf("Exactly one positional argument (the CNV table path) expected; please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	ctx := vcontext.Background()
	opts := collapse.Opts{
		MinOverlap:  *overlap,
		BedPath:     *bedPath,
		Members:     *members,
		Parallelism: *parallelism,
	}
	results, err := collapse.Collapse(ctx, flag.Arg(0), &opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if *outPath == "" {
		err = collapse.WriteResults(os.Stdout, results, opts.Members)
	} else {
		err = collapse.WriteResultsToPath(ctx, *outPath, results, opts.Members)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Debug.Printf("exiting")
}
