// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sweepga-filter runs the plane-sweep dominance filter and scaffold
// chainer over a whole-genome alignment file, writing the surviving
// records to an output file.
//
// usage: sweepga-filter -in in.paf -out out.paf [options]
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/filter"
)

func main() {
	log.SetFlags(0)
	log.Println(os.Args)

	in := flag.String("in", "", "specify input alignment file (required)")
	out := flag.String("out", "", "specify output alignment file (required)")
	formatFlag := flag.String("format", "text", "specify input/output format: text or binary")
	grouping := flag.String("grouping", "global", "specify grouping: global, by_query, or by_genome_pair")
	delim := flag.String("prefix-delimiter", "#", "specify genome prefix delimiter")
	skipPrefix := flag.Bool("skip-prefix", false, "disable prefix-based grouping")
	mappingMaxQuery := flag.Int("mapping-max-per-query", 0, "specify primary sweep per-query n (0 is unlimited)")
	mappingMaxTarget := flag.Int("mapping-max-per-target", 0, "specify primary sweep per-target n (0 is unlimited)")
	scaffoldMaxQuery := flag.Int("scaffold-max-per-query", 0, "specify scaffold sweep per-query n (0 is unlimited)")
	scaffoldMaxTarget := flag.Int("scaffold-max-per-target", 0, "specify scaffold sweep per-target n (0 is unlimited)")
	overlapThreshold := flag.Float64("overlap-threshold", 0.95, "specify primary sweep overlap threshold in [0,1]")
	scaffoldOverlapThreshold := flag.Float64("scaffold-overlap-threshold", 1.0, "specify scaffold sweep overlap threshold in [0,1]")
	scaffoldGap := flag.Int("scaffold-gap", 0, "specify chaining gap budget (0 disables chaining)")
	minScaffoldLength := flag.Int("min-scaffold-length", 0, "specify minimum chain aligned mass")
	scaffoldMaxDeviation := flag.Int("scaffold-max-deviation", 0, "specify rescue band width")
	mergeTolerance := flag.Int("merge-tolerance", 100, "specify touching-chain merge tolerance")
	noMerge := flag.Bool("no-merge", false, "disable touching-chain merge")
	minBlockLength := flag.Int("min-block-length", 0, "specify minimum mapping block length")
	minIdentity := flag.Float64("min-identity", 0, "specify minimum mapping identity in [0,1]")
	minScaffoldIdentity := flag.Float64("min-scaffold-identity", 0, "specify minimum chain identity in [0,1]")
	scoring := flag.String("scoring", "log_length_identity", "specify scoring: log_length_identity, matches, length, or identity")
	verbose := flag.Bool("verbose", false, "specify verbose logging")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `Usage of %[1]s:
  $ %[1]s -in in.paf -out out.paf [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	inputFormat, err := filter.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
	cfg.Verbose = *verbose
	cfg.SkipPrefix = *skipPrefix
	if len(*delim) != 1 {
		log.Fatal("prefix-delimiter must be a single character")
	}
	cfg.PrefixDelimiter = (*delim)[0]

	switch *grouping {
	case "global":
		cfg.Grouping = config.Global
	case "by_query":
		cfg.Grouping = config.ByQuery
	case "by_genome_pair":
		cfg.Grouping = config.ByGenomePair
	default:
		log.Fatalf("unrecognized grouping %q", *grouping)
	}

	switch *scoring {
	case "log_length_identity":
		cfg.Scoring = config.LogLengthIdentity
	case "matches":
		cfg.Scoring = config.Matches
	case "length":
		cfg.Scoring = config.Length
	case "identity":
		cfg.Scoring = config.IdentityScore
	default:
		log.Fatalf("unrecognized scoring %q", *scoring)
	}

	cfg.MappingMaxPerQuery = *mappingMaxQuery
	cfg.MappingMaxPerTarget = *mappingMaxTarget
	cfg.ScaffoldMaxPerQuery = *scaffoldMaxQuery
	cfg.ScaffoldMaxPerTarget = *scaffoldMaxTarget
	cfg.OverlapThreshold = *overlapThreshold
	cfg.ScaffoldOverlapThreshold = *scaffoldOverlapThreshold
	cfg.ScaffoldGap = *scaffoldGap
	cfg.MinScaffoldLength = *minScaffoldLength
	cfg.ScaffoldMaxDeviation = *scaffoldMaxDeviation
	cfg.MergeTolerance = *mergeTolerance
	cfg.NoMerge = *noMerge
	cfg.MinBlockLength = *minBlockLength
	cfg.MinIdentity = *minIdentity
	cfg.MinScaffoldIdentity = *minScaffoldIdentity

	status, rep, err := filter.Run(filter.Options{
		InputPath:  *in,
		OutputPath: *out,
		Format:     inputFormat,
		Config:     cfg,
	})
	if err != nil {
		log.Printf("exit status: %s", status)
		log.Fatal(err)
	}
	log.Printf("extracted=%d kept=%d chains=%d rescued=%d", rep.Extracted, rep.Kept, rep.Chains, rep.Rescued)
}
