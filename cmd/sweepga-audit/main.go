// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sweepga-audit exposes the streaming index built during a filter run so
// its group partitioning and query-start ordering can be inspected
// directly. The index itself is scratch state normally discarded at the
// end of a filter Run; this command rebuilds one from an input file and
// dumps it as a JSON stream on stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/filter"
	"github.com/pangenome/sweepga/group"
	"github.com/pangenome/sweepga/index"
	"github.com/pangenome/sweepga/meta"
)

func main() {
	in := flag.String("in", "", "specify input alignment file (required)")
	formatFlag := flag.String("format", "text", "specify input format: text or binary")
	grouping := flag.String("grouping", "global", "specify grouping: global, by_query, or by_genome_pair")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %[1]s:\n  $ %[1]s -in in.paf [-grouping by_genome_pair] >audit.jsonl\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	inputFormat, err := filter.ParseFormat(*formatFlag)
	if err != nil {
		log.Fatal(err)
	}

	cfg := config.Default()
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

	var records []meta.RecordMeta
	switch inputFormat {
	case filter.Text:
		records, err = meta.ExtractText(*in, false)
	case filter.Binary:
		records, _, err = meta.ExtractBinary(*in, false)
	}
	if err != nil {
		log.Fatal(err)
	}

	scratchDir, err := ioutil.TempDir("", "sweepga-audit-")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(scratchDir)

	idx, err := index.New(scratchDir)
	if err != nil {
		log.Fatal(err)
	}
	defer idx.Close()

	for i := range records {
		r := &records[i]
		key := group.Key(r, cfg)
		if err := idx.Put(key, int64(r.QueryStart), i); err != nil {
			log.Fatal(err)
		}
	}
	if err := idx.Flush(); err != nil {
		log.Fatal(err)
	}

	enc := json.NewEncoder(os.Stdout)
	err = idx.Groups(func(groupKey string, idxs []int) error {
		for _, i := range idxs {
			r := &records[i]
			err := enc.Encode(entry{
				Group:       groupKey,
				Index:       i,
				QueryName:   r.QueryName,
				TargetName:  r.TargetName,
				QueryStart:  r.QueryStart,
				QueryEnd:    r.QueryEnd,
				TargetStart: r.TargetStart,
				TargetEnd:   r.TargetEnd,
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}
}

type entry struct {
	Group       string `json:"group"`
	Index       int    `json:"index"`
	QueryName   string `json:"query_name"`
	TargetName  string `json:"target_name"`
	QueryStart  int    `json:"query_start"`
	QueryEnd    int    `json:"query_end"`
	TargetStart int    `json:"target_start"`
	TargetEnd   int    `json:"target_end"`
}
