// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// sweepga-compare reports where two filter outcomes over the same input
// disagree: records kept by one run's output but not the other's. It
// emits a JSON agreement summary on stdout and, if -dot is given, a
// weighted discordance graph over (query, target) pairs in DOT format,
// mirroring cmd/cmpint's agree/mismatch accounting.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/pangenome/sweepga/meta"
)

func main() {
	aFile := flag.String("a", "", "specify the first filter output file (required)")
	bFile := flag.String("b", "", "specify the second filter output file (required)")
	out := flag.String("dot", "", "specify path prefix for a DOT file describing disagreements")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %[1]s:\n  $ %[1]s -a a.paf -b b.paf [-dot discord]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *aFile == "" || *bFile == "" {
		flag.Usage()
		os.Exit(2)
	}

	aRecords, err := meta.ExtractText(*aFile, false)
	if err != nil {
		log.Fatal(err)
	}
	bRecords, err := meta.ExtractText(*bFile, false)
	if err != nil {
		log.Fatal(err)
	}

	aSet := toSet(aRecords)
	bSet := toSet(bRecords)

	var agree, aOnly, bOnly int
	mismatches := make(map[pairKey]int)
	for k := range aSet {
		if bSet[k] {
			agree++
		} else {
			aOnly++
			mismatches[pairKey{query: k.query, target: k.target}]++
		}
	}
	for k := range bSet {
		if !aSet[k] {
			bOnly++
			mismatches[pairKey{query: k.query, target: k.target}]++
		}
	}

	summary := struct {
		Agree int `json:"agree"`
		AOnly int `json:"a_only"`
		BOnly int `json:"b_only"`
	}{agree, aOnly, bOnly}
	m, err := json.Marshal(summary)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s\n", m)

	if *out != "" {
		if err := dotOut(*out+".dot", *aFile, *bFile, mismatches); err != nil {
			log.Fatal(err)
		}
	}
}

// recordKey identifies a record by its coordinates rather than its
// handle, so records surviving into two independently-written output
// files can be compared regardless of either file's byte layout.
type recordKey struct {
	query, target          string
	queryStart, queryEnd   int
	targetStart, targetEnd int
}

type pairKey struct {
	query, target string
}

func toSet(records []meta.RecordMeta) map[recordKey]bool {
	set := make(map[recordKey]bool, len(records))
	for _, r := range records {
		set[recordKey{r.QueryName, r.TargetName, r.QueryStart, r.QueryEnd, r.TargetStart, r.TargetEnd}] = true
	}
	return set
}

func dotOut(path, aFile, bFile string, edges map[pairKey]int) error {
	g := newNameGraph()
	for p, w := range edges {
		e := edge{
			f: g.nodeFor(aFile, p.query),
			t: g.nodeFor(bFile, p.target),
			w: float64(w),
		}
		g.SetWeightedEdge(e)
	}
	b, err := dot.Marshal(g, "discord", "", "\t")
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0o664)
}

type nameGraph struct {
	*simple.WeightedUndirectedGraph
	idFor map[string]int64
}

func newNameGraph() nameGraph {
	return nameGraph{
		WeightedUndirectedGraph: simple.NewWeightedUndirectedGraph(0, 0),
		idFor:                   make(map[string]int64),
	}
}

func (g nameGraph) nodeFor(file, s string) graph.Node {
	s = file + ":" + s
	id, ok := g.idFor[s]
	if ok {
		return g.Node(id)
	}
	id = g.WeightedUndirectedGraph.NewNode().ID()
	g.idFor[s] = id
	n := node{id: id, name: s}
	g.AddNode(n)
	return n
}

type node struct {
	id   int64
	name string
}

func (n node) ID() int64     { return n.id }
func (n node) DOTID() string { return n.name }

type edge struct {
	f, t graph.Node
	w    float64
}

func (e edge) From() graph.Node         { return e.f }
func (e edge) To() graph.Node           { return e.t }
func (e edge) ReversedEdge() graph.Edge { return edge{f: e.t, t: e.f, w: e.w} }
func (e edge) Weight() float64          { return e.w }
func (e edge) Attributes() []encoding.Attribute {
	return []encoding.Attribute{{Key: "weight", Value: fmt.Sprint(e.w)}}
}
