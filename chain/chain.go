// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chain implements the Scaffold Chainer (spec §4.4): for each
// (query, target, strand) bucket, it merges colinear mappings whose gaps
// stay under a configurable budget into chains, scores them, and drops
// chains under a minimum aligned-mass threshold. The walk generalizes
// cmd/ins/fragment.go's near-gap region merge from a single proximity
// threshold on one axis to independent query/target gap budgets with
// strand-aware target-axis direction.
package chain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/format"
	"github.com/pangenome/sweepga/meta"
)

// Chain is a maximal colinear run of mappings sharing one
// (query_name, target_name, strand) bucket (spec §3).
type Chain struct {
	ID         int
	QueryName  string
	TargetName string
	Strand     format.Strand

	Members []int // indices into the records slice

	SpanQueryStart, SpanQueryEnd   int
	SpanTargetStart, SpanTargetEnd int

	AlignedMass      int
	WeightedIdentity float64
	Score            float64
}

type bucketKey struct {
	query, target string
	strand        format.Strand
}

// Build chains the surviving records (kept) according to cfg.ScaffoldGap,
// cfg.MergeTolerance/NoMerge, and cfg.MinScaffoldLength.
// gapBudget == 0 disables chaining: every kept record becomes its own
// singleton chain so the second sweep can still treat mappings uniformly
// (spec §6, "scaffold_gap: 0 disables chaining").
func Build(records []meta.RecordMeta, kept map[int]bool, cfg config.Config) []Chain {
	buckets := make(map[bucketKey][]int)
	for i := range records {
		if !kept[i] {
			continue
		}
		r := &records[i]
		k := bucketKey{r.QueryName, r.TargetName, r.Strand}
		buckets[k] = append(buckets[k], i)
	}

	keys := make([]bucketKey, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(a, b int) bool {
		if keys[a].query != keys[b].query {
			return keys[a].query < keys[b].query
		}
		if keys[a].target != keys[b].target {
			return keys[a].target < keys[b].target
		}
		return keys[a].strand < keys[b].strand
	})

	var chains []Chain
	nextID := 0
	for _, k := range keys {
		members := buckets[k]
		sort.Slice(members, func(a, b int) bool {
			return records[members[a]].QueryStart < records[members[b]].QueryStart
		})

		var runs [][]int
		if cfg.ScaffoldGap <= 0 {
			for _, m := range members {
				runs = append(runs, []int{m})
			}
		} else {
			runs = walk(records, members, k.strand, cfg.ScaffoldGap)
		}

		if !cfg.NoMerge && cfg.ScaffoldGap > 0 {
			runs = mergeTouching(records, runs, k.strand, cfg.MergeTolerance)
		}

		for _, run := range runs {
			c := score(records, run, k)
			if c.AlignedMass < cfg.MinScaffoldLength {
				continue
			}
			if c.WeightedIdentity < cfg.MinScaffoldIdentity {
				continue
			}
			c.ID = nextID
			nextID++
			chains = append(chains, c)
		}
	}
	return chains
}

// walk performs the linear merge described in spec §4.4 step 2-3.
func walk(records []meta.RecordMeta, members []int, strand format.Strand, gapBudget int) [][]int {
	var runs [][]int
	var cur []int
	for _, m := range members {
		if len(cur) == 0 {
			cur = []int{m}
			continue
		}
		last := &records[cur[len(cur)-1]]
		next := &records[m]

		queryGap := next.QueryStart - last.QueryEnd
		if queryGap < 0 {
			queryGap = 0
		}

		var targetGap int
		if strand == format.Forward {
			targetGap = next.TargetStart - last.TargetEnd
		} else {
			targetGap = last.TargetStart - next.TargetEnd
		}
		if targetGap < 0 {
			targetGap = 0
		}

		if queryGap <= gapBudget && targetGap <= gapBudget {
			cur = append(cur, m)
		} else {
			runs = append(runs, cur)
			cur = []int{m}
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}

// mergeTouching concatenates adjacent runs whose chain-level gap on both
// axes is within tolerance, unless no_merge is set (spec §4.4, "Merging
// policy").
func mergeTouching(records []meta.RecordMeta, runs [][]int, strand format.Strand, tolerance int) [][]int {
	if len(runs) < 2 {
		return runs
	}
	var merged [][]int
	cur := runs[0]
	for i := 1; i < len(runs); i++ {
		next := runs[i]
		curSpan := span(records, cur)
		nextSpan := span(records, next)

		queryGap := nextSpan.qStart - curSpan.qEnd
		if queryGap < 0 {
			queryGap = 0
		}
		var targetGap int
		if strand == format.Forward {
			targetGap = nextSpan.tStart - curSpan.tEnd
		} else {
			targetGap = curSpan.tStart - nextSpan.tEnd
		}
		if targetGap < 0 {
			targetGap = 0
		}

		if queryGap <= tolerance && targetGap <= tolerance {
			cur = append(append([]int{}, cur...), next...)
		} else {
			merged = append(merged, cur)
			cur = next
		}
	}
	merged = append(merged, cur)
	return merged
}

type spanT struct{ qStart, qEnd, tStart, tEnd int }

func span(records []meta.RecordMeta, run []int) spanT {
	s := spanT{qStart: math.MaxInt32, tStart: math.MaxInt32}
	for _, i := range run {
		r := &records[i]
		if r.QueryStart < s.qStart {
			s.qStart = r.QueryStart
		}
		if r.QueryEnd > s.qEnd {
			s.qEnd = r.QueryEnd
		}
		if r.TargetStart < s.tStart {
			s.tStart = r.TargetStart
		}
		if r.TargetEnd > s.tEnd {
			s.tEnd = r.TargetEnd
		}
	}
	return s
}

// score computes a chain's aggregate counters and score(chain) =
// log(aligned_mass) * weighted_identity (spec §4.4).
func score(records []meta.RecordMeta, run []int, k bucketKey) Chain {
	s := span(records, run)
	var mass int
	weights := make([]float64, len(run))
	identities := make([]float64, len(run))
	for j, i := range run {
		r := &records[i]
		mass += r.BlockLength
		weights[j] = float64(r.BlockLength)
		identities[j] = r.Identity
	}
	weightedIdentity := 0.0
	if mass > 0 {
		weightedIdentity = stat.Mean(identities, weights)
	}
	sc := 0.0
	if mass > 0 {
		sc = math.Log(float64(mass)) * weightedIdentity
	}
	return Chain{
		QueryName:        k.query,
		TargetName:       k.target,
		Strand:           k.strand,
		Members:          append([]int{}, run...),
		SpanQueryStart:   s.qStart,
		SpanQueryEnd:     s.qEnd,
		SpanTargetStart:  s.tStart,
		SpanTargetEnd:    s.tEnd,
		AlignedMass:      mass,
		WeightedIdentity: weightedIdentity,
		Score:            sc,
	}
}
