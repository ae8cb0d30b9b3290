// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secondsweep implements the Scaffold-Guided Second Sweep (spec
// §4.5): each surviving scaffold chain is projected to an interval on
// each axis, the Plane Sweep Core runs over these projections to enforce
// scaffold-level cardinality, and non-member mappings within a deviation
// band of a surviving chain are rescued.
package secondsweep

import (
	"log"
	"sort"

	"github.com/biogo/store/step"

	"github.com/pangenome/sweepga/chain"
	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/group"
	"github.com/pangenome/sweepga/meta"
	"github.com/pangenome/sweepga/sweep"
)

// Outcome is the result of running the second sweep: which records are
// kept in the output and with what final chain_status.
type Outcome struct {
	Kept   map[int]bool
	Status map[int]meta.ChainStatus
}

// Apply groups chains the same way the Mapping Filter grouped records
// (cfg.Grouping), runs the scaffold-level plane sweep within each group,
// and then rescues non-member mappings that lie within
// cfg.ScaffoldMaxDeviation of a surviving chain's projected span.
func Apply(records []meta.RecordMeta, chains []chain.Chain, cfg config.Config) (Outcome, error) {
	out := Outcome{Kept: make(map[int]bool), Status: make(map[int]meta.ChainStatus)}
	if len(chains) == 0 {
		return out, nil
	}

	byGroup := make(map[string][]int) // group key -> chain indices
	for i, c := range chains {
		k := group.KeyForNames(c.QueryName, c.TargetName, cfg)
		byGroup[k] = append(byGroup[k], i)
	}

	groupKeys := make([]string, 0, len(byGroup))
	for k := range byGroup {
		groupKeys = append(groupKeys, k)
	}
	sort.Strings(groupKeys)

	var survivingChains []int
	for _, gk := range groupKeys {
		chainIdxs := byGroup[gk]

		queryIvs := make([]sweep.Interval, len(chainIdxs))
		targetIvs := make([]sweep.Interval, len(chainIdxs))
		for j, ci := range chainIdxs {
			c := &chains[ci]
			queryIvs[j] = sweep.Interval{Idx: ci, Begin: c.SpanQueryStart, End: c.SpanQueryEnd, Score: c.Score}
			targetIvs[j] = sweep.Interval{Idx: ci, Begin: c.SpanTargetStart, End: c.SpanTargetEnd, Score: c.Score}
		}

		qSurv, err := sweep.Run(queryIvs, sweep.Params{N: cfg.ScaffoldMaxPerQuery, OverlapThreshold: cfg.ScaffoldOverlapThreshold})
		if err != nil {
			return out, err
		}
		tSurv, err := sweep.Run(targetIvs, sweep.Params{N: cfg.ScaffoldMaxPerTarget, OverlapThreshold: cfg.ScaffoldOverlapThreshold})
		if err != nil {
			return out, err
		}
		qSet := make(map[int]bool, len(qSurv))
		for _, ci := range qSurv {
			qSet[ci] = true
		}
		for _, ci := range tSurv {
			if qSet[ci] {
				survivingChains = append(survivingChains, ci)
			}
		}
	}

	for _, ci := range survivingChains {
		c := &chains[ci]
		for _, m := range c.Members {
			out.Kept[m] = true
			out.Status[m] = meta.Member
		}
	}

	rescue(records, chains, survivingChains, out, cfg)

	if cfg.Verbose {
		logCoverage(chains, survivingChains)
	}

	return out, nil
}

// rescue marks non-member mappings that lie within cfg.ScaffoldMaxDeviation
// of a surviving chain's projected span on both axes (spec §4.5). Records
// already discarded by the Mapping Filter are never eligible: "discarded by
// mapping filter" is a terminal branch, disjoint from the
// unassigned->member/rescued branch (spec §4.6). A mapping is rescued by at
// most one chain (spec §9, Open Question (b): "the source keeps the first
// match").
func rescue(records []meta.RecordMeta, chains []chain.Chain, survivingChains []int, out Outcome, cfg config.Config) {
	type bucket struct {
		query, target string
		strand        int8
	}
	byBucket := make(map[bucket][]int) // surviving chain indices per bucket
	for _, ci := range survivingChains {
		c := &chains[ci]
		b := bucket{c.QueryName, c.TargetName, int8(c.Strand)}
		byBucket[b] = append(byBucket[b], ci)
	}

	for i := range records {
		if out.Kept[i] {
			continue // already a chain member
		}
		r := &records[i]
		if r.Discard {
			continue // dropped by the Mapping Filter; a terminal branch (spec §4.6)
		}
		b := bucket{r.QueryName, r.TargetName, int8(r.Strand)}
		candidates, ok := byBucket[b]
		if !ok {
			continue
		}
		for _, ci := range candidates {
			c := &chains[ci]
			if withinDeviation(r.QueryStart, r.QueryEnd, c.SpanQueryStart, c.SpanQueryEnd, cfg.ScaffoldMaxDeviation) &&
				withinDeviation(r.TargetStart, r.TargetEnd, c.SpanTargetStart, c.SpanTargetEnd, cfg.ScaffoldMaxDeviation) {
				out.Kept[i] = true
				out.Status[i] = meta.Rescued
				break // first match wins; no transitive multi-scaffold rescue
			}
		}
	}
}

// withinDeviation reports whether [start,end) lies within band of
// [spanStart,spanEnd).
func withinDeviation(start, end, spanStart, spanEnd, band int) bool {
	return start >= spanStart-band && end <= spanEnd+band
}

// logCoverage reports, per query, the total span bases claimed by
// surviving scaffolds, following cmd/cmpint's step.Vector idiom: seed at
// [0,1) with Relaxed growth, accumulate with ApplyRange, sum with Do.
func logCoverage(chains []chain.Chain, survivingChains []int) {
	byQuery := make(map[string][]int)
	for _, ci := range survivingChains {
		c := &chains[ci]
		byQuery[c.QueryName] = append(byQuery[c.QueryName], ci)
	}
	for query, idxs := range byQuery {
		v, err := step.New(0, 1, stepBool(false))
		if err != nil {
			continue
		}
		v.Relaxed = true
		for _, ci := range idxs {
			c := &chains[ci]
			if err := v.ApplyRange(c.SpanQueryStart, c.SpanQueryEnd, func(step.Equaler) step.Equaler { return stepBool(true) }); err != nil {
				continue
			}
		}
		var covered int
		v.Do(func(start, end int, e step.Equaler) {
			if bool(e.(stepBool)) {
				covered += end - start
			}
		})
		log.Printf("secondsweep: query=%s scaffolds=%d covered_bases=%d", query, len(idxs), covered)
	}
}

type stepBool bool

func (b stepBool) Equal(e step.Equaler) bool {
	ob, ok := e.(stepBool)
	return ok && ob == b
}
