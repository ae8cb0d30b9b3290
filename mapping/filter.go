// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mapping implements the Mapping Filter: a two-pass plane sweep
// that groups records, applies cutoffs, and intersects the query-axis and
// target-axis survivor sets (spec §4.2).
package mapping

import (
	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/group"
	"github.com/pangenome/sweepga/index"
	"github.com/pangenome/sweepga/meta"
	"github.com/pangenome/sweepga/sweep"
)

// Result is the outcome of one Apply call.
type Result struct {
	// Kept holds the indices (into the records slice Apply was given)
	// of records that survived both axis sweeps.
	Kept map[int]bool
	// Warnings are non-fatal, surfaced-once messages (spec §7).
	Warnings []string
}

// Apply partitions records by cfg.Grouping, and within each group applies
// min_block_length/min_identity cutoffs followed by query-axis and
// target-axis plane sweeps, keeping the intersection of both survivor
// sets (spec §4.2). An empty group produces no kept records, not an
// error; a malformed record is expected to have already aborted
// extraction, so Apply itself never rejects a record for being malformed.
func Apply(records []meta.RecordMeta, cfg config.Config, scratchDir string) (Result, error) {
	res := Result{Kept: make(map[int]bool)}

	idx, err := index.New(scratchDir)
	if err != nil {
		return res, err
	}
	defer idx.Close()

	for i := range records {
		r := &records[i]
		key := group.Key(r, cfg)
		if err := idx.Put(key, int64(r.QueryStart), i); err != nil {
			return res, err
		}
	}
	if err := idx.Flush(); err != nil {
		return res, err
	}

	warnedMatchesWithoutCIGAR := false
	err = idx.Groups(func(groupKey string, members []int) error {
		candidates := filterCutoffs(records, members, cfg)
		if len(candidates) == 0 {
			return nil
		}

		if cfg.Scoring == config.Matches && !warnedMatchesWithoutCIGAR {
			for _, i := range candidates {
				if !records[i].HasCIGAR {
					warnedMatchesWithoutCIGAR = true
					break
				}
			}
		}

		queryIvs := make([]sweep.Interval, len(candidates))
		targetIvs := make([]sweep.Interval, len(candidates))
		for j, i := range candidates {
			r := &records[i]
			score := Score(r, cfg.Scoring)
			queryIvs[j] = sweep.Interval{Idx: i, Begin: r.QueryStart, End: r.QueryEnd, Score: score}
			targetIvs[j] = sweep.Interval{Idx: i, Begin: r.TargetStart, End: r.TargetEnd, Score: score}
		}

		querySurvivors, err := sweep.Run(queryIvs, sweep.Params{N: cfg.MappingMaxPerQuery, OverlapThreshold: cfg.OverlapThreshold})
		if err != nil {
			return err
		}
		targetSurvivors, err := sweep.Run(targetIvs, sweep.Params{N: cfg.MappingMaxPerTarget, OverlapThreshold: cfg.OverlapThreshold})
		if err != nil {
			return err
		}

		querySet := make(map[int]bool, len(querySurvivors))
		for _, i := range querySurvivors {
			querySet[i] = true
		}
		for _, i := range targetSurvivors {
			if querySet[i] {
				res.Kept[i] = true
			}
		}
		return nil
	})
	if err != nil {
		return res, err
	}

	if warnedMatchesWithoutCIGAR {
		res.Warnings = append(res.Warnings, "scoring=matches without CIGARs: match counts may be estimates")
	}
	return res, nil
}

// filterCutoffs returns the subset of members whose RecordMeta passes
// min_block_length and min_identity. A record lacking any identity
// source fails the identity cutoff regardless of its threshold (spec §7).
func filterCutoffs(records []meta.RecordMeta, members []int, cfg config.Config) []int {
	var out []int
	for _, i := range members {
		r := &records[i]
		if r.BlockLength < cfg.MinBlockLength {
			continue
		}
		if !r.HasIdentity || r.Identity < cfg.MinIdentity {
			continue
		}
		out = append(out, i)
	}
	return out
}
