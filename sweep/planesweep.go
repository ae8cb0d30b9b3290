// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep

import (
	"sort"

	"github.com/biogo/store/interval"
)

// Unlimited is the sentinel Params.N value meaning "no cardinality limit":
// config options absent a max_per_query/max_per_target value are mapped to
// this (spec §4.3, "When n = ∞, all intervals survive").
const Unlimited = 0

// Params configures one axis's dominance rule.
type Params struct {
	// N is the number of qualifying higher-ranked intervals that dominate
	// an interval when they cover its whole interior simultaneously (a
	// survivor has fewer than N at some position), or Unlimited for no
	// limit.
	N int
	// OverlapThreshold is the fractional-overlap tolerance in [0,1]
	// (spec §4.3; 1.0 requires strict containment, 0.0 dominates on any
	// overlap).
	OverlapThreshold float64
}

// Run returns the indices (as given in ivs[i].Idx) of intervals that
// survive the at-most-N-dominant rule under params.
//
// An interval I is dominated if there exist at least N intervals with a
// strictly higher tie-break key ((score, length, idx), larger wins) each
// overlapping I by at least OverlapThreshold*min(len(I), len(other)),
// and whose clipped overlaps with I jointly cover every position of I's
// interior simultaneously (spec §4.3).
func Run(ivs []Interval, params Params) ([]int, error) {
	if params.N == Unlimited || len(ivs) == 0 {
		out := make([]int, len(ivs))
		for i, iv := range ivs {
			out[i] = iv.Idx
		}
		return out, nil
	}

	tree, err := buildTree(ivs)
	if err != nil {
		return nil, err
	}

	var survivors []int
	for _, iv := range ivs {
		if !dominated(iv, tree, params) {
			survivors = append(survivors, iv.Idx)
		}
	}
	return survivors, nil
}

func dominated(iv Interval, tree *interval.IntTree, params Params) bool {
	overlapping := tree.Get(treeInterval{iv})
	var clipped [][2]int
	for _, o := range overlapping {
		cand := o.(treeInterval).Interval
		if cand.Idx == iv.Idx {
			continue
		}
		if !cand.higherThan(iv) {
			continue
		}
		ol := overlapLen(iv.Begin, iv.End, cand.Begin, cand.End)
		if ol == 0 {
			continue
		}
		minLen := iv.Len()
		if cand.Len() < minLen {
			minLen = cand.Len()
		}
		if float64(ol) < params.OverlapThreshold*float64(minLen) {
			continue
		}
		lo, hi := iv.Begin, iv.End
		if cand.Begin > lo {
			lo = cand.Begin
		}
		if cand.End < hi {
			hi = cand.End
		}
		clipped = append(clipped, [2]int{lo, hi})
	}
	if len(clipped) < params.N {
		return false
	}
	return minDepth(iv.Begin, iv.End, clipped) >= params.N
}

// minDepth returns the minimum number of ranges in clipped simultaneously
// covering any position of the interior of [begin,end).
func minDepth(begin, end int, clipped [][2]int) int {
	bps := make([]int, 0, len(clipped)*2+2)
	bps = append(bps, begin, end)
	for _, c := range clipped {
		bps = append(bps, c[0], c[1])
	}
	sort.Ints(bps)
	bps = uniqueSorted(bps)

	minD := len(clipped) + 1 // sentinel larger than any achievable depth
	for i := 0; i+1 < len(bps); i++ {
		lo, hi := bps[i], bps[i+1]
		if lo < begin {
			lo = begin
		}
		if hi > end {
			hi = end
		}
		if hi <= lo {
			continue
		}
		mid := lo + (hi-lo)/2
		depth := 0
		for _, c := range clipped {
			if c[0] <= mid && mid < c[1] {
				depth++
			}
		}
		if depth < minD {
			minD = depth
		}
	}
	if minD > len(clipped) {
		return 0
	}
	return minD
}

func uniqueSorted(s []int) []int {
	if len(s) == 0 {
		return s
	}
	j := 0
	for i := 1; i < len(s); i++ {
		if s[i] != s[j] {
			j++
			s[j] = s[i]
		}
	}
	return s[:j+1]
}
