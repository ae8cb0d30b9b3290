// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sweep implements the Plane Sweep Core (spec §4.3): given scored
// intervals on a single axis, it returns the indices that survive an
// "at-most-N-dominant" rule with a fractional-overlap tolerance.
package sweep

import "github.com/biogo/store/interval"

// Interval is a lightweight projection of a RecordMeta (or a scaffold
// chain) onto one axis (spec §3, "Interval").
type Interval struct {
	Idx   int // back-pointer into the caller's slice
	Begin int
	End   int
	Score float64
}

// Len returns End - Begin.
func (iv Interval) Len() int { return iv.End - iv.Begin }

// higherThan reports whether iv outranks other under the tie-break key
// (score, length, idx), all compared as "larger wins" (spec §4.2 "Ties in
// score are broken by (larger block length, larger index)").
func (iv Interval) higherThan(other Interval) bool {
	if iv.Score != other.Score {
		return iv.Score > other.Score
	}
	if l, ol := iv.Len(), other.Len(); l != ol {
		return l > ol
	}
	return iv.Idx > other.Idx
}

// treeInterval adapts Interval to biogo/store/interval.IntInterface so a
// group's intervals can be indexed in an interval.IntTree for overlap
// queries, the same structure cmd/cull's cullContained uses for its
// containment check, generalized here to fractional-overlap dominance.
type treeInterval struct {
	Interval
}

func (t treeInterval) Overlap(b interval.IntRange) bool {
	return t.Begin < b.End && b.Start < t.End
}

func (t treeInterval) ID() uintptr { return uintptr(t.Idx) }

func (t treeInterval) Range() interval.IntRange {
	return interval.IntRange{Start: t.Begin, End: t.End}
}

func buildTree(ivs []Interval) (*interval.IntTree, error) {
	var tree interval.IntTree
	for _, iv := range ivs {
		if err := tree.Insert(treeInterval{iv}, true); err != nil {
			return nil, err
		}
	}
	tree.AdjustRanges()
	return &tree, nil
}

// overlapLen returns the length of the overlap between two [begin,end)
// ranges, or 0 if they do not overlap.
func overlapLen(aBegin, aEnd, bBegin, bEnd int) int {
	lo := aBegin
	if bBegin > lo {
		lo = bBegin
	}
	hi := aEnd
	if bEnd < hi {
		hi = bEnd
	}
	if hi <= lo {
		return 0
	}
	return hi - lo
}
