// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sweep_test

import (
	"sort"
	"testing"

	"github.com/pangenome/sweepga/sweep"
)

func runSorted(t *testing.T, ivs []sweep.Interval, params sweep.Params) []int {
	t.Helper()
	got, err := sweep.Run(ivs, params)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	sort.Ints(got)
	return got
}

func TestRunUnlimitedKeepsEverything(t *testing.T) {
	ivs := []sweep.Interval{
		{Idx: 0, Begin: 0, End: 100, Score: 1},
		{Idx: 1, Begin: 10, End: 90, Score: 2},
	}
	got := runSorted(t, ivs, sweep.Params{N: sweep.Unlimited, OverlapThreshold: 0.95})
	if len(got) != 2 {
		t.Fatalf("expected both intervals to survive, got %v", got)
	}
}

func TestRunContainmentDominance(t *testing.T) {
	// iv 1 fully contains iv 0 and scores higher; with n=1 and a strict
	// containment threshold, iv 0 must be dominated.
	ivs := []sweep.Interval{
		{Idx: 0, Begin: 10, End: 20, Score: 1},
		{Idx: 1, Begin: 0, End: 100, Score: 2},
	}
	got := runSorted(t, ivs, sweep.Params{N: 1, OverlapThreshold: 1.0})
	want := []int{1}
	if !equal(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestRunPartialOverlapBelowThresholdSurvives(t *testing.T) {
	// iv 1 overlaps only half of iv 0; with threshold 0.95, that does not
	// qualify as dominance.
	ivs := []sweep.Interval{
		{Idx: 0, Begin: 0, End: 100, Score: 1},
		{Idx: 1, Begin: 50, End: 150, Score: 2},
	}
	got := runSorted(t, ivs, sweep.Params{N: 1, OverlapThreshold: 0.95})
	want := []int{0, 1}
	if !equal(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestRunNRequiresSimultaneousCoverage(t *testing.T) {
	// Two higher-scoring intervals each cover half of iv 0's interior, but
	// never overlap each other, so their clipped ranges never jointly
	// reach depth 2 at any position: n=2 must not dominate iv 0.
	ivs := []sweep.Interval{
		{Idx: 0, Begin: 0, End: 100, Score: 1},
		{Idx: 1, Begin: 0, End: 50, Score: 2},
		{Idx: 2, Begin: 50, End: 100, Score: 2},
	}
	got := runSorted(t, ivs, sweep.Params{N: 2, OverlapThreshold: 0.0})
	if !contains(got, 0) {
		t.Fatalf("expected interval 0 to survive an n=2 rule with no simultaneous double coverage, got %v", got)
	}
}

func TestRunNWithSimultaneousCoverage(t *testing.T) {
	// Two higher-scoring intervals both span the whole of iv 0: depth 2
	// everywhere in the interior, so n=2 dominates it.
	ivs := []sweep.Interval{
		{Idx: 0, Begin: 0, End: 100, Score: 1},
		{Idx: 1, Begin: 0, End: 100, Score: 2},
		{Idx: 2, Begin: 0, End: 100, Score: 3},
	}
	got := runSorted(t, ivs, sweep.Params{N: 2, OverlapThreshold: 0.0})
	if contains(got, 0) {
		t.Fatalf("expected interval 0 to be dominated by two fully-overlapping higher intervals, got %v", got)
	}
}

func TestRunMonotonicInN(t *testing.T) {
	// Survivors at n must be a subset of survivors at n+1 (spec P2).
	ivs := []sweep.Interval{
		{Idx: 0, Begin: 0, End: 100, Score: 1},
		{Idx: 1, Begin: 0, End: 100, Score: 2},
		{Idx: 2, Begin: 0, End: 100, Score: 3},
		{Idx: 3, Begin: 0, End: 100, Score: 4},
	}
	prev := runSorted(t, ivs, sweep.Params{N: 1, OverlapThreshold: 0.0})
	for n := 2; n <= 4; n++ {
		cur := runSorted(t, ivs, sweep.Params{N: n, OverlapThreshold: 0.0})
		for _, p := range prev {
			if !contains(cur, p) {
				t.Fatalf("n=%d survivors %v do not contain n=%d survivor %d", n, cur, n-1, p)
			}
		}
		prev = cur
	}
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}
