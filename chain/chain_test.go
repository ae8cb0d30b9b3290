// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chain_test

import (
	"testing"

	"github.com/pangenome/sweepga/chain"
	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/format"
	"github.com/pangenome/sweepga/meta"
)

func makeRecord(qStart, qEnd, tStart, tEnd int) meta.RecordMeta {
	return meta.RecordMeta{
		QueryName: "q", TargetName: "t", Strand: format.Forward,
		QueryStart: qStart, QueryEnd: qEnd, TargetStart: tStart, TargetEnd: tEnd,
		BlockLength: qEnd - qStart, Matches: qEnd - qStart, Identity: 1.0, HasIdentity: true,
	}
}

func TestBuildMergesWithinGapBudget(t *testing.T) {
	records := []meta.RecordMeta{
		makeRecord(0, 100, 0, 100),
		makeRecord(110, 200, 110, 200), // 10bp gap on both axes
	}
	kept := map[int]bool{0: true, 1: true}
	cfg := config.Default()
	cfg.ScaffoldGap = 20
	cfg.NoMerge = true // isolate the linear-walk merge from the touching-chain merge

	chains := chain.Build(records, kept, cfg)
	if len(chains) != 1 {
		t.Fatalf("expected a single merged chain, got %d: %+v", len(chains), chains)
	}
	if len(chains[0].Members) != 2 {
		t.Fatalf("expected both records chained, got %+v", chains[0])
	}
}

func TestBuildSplitsOnExcessiveGap(t *testing.T) {
	records := []meta.RecordMeta{
		makeRecord(0, 100, 0, 100),
		makeRecord(150, 250, 150, 250), // 50bp gap
	}
	kept := map[int]bool{0: true, 1: true}
	cfg := config.Default()
	cfg.ScaffoldGap = 20
	cfg.NoMerge = true

	chains := chain.Build(records, kept, cfg)
	if len(chains) != 2 {
		t.Fatalf("expected two separate chains, got %d: %+v", len(chains), chains)
	}
}

func TestBuildGapMonotonicity(t *testing.T) {
	// As scaffold_gap grows, the number of resulting chains must never
	// increase (larger gap budgets only merge more, spec P3).
	records := []meta.RecordMeta{
		makeRecord(0, 100, 0, 100),
		makeRecord(130, 200, 130, 200),
		makeRecord(260, 330, 260, 330),
	}
	kept := map[int]bool{0: true, 1: true, 2: true}

	prevChains := -1
	for _, gap := range []int{10, 40, 100} {
		cfg := config.Default()
		cfg.ScaffoldGap = gap
		cfg.NoMerge = true
		chains := chain.Build(records, kept, cfg)
		if prevChains != -1 && len(chains) > prevChains {
			t.Fatalf("gap=%d produced more chains (%d) than a smaller gap (%d)", gap, len(chains), prevChains)
		}
		prevChains = len(chains)
	}
}

func TestBuildZeroGapDisablesChaining(t *testing.T) {
	records := []meta.RecordMeta{
		makeRecord(0, 100, 0, 100),
		makeRecord(100, 200, 100, 200),
	}
	kept := map[int]bool{0: true, 1: true}
	cfg := config.Default()
	cfg.ScaffoldGap = 0

	chains := chain.Build(records, kept, cfg)
	if len(chains) != 2 {
		t.Fatalf("expected scaffold_gap=0 to produce singleton chains, got %d: %+v", len(chains), chains)
	}
}

func TestBuildDropsChainsBelowMinScaffoldLength(t *testing.T) {
	records := []meta.RecordMeta{makeRecord(0, 10, 0, 10)}
	kept := map[int]bool{0: true}
	cfg := config.Default()
	cfg.MinScaffoldLength = 100

	chains := chain.Build(records, kept, cfg)
	if len(chains) != 0 {
		t.Fatalf("expected chain below min_scaffold_length to be dropped, got %+v", chains)
	}
}

func TestBuildReverseStrandGapDirection(t *testing.T) {
	// On the reverse strand, target coordinates run opposite to query
	// coordinates; the gap must be measured accordingly.
	records := []meta.RecordMeta{
		{QueryName: "q", TargetName: "t", Strand: format.Reverse,
			QueryStart: 0, QueryEnd: 100, TargetStart: 110, TargetEnd: 210,
			BlockLength: 100, Matches: 100, Identity: 1.0, HasIdentity: true},
		{QueryName: "q", TargetName: "t", Strand: format.Reverse,
			QueryStart: 110, QueryEnd: 200, TargetStart: 0, TargetEnd: 100,
			BlockLength: 90, Matches: 90, Identity: 1.0, HasIdentity: true},
	}
	kept := map[int]bool{0: true, 1: true}
	cfg := config.Default()
	cfg.ScaffoldGap = 20
	cfg.NoMerge = true

	chains := chain.Build(records, kept, cfg)
	if len(chains) != 1 {
		t.Fatalf("expected reverse-strand records to chain across a 10bp gap on both axes, got %d: %+v", len(chains), chains)
	}
}

func TestBuildAssignsSequentialChainIDs(t *testing.T) {
	records := []meta.RecordMeta{
		{QueryName: "qa", TargetName: "ta", Strand: format.Forward, QueryStart: 0, QueryEnd: 10, TargetStart: 0, TargetEnd: 10, BlockLength: 10, Matches: 10, Identity: 1.0, HasIdentity: true},
		{QueryName: "qb", TargetName: "tb", Strand: format.Forward, QueryStart: 0, QueryEnd: 10, TargetStart: 0, TargetEnd: 10, BlockLength: 10, Matches: 10, Identity: 1.0, HasIdentity: true},
	}
	kept := map[int]bool{0: true, 1: true}
	cfg := config.Default()

	chains := chain.Build(records, kept, cfg)
	if len(chains) != 2 {
		t.Fatalf("expected two chains, got %+v", chains)
	}
	if chains[1].ID != chains[0].ID+1 {
		t.Fatalf("expected sequential chain IDs, got %+v", chains)
	}
}
