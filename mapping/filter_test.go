// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapping_test

import (
	"testing"

	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/format"
	"github.com/pangenome/sweepga/mapping"
	"github.com/pangenome/sweepga/meta"
)

func TestApplyKeepsIntersectionOfBothAxes(t *testing.T) {
	// Record 1 dominates record 0 on both the query and target axes
	// (full containment, same strand, higher identity).
	records := []meta.RecordMeta{
		{QueryName: "q", TargetName: "t", QueryStart: 10, QueryEnd: 20, TargetStart: 10, TargetEnd: 20,
			Strand: format.Forward, BlockLength: 10, Matches: 8, Identity: 0.8, HasIdentity: true},
		{QueryName: "q", TargetName: "t", QueryStart: 0, QueryEnd: 100, TargetStart: 0, TargetEnd: 100,
			Strand: format.Forward, BlockLength: 100, Matches: 99, Identity: 0.99, HasIdentity: true},
	}
	cfg := config.Default()
	cfg.OverlapThreshold = 1.0
	cfg.MappingMaxPerQuery = 1
	cfg.MappingMaxPerTarget = 1

	res, err := mapping.Apply(records, cfg, t.TempDir())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.Kept[1] {
		t.Fatalf("expected record 1 to survive, kept=%v", res.Kept)
	}
	if res.Kept[0] {
		t.Fatalf("expected record 0 to be dominated on both axes, kept=%v", res.Kept)
	}
}

func TestApplyCutoffsDropRecordsBeforeSweep(t *testing.T) {
	records := []meta.RecordMeta{
		{QueryName: "q", TargetName: "t", QueryStart: 0, QueryEnd: 100, TargetStart: 0, TargetEnd: 100,
			Strand: format.Forward, BlockLength: 5, Matches: 5, Identity: 1.0, HasIdentity: true},
	}
	cfg := config.Default()
	cfg.MinBlockLength = 10

	res, err := mapping.Apply(records, cfg, t.TempDir())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Kept) != 0 {
		t.Fatalf("expected min_block_length to drop the only record, kept=%v", res.Kept)
	}
}

func TestApplyRejectsRecordsLackingIdentitySource(t *testing.T) {
	records := []meta.RecordMeta{
		{QueryName: "q", TargetName: "t", QueryStart: 0, QueryEnd: 100, TargetStart: 0, TargetEnd: 100,
			Strand: format.Forward, BlockLength: 100, HasIdentity: false},
	}
	cfg := config.Default()
	cfg.MinIdentity = 0 // even a zero cutoff must still fail a record with no identity source

	res, err := mapping.Apply(records, cfg, t.TempDir())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(res.Kept) != 0 {
		t.Fatalf("expected record lacking identity source to be dropped, kept=%v", res.Kept)
	}
}

func TestApplyByGenomePairGrouping(t *testing.T) {
	records := []meta.RecordMeta{
		{QueryName: "gA#chr1", TargetName: "gB#chr1", QueryStart: 0, QueryEnd: 100, TargetStart: 0, TargetEnd: 100,
			Strand: format.Forward, BlockLength: 100, Matches: 100, Identity: 1.0, HasIdentity: true},
		{QueryName: "gA#chr2", TargetName: "gC#chr1", QueryStart: 0, QueryEnd: 100, TargetStart: 0, TargetEnd: 100,
			Strand: format.Forward, BlockLength: 100, Matches: 100, Identity: 1.0, HasIdentity: true},
	}
	cfg := config.Default()
	cfg.Grouping = config.ByGenomePair

	res, err := mapping.Apply(records, cfg, t.TempDir())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.Kept[0] || !res.Kept[1] {
		t.Fatalf("expected both distinct genome pairs to survive independently, kept=%v", res.Kept)
	}
}
