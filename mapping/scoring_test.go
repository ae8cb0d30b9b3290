// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapping_test

import (
	"math"
	"testing"

	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/mapping"
	"github.com/pangenome/sweepga/meta"
)

func TestScore(t *testing.T) {
	rm := &meta.RecordMeta{BlockLength: 100, Matches: 90, Identity: 0.9}

	tests := []struct {
		scoring config.Scoring
		want    float64
	}{
		{config.LogLengthIdentity, math.Log(100) * 0.9},
		{config.Matches, 90},
		{config.Length, 100},
		{config.IdentityScore, 0.9},
	}
	for _, tt := range tests {
		got := mapping.Score(rm, tt.scoring)
		if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("scoring %v: want %v, got %v", tt.scoring, tt.want, got)
		}
	}
}

func TestScoreZeroBlockLength(t *testing.T) {
	rm := &meta.RecordMeta{BlockLength: 0, Identity: 0.9}
	if got := mapping.Score(rm, config.LogLengthIdentity); got != 0 {
		t.Fatalf("expected 0 for zero block length, got %v", got)
	}
}
