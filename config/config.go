// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the recognized filter configuration (spec §6) and
// its validation.
package config

import "fmt"

// Grouping selects the partitioning key the Mapping Filter groups records
// by before running the per-axis plane sweeps (spec §4.2).
type Grouping int

const (
	Global Grouping = iota
	ByQuery
	ByGenomePair
)

// Scoring selects the interval score function used by the Mapping Filter
// (spec §4.2). The Scaffold Chainer does not read it: chain scores are
// always log(aligned_mass) * weighted_identity.
type Scoring int

const (
	LogLengthIdentity Scoring = iota
	Matches
	Length
	IdentityScore
)

// Config is the full set of options recognized by the filter (spec §6).
// Zero values correspond to "no limit"/"disabled" where the table marks a
// field optional.
type Config struct {
	Grouping        Grouping
	PrefixDelimiter byte
	SkipPrefix      bool

	MappingMaxPerQuery  int // 0 means unlimited
	MappingMaxPerTarget int // 0 means unlimited

	ScaffoldMaxPerQuery  int // 0 means unlimited
	ScaffoldMaxPerTarget int // 0 means unlimited

	OverlapThreshold         float64
	ScaffoldOverlapThreshold float64

	ScaffoldGap           int // 0 disables chaining
	MinScaffoldLength     int
	ScaffoldMaxDeviation  int
	MergeTolerance        int // default 100, see spec §4.4 "Merging policy"
	NoMerge               bool

	MinBlockLength     int
	MinIdentity        float64
	MinScaffoldIdentity float64

	Scoring Scoring

	// Verbose enables progress logging during extraction, the second
	// sweep's per-query coverage summary, and the final run summary.
	Verbose bool
}

// Default returns a Config with the documented defaults: delimiter '#',
// global grouping, no cardinality limits, overlap thresholds of 0.95
// (primary) and 1.0 (scaffold, i.e. containment), and a 100bp merge
// tolerance.
func Default() Config {
	return Config{
		Grouping:                 Global,
		PrefixDelimiter:          '#',
		OverlapThreshold:         0.95,
		ScaffoldOverlapThreshold: 1.0,
		MergeTolerance:           100,
		Scoring:                  LogLengthIdentity,
	}
}

// InvalidConfigError reports an out-of-range or otherwise invalid
// configuration option (spec §7, "config-invalid").
type InvalidConfigError struct {
	Field string
	Msg   string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Field, e.Msg)
}

// Validate rejects out-of-range parameters before extraction begins
// (spec §7).
func (c Config) Validate() error {
	if c.OverlapThreshold < 0 || c.OverlapThreshold > 1 {
		return &InvalidConfigError{"overlap_threshold", "must be in [0,1]"}
	}
	if c.ScaffoldOverlapThreshold < 0 || c.ScaffoldOverlapThreshold > 1 {
		return &InvalidConfigError{"scaffold_overlap_threshold", "must be in [0,1]"}
	}
	if c.ScaffoldGap < 0 {
		return &InvalidConfigError{"scaffold_gap", "must be non-negative"}
	}
	if c.MinBlockLength < 0 {
		return &InvalidConfigError{"min_block_length", "must be non-negative"}
	}
	if c.MinIdentity < 0 || c.MinIdentity > 1 {
		return &InvalidConfigError{"min_identity", "must be in [0,1]"}
	}
	if c.MinScaffoldIdentity < 0 || c.MinScaffoldIdentity > 1 {
		return &InvalidConfigError{"min_scaffold_identity", "must be in [0,1]"}
	}
	if c.MinScaffoldLength < 0 {
		return &InvalidConfigError{"min_scaffold_length", "must be non-negative"}
	}
	if c.ScaffoldMaxDeviation < 0 {
		return &InvalidConfigError{"scaffold_max_deviation", "must be non-negative"}
	}
	if c.MappingMaxPerQuery < 0 || c.MappingMaxPerTarget < 0 ||
		c.ScaffoldMaxPerQuery < 0 || c.ScaffoldMaxPerTarget < 0 {
		return &InvalidConfigError{"max_per_*", "must be non-negative"}
	}
	return nil
}
