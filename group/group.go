// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package group selects the Mapping Filter's partitioning key (spec
// §4.2).
package group

import (
	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/meta"
)

// Key returns the grouping key for rm under cfg: empty for Global,
// query_name for ByQuery, and the "query_genome\x00target_genome" pair
// for ByGenomePair (genome prefixes taken up to the first
// cfg.PrefixDelimiter, or the full name under SkipPrefix).
func Key(rm *meta.RecordMeta, cfg config.Config) string {
	return KeyForNames(rm.QueryName, rm.TargetName, cfg)
}

// KeyForNames is Key's grouping logic applied directly to a
// (query_name, target_name) pair, shared with the Scaffold-Guided Second
// Sweep which groups scaffold chains rather than RecordMeta values
// (spec §4.5).
func KeyForNames(queryName, targetName string, cfg config.Config) string {
	switch cfg.Grouping {
	case config.Global:
		return ""
	case config.ByQuery:
		return queryName
	case config.ByGenomePair:
		q, t := genome(queryName, cfg), genome(targetName, cfg)
		return q + "\x00" + t
	default:
		return ""
	}
}

func genome(name string, cfg config.Config) string {
	if cfg.SkipPrefix {
		return name
	}
	return meta.GenomePrefix(name, cfg.PrefixDelimiter)
}
