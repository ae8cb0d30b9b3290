// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package meta defines the format-agnostic alignment metadata the rest of
// the filtering pipeline operates on. Nothing downstream of extraction
// re-parses either input format; every stage consumes only RecordMeta.
package meta

import "github.com/pangenome/sweepga/format"

// HandleKind distinguishes the two back-pointer shapes a Handle can take.
type HandleKind uint8

const (
	// TextByteRange identifies a record by its byte offset and length in
	// the original text input.
	TextByteRange HandleKind = iota
	// BinaryRank identifies a record by its 0-based rank in the original
	// binary container.
	BinaryRank
)

// Handle is the tagged-variant back-pointer to a record's original bytes
// (spec §9, "Format-agnostic handles via tagged variant"). Exactly one of
// the two shapes is meaningful, selected by Kind.
type Handle struct {
	Kind   HandleKind
	Offset int64 // valid when Kind == TextByteRange
	Length int64 // valid when Kind == TextByteRange
	Rank   int   // valid when Kind == BinaryRank
}

// ChainStatus is a RecordMeta's position in the scaffold-chain lifecycle.
type ChainStatus uint8

const (
	Unassigned ChainStatus = iota
	Member
	Rescued
)

func (s ChainStatus) String() string {
	switch s {
	case Member:
		return "member"
	case Rescued:
		return "rescued"
	default:
		return "unassigned"
	}
}

// NoChain is the chain_id sentinel for a RecordMeta that was never
// assigned to a chain.
const NoChain = -1

// RecordMeta is one extracted alignment, immutable after extraction except
// for the trailing filter-state fields (ChainID, ChainStatus, Discard)
// which the later pipeline stages write back (spec §3, invariants I1-I6).
type RecordMeta struct {
	Index  int // position in the extraction-ordered RecordMeta slice
	Handle Handle

	QueryName   string
	TargetName  string
	QueryStart  int
	QueryEnd    int
	TargetStart int
	TargetEnd   int
	Strand      format.Strand

	BlockLength int
	Matches     int
	Identity    float64
	// HasIdentity reports whether Identity was derived from a match
	// count, divergence tag, or edit-distance tag, as opposed to
	// defaulting to 0 for lack of any such source (spec §7: "min_identity
	// applied to records lacking identity info... fail the cutoff rather
	// than silently passing").
	HasIdentity bool
	// HasCIGAR reports whether the record carried a cg:Z: tag (text
	// format only; always false for binary records, which have no CIGAR
	// concept). Used for the scoring=matches warning (spec §4.2).
	HasCIGAR bool

	ChainID     int
	ChainStatus ChainStatus
	Discard     bool
}

// QuerySpan returns query_end - query_start.
func (m *RecordMeta) QuerySpan() int { return m.QueryEnd - m.QueryStart }

// TargetSpan returns target_end - target_start.
func (m *RecordMeta) TargetSpan() int { return m.TargetEnd - m.TargetStart }

// GenomePrefix returns the substring of name before the first occurrence
// of delim, or name itself if delim does not occur (spec §4.2, §9
// "Genome prefix").
func GenomePrefix(name string, delim byte) string {
	for i := 0; i < len(name); i++ {
		if name[i] == delim {
			return name[:i]
		}
	}
	return name
}
