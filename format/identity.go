// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

// Identity computes a record's identity using the single cross-format
// rule both the text and binary extractors must apply: matches over
// query span when a match count is available, otherwise the divergence
// tag, otherwise edit distance over block length. The same precedence is
// used regardless of input format so that identity is format-independent
// (spec §4.1's identity parity contract, P1).
func Identity(matches, blockLength int, querySpan int, divergence *float64, editDistance *int) float64 {
	if matches > 0 && querySpan > 0 {
		return float64(matches) / float64(querySpan)
	}
	if divergence != nil {
		return 1 - *divergence
	}
	if editDistance != nil && blockLength > 0 {
		return 1 - float64(*editDistance)/float64(blockLength)
	}
	return 0
}

// HasIdentitySource reports whether enough information is present to
// derive a non-default identity value for a record, i.e. whether a
// min_identity cutoff should be evaluated against it rather than
// trivially failed (spec §7 warning: "min_identity applied to records
// lacking identity info").
func HasIdentitySource(matches int, divergence *float64, editDistance *int) bool {
	return matches > 0 || divergence != nil || editDistance != nil
}
