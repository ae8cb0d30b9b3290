// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mapping

import (
	"math"

	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/meta"
)

// Score computes an interval's sweep score under the configured scoring
// function (spec §4.2).
func Score(rm *meta.RecordMeta, scoring config.Scoring) float64 {
	switch scoring {
	case config.LogLengthIdentity:
		if rm.BlockLength <= 0 {
			return 0
		}
		return math.Log(float64(rm.BlockLength)) * rm.Identity
	case config.Matches:
		return float64(rm.Matches)
	case config.Length:
		return float64(rm.BlockLength)
	case config.IdentityScore:
		return rm.Identity
	default:
		return 0
	}
}
