// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package meta

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pangenome/sweepga/format"
)

// ExtractBinary iterates a binary alignment container in rank order,
// producing one RecordMeta per record (spec §4.1, §6). It returns the
// opaque header blob read from the container alongside the records.
func ExtractBinary(path string, verbose bool) ([]RecordMeta, []byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br, err := format.NewBinaryReader(format.BufferedBinaryReader(f))
	if err != nil {
		return nil, nil, fmt.Errorf("open binary container %s: %w", path, err)
	}
	defer br.Close()

	var records []RecordMeta
	n := 0
	for {
		rec, err := br.ReadRecord()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("%s: rank %d: %w", path, n, err)
		}

		divergence := (*float64)(nil)
		editDistance := (*int)(nil)
		if rec.Matches == 0 && rec.Mismatches > 0 {
			ed := rec.Mismatches
			editDistance = &ed
		}
		rm := RecordMeta{
			Index:       len(records),
			Handle:      Handle{Kind: BinaryRank, Rank: rec.Rank},
			QueryName:   rec.QueryName,
			TargetName:  rec.TargetName,
			QueryStart:  rec.QueryStart,
			QueryEnd:    rec.QueryEnd,
			TargetStart: rec.TargetStart,
			TargetEnd:   rec.TargetEnd,
			Strand:      rec.Strand,
			BlockLength: rec.BlockLength,
			Matches:     rec.Matches,
			Identity:    format.Identity(rec.Matches, rec.BlockLength, rec.QueryEnd-rec.QueryStart, divergence, editDistance),
			HasIdentity: format.HasIdentitySource(rec.Matches, divergence, editDistance),
			ChainID:     NoChain,
		}
		records = append(records, rm)
		n++
		if verbose && n%batch == 0 {
			log.Printf("extracted %d records", n)
		}
	}
	if verbose {
		log.Printf("extracted %d records total from %s", len(records), path)
	}
	return records, br.Header, nil
}
