// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package writer implements the Streaming Output Writer (spec §4.6): it
// re-emits the kept subset of records, in input order, to a temporary
// path and atomically renames it into place on success. Partial writes
// are forbidden (spec §7).
package writer

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pangenome/sweepga/format"
	"github.com/pangenome/sweepga/meta"
)

// WriteText copies the byte ranges of the kept records from srcPath into
// outPath, in input order, appending a newline to any record missing
// one. kept must already be restricted to the writer's terminal states
// (member, rescued); see meta.ChainStatus.
func WriteText(srcPath, outPath string, records []meta.RecordMeta, kept map[int]bool) (err error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("writer: open %s: %w", srcPath, err)
	}
	defer src.Close()

	tmp, err := tempFile(outPath)
	if err != nil {
		return err
	}
	defer cleanup(tmp, &err)

	bw := bufio.NewWriterSize(tmp, 1<<20)
	buf := make([]byte, 0, 4096)
	for i := range records {
		if !kept[i] {
			continue
		}
		r := &records[i]
		if r.Handle.Kind != meta.TextByteRange {
			return fmt.Errorf("writer: record %d has no text handle", i)
		}
		if cap(buf) < int(r.Handle.Length) {
			buf = make([]byte, r.Handle.Length)
		}
		buf = buf[:r.Handle.Length]
		if _, err := src.ReadAt(buf, r.Handle.Offset); err != nil && err != io.EOF {
			return fmt.Errorf("writer: read record %d: %w", i, err)
		}
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("writer: write record %d: %w", i, err)
		}
		if len(buf) == 0 || buf[len(buf)-1] != '\n' {
			if err := bw.WriteByte('\n'); err != nil {
				return fmt.Errorf("writer: write record %d: %w", i, err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writer: flush: %w", err)
	}
	return finalize(tmp, outPath)
}

// WriteBinary reopens srcPath via the binary container reader and
// re-emits kept records, in rank order, to outPath through the binary
// container writer, preserving the original header blob.
func WriteBinary(srcPath, outPath string, records []meta.RecordMeta, kept map[int]bool) (err error) {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("writer: open %s: %w", srcPath, err)
	}
	defer src.Close()

	br, err := format.NewBinaryReader(format.BufferedBinaryReader(src))
	if err != nil {
		return fmt.Errorf("writer: open binary container %s: %w", srcPath, err)
	}
	defer br.Close()

	keptRanks := make(map[int]bool, len(kept))
	for i := range records {
		if kept[i] {
			keptRanks[records[i].Handle.Rank] = true
		}
	}

	tmp, err := tempFile(outPath)
	if err != nil {
		return err
	}
	defer cleanup(tmp, &err)

	out := bufio.NewWriterSize(tmp, 1<<20)
	bw, err := format.NewBinaryWriter(out, br.Header)
	if err != nil {
		return fmt.Errorf("writer: open binary writer: %w", err)
	}

	rank := 0
	for {
		rec, err := br.ReadRecord()
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("writer: read rank %d: %w", rank, err)
		}
		if keptRanks[rank] {
			if err := bw.WriteRecord(rec); err != nil {
				return fmt.Errorf("writer: write rank %d: %w", rank, err)
			}
		}
		rank++
	}
	if err := bw.Close(); err != nil {
		return fmt.Errorf("writer: close binary writer: %w", err)
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("writer: flush: %w", err)
	}
	return finalize(tmp, outPath)
}

// tempFile creates a sibling temporary file to outPath so the final
// rename stays on the same filesystem.
func tempFile(outPath string) (*os.File, error) {
	dir := filepath.Dir(outPath)
	f, err := os.CreateTemp(dir, filepath.Base(outPath)+".tmp-*")
	if err != nil {
		return nil, fmt.Errorf("writer: create temp file: %w", err)
	}
	return f, nil
}

// finalize closes tmp, syncs it, and atomically renames it to outPath.
func finalize(tmp *os.File, outPath string) error {
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("writer: sync %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writer: close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), outPath); err != nil {
		return fmt.Errorf("writer: rename %s to %s: %w", tmp.Name(), outPath, err)
	}
	return nil
}

// cleanup removes the temp file if *errp is non-nil, so a failed write
// never leaves a partial file behind and never leaks the temp name
// (spec §7, "partial writes are forbidden").
func cleanup(tmp *os.File, errp *error) {
	if *errp == nil {
		return
	}
	tmp.Close()
	os.Remove(tmp.Name())
}

// Kept reports whether a record's final chain_status is a writer
// terminal state (spec §4.6): member or rescued records not otherwise
// discarded by the mapping filter.
func Kept(status meta.ChainStatus) bool {
	return status == meta.Member || status == meta.Rescued
}
