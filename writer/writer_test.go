// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package writer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pangenome/sweepga/meta"
	"github.com/pangenome/sweepga/writer"
)

func TestWriteTextKeepsOnlySelectedRecordsInOrder(t *testing.T) {
	lines := []string{
		"q1\t100\t0\t10\t+\tt1\t100\t0\t10\t10\t10\t60",
		"q2\t100\t0\t10\t+\tt2\t100\t0\t10\t10\t10\t60",
		"q3\t100\t0\t10\t+\tt3\t100\t0\t10\t10\t10\t60",
	}
	content := lines[0] + "\n" + lines[1] + "\n" + lines[2] + "\n"
	dir := t.TempDir()
	src := filepath.Join(dir, "in.paf")
	if err := os.WriteFile(src, []byte(content), 0o644); err != nil {
		t.Fatalf("write src: %v", err)
	}

	records := []meta.RecordMeta{
		{Handle: meta.Handle{Kind: meta.TextByteRange, Offset: 0, Length: int64(len(lines[0]))}},
		{Handle: meta.Handle{Kind: meta.TextByteRange, Offset: int64(len(lines[0]) + 1), Length: int64(len(lines[1]))}},
		{Handle: meta.Handle{Kind: meta.TextByteRange, Offset: int64(len(lines[0]) + 1 + len(lines[1]) + 1), Length: int64(len(lines[2]))}},
	}
	kept := map[int]bool{0: true, 2: true}

	out := filepath.Join(dir, "out.paf")
	if err := writer.WriteText(src, out, records, kept); err != nil {
		t.Fatalf("WriteText: %v", err)
	}

	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read out: %v", err)
	}
	want := lines[0] + "\n" + lines[2] + "\n"
	if string(got) != want {
		t.Fatalf("want %q, got %q", want, string(got))
	}
}

func TestWriteTextLeavesNoTempFileOnFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "missing.paf")
	out := filepath.Join(dir, "out.paf")

	err := writer.WriteText(src, out, nil, nil)
	if err == nil {
		t.Fatalf("expected an error opening a missing source file")
	}

	entries, readErr := os.ReadDir(dir)
	if readErr != nil {
		t.Fatalf("ReadDir: %v", readErr)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files left behind after a failed write, got %v", entries)
	}
}

func TestKept(t *testing.T) {
	if !writer.Kept(meta.Member) {
		t.Fatalf("member should be a writer terminal state")
	}
	if !writer.Kept(meta.Rescued) {
		t.Fatalf("rescued should be a writer terminal state")
	}
	if writer.Kept(meta.Unassigned) {
		t.Fatalf("unassigned should not be a writer terminal state")
	}
}
