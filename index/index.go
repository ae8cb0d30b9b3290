// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package index implements the streaming index named in spec §2: an
// on-disk ordered store mapping (group, query_start, idx) to a record's
// position in the in-memory RecordMeta slice, so the Mapping Filter can
// walk one group at a time in query-start order without sorting or
// copying RecordMeta values. This mirrors cmd/ins/fragment.go's
// transactional walk of forward.db, generalized from a single global
// order to arbitrary group keys.
package index

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"modernc.org/kv"

	"github.com/pangenome/sweepga/internal/store"
)

// batch mirrors the teacher's commit cadence in cmd/ins/fragment.go's
// merge function.
const batch = 100

// Index is a group-ordered on-disk index of record positions.
type Index struct {
	db     *kv.DB
	path   string
	n      int
	inTx   bool
}

// New creates a fresh on-disk index in dir (a caller-managed scratch
// directory; the caller is responsible for cleaning dir up when the
// filter run ends, as spec §5 describes for the process-local entity
// lifecycle).
func New(dir string) (*Index, error) {
	path := filepath.Join(dir, fmt.Sprintf("sweepga-index-%d.kv", os.Getpid()))
	db, err := kv.Create(path, &kv.Options{Compare: store.CompareRecordKeys})
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &Index{db: db, path: path}, nil
}

// Put records that the RecordMeta at slice position idx, with the given
// query_start, belongs to group groupKey.
func (ix *Index) Put(groupKey string, queryStart int64, idx int) error {
	if ix.n%batch == 0 {
		if err := ix.db.BeginTransaction(); err != nil {
			return err
		}
		ix.inTx = true
	}
	key := store.MarshalRecordKey(store.RecordKey{GroupKey: groupKey, QueryStart: queryStart, Idx: int64(idx)})
	if err := ix.db.Set(key, store.MarshalInt(idx)); err != nil {
		return err
	}
	ix.n++
	if ix.n%batch == 0 {
		if err := ix.db.Commit(); err != nil {
			return err
		}
		ix.inTx = false
		log.Printf("index: committed %d entries", ix.n)
	}
	return nil
}

// Flush commits any open transaction. Callers must call Flush after the
// last Put and before any Groups/iteration call.
func (ix *Index) Flush() error {
	if ix.inTx {
		ix.inTx = false
		return ix.db.Commit()
	}
	return nil
}

// Groups walks the index in group-key order, invoking fn once per group
// with the slice indices of that group's records in query_start order.
func (ix *Index) Groups(fn func(groupKey string, idxs []int) error) error {
	it, err := ix.db.SeekFirst()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	var curGroup string
	var cur []int
	first := true
	for {
		k, v, err := it.Next()
		if err != nil {
			if err == io.EOF {
				break
			}
			return err
		}
		rk := store.UnmarshalRecordKey(k)
		idx := store.UnmarshalInt(v)
		if first || rk.GroupKey != curGroup {
			if !first {
				if err := fn(curGroup, cur); err != nil {
					return err
				}
			}
			curGroup = rk.GroupKey
			cur = cur[:0]
			first = false
		}
		cur = append(cur, idx)
	}
	if !first {
		return fn(curGroup, cur)
	}
	return nil
}

// Close releases the index's on-disk file.
func (ix *Index) Close() error {
	if err := ix.db.Close(); err != nil {
		return err
	}
	return os.Remove(ix.path)
}
