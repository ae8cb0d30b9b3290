// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store provides the on-disk key encoding and ordering used by the
// streaming index (spec §2): a group key (query name, genome pair, or
// empty for global grouping) followed by a position, so that a kv.DB
// iterates each group's records in query-start order without the caller
// needing to sort them in memory.
package store

import (
	"bytes"
	"encoding/binary"
)

var order = binary.BigEndian

// RecordKey identifies one RecordMeta's position within the streaming
// index: which group it belongs to, its query_start for in-group
// ordering, and its original extraction index to guarantee key
// uniqueness when two records share a query_start (mirrors the teacher's
// internal/store.BlastRecordKey, generalized from a single BLAST hit key
// to a group-prefixed alignment key).
type RecordKey struct {
	GroupKey   string
	QueryStart int64
	Idx        int64
}

// MarshalRecordKey encodes k as a sortable byte string: group key
// (length-prefixed), then query_start and idx as big-endian int64s so
// lexicographic byte ordering matches numeric ordering.
func MarshalRecordKey(k RecordKey) []byte {
	var buf bytes.Buffer
	var b [8]byte
	order.PutUint64(b[:], uint64(len(k.GroupKey)))
	buf.Write(b[:])
	buf.WriteString(k.GroupKey)
	order.PutUint64(b[:], uint64(k.QueryStart))
	buf.Write(b[:])
	order.PutUint64(b[:], uint64(k.Idx))
	buf.Write(b[:])
	return buf.Bytes()
}

// UnmarshalRecordKey decodes a key produced by MarshalRecordKey.
func UnmarshalRecordKey(data []byte) RecordKey {
	var k RecordKey
	n := order.Uint64(data[:8])
	data = data[8:]
	k.GroupKey = string(data[:n])
	data = data[n:]
	k.QueryStart = int64(order.Uint64(data[:8]))
	data = data[8:]
	k.Idx = int64(order.Uint64(data[:8]))
	return k
}

// MarshalInt encodes n as a big-endian int64, used for values stored
// alongside RecordKey-keyed entries (the record's slice index).
func MarshalInt(n int) []byte {
	var buf [8]byte
	order.PutUint64(buf[:], uint64(n))
	return buf[:]
}

// UnmarshalInt decodes a value produced by MarshalInt.
func UnmarshalInt(b []byte) int {
	return int(order.Uint64(b))
}

// CompareRecordKeys is a kv compare function ordering entries by group key,
// then query_start, then idx — group key becomes a contiguous byte-range
// prefix because it is length-prefixed and compared before any numeric
// field, so SeekFirst+Next within a group naturally stops at the group
// boundary.
func CompareRecordKeys(x, y []byte) int {
	if bytes.Equal(x, y) {
		return 0
	}
	rx := UnmarshalRecordKey(x)
	ry := UnmarshalRecordKey(y)

	switch {
	case rx.GroupKey < ry.GroupKey:
		return -1
	case rx.GroupKey > ry.GroupKey:
		return 1
	}
	switch {
	case rx.QueryStart < ry.QueryStart:
		return -1
	case rx.QueryStart > ry.QueryStart:
		return 1
	}
	switch {
	case rx.Idx < ry.Idx:
		return -1
	case rx.Idx > ry.Idx:
		return 1
	}
	return 0
}
