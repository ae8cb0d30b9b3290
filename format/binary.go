// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package format

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/biogo/hts/bgzf"
)

// BinaryRecord is the decoded form of one record from the binary alignment
// container. Rank is the record's 0-based position in the container and
// is used directly as its Handle (spec §3, §6).
type BinaryRecord struct {
	Rank         int
	QueryName    string
	QueryLength  int
	QueryStart   int
	QueryEnd     int
	Strand       Strand
	TargetName   string
	TargetLength int
	TargetStart  int
	TargetEnd    int
	BlockLength  int
	Matches      int
	Mismatches   int
}

// magic identifies the container format; it is not a public wire contract,
// just a guard against accidentally reading a foreign bgzf stream.
var magic = [4]byte{'s', 'w', 'g', '1'}

// BinaryWriter streams BinaryRecord values into a bgzf-block-compressed
// container, the same block-compressed convention used by BAM. The header
// blob is opaque to this package: it is whatever bytes the caller wants
// propagated unchanged to the output container (spec §6, "propagates the
// original header/schema blob").
type BinaryWriter struct {
	bw  *bgzf.Writer
	buf [8]byte
}

// NewBinaryWriter opens a binary container for writing and immediately
// persists header.
func NewBinaryWriter(w io.Writer, header []byte) (*BinaryWriter, error) {
	bw := bgzf.NewWriter(w, 1)
	bwr := &BinaryWriter{bw: bw}
	if _, err := bw.Write(magic[:]); err != nil {
		return nil, fmt.Errorf("binary container: write magic: %w", err)
	}
	if err := bwr.writeUint64(uint64(len(header))); err != nil {
		return nil, err
	}
	if len(header) > 0 {
		if _, err := bw.Write(header); err != nil {
			return nil, fmt.Errorf("binary container: write header: %w", err)
		}
	}
	return bwr, nil
}

func (w *BinaryWriter) writeUint64(v uint64) error {
	binary.BigEndian.PutUint64(w.buf[:], v)
	_, err := w.bw.Write(w.buf[:])
	return err
}

func (w *BinaryWriter) writeString(s string) error {
	if err := w.writeUint64(uint64(len(s))); err != nil {
		return err
	}
	_, err := w.bw.Write([]byte(s))
	return err
}

// WriteRecord appends one record. Records must be written in increasing
// Rank order; the container does not support random-access writes.
func (w *BinaryWriter) WriteRecord(r BinaryRecord) error {
	fields := []uint64{
		uint64(r.QueryLength), uint64(r.QueryStart), uint64(r.QueryEnd),
		uint64(r.TargetLength), uint64(r.TargetStart), uint64(r.TargetEnd),
		uint64(r.BlockLength), uint64(r.Matches), uint64(r.Mismatches),
	}
	if err := w.writeString(r.QueryName); err != nil {
		return err
	}
	if err := w.writeString(r.TargetName); err != nil {
		return err
	}
	strand := byte(0)
	if r.Strand == Reverse {
		strand = 1
	}
	if _, err := w.bw.Write([]byte{strand}); err != nil {
		return err
	}
	for _, f := range fields {
		if err := w.writeUint64(f); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes the underlying bgzf stream.
func (w *BinaryWriter) Close() error {
	return w.bw.Close()
}

// BinaryReader iterates records from a binary alignment container in rank
// order.
type BinaryReader struct {
	br     *bgzf.Reader
	rank   int
	Header []byte
}

// NewBinaryReader opens a binary container for reading, validating the
// magic and returning the opaque header blob.
func NewBinaryReader(r io.Reader) (*BinaryReader, error) {
	br, err := bgzf.NewReader(r, 1)
	if err != nil {
		return nil, fmt.Errorf("binary container: open: %w", err)
	}
	rdr := &BinaryReader{br: br}
	var got [4]byte
	if _, err := io.ReadFull(br, got[:]); err != nil {
		return nil, fmt.Errorf("binary container: read magic: %w", err)
	}
	if got != magic {
		return nil, fmt.Errorf("binary container: bad magic %q", got)
	}
	hlen, err := rdr.readUint64()
	if err != nil {
		return nil, fmt.Errorf("binary container: read header length: %w", err)
	}
	if hlen > 0 {
		rdr.Header = make([]byte, hlen)
		if _, err := io.ReadFull(br, rdr.Header); err != nil {
			return nil, fmt.Errorf("binary container: read header: %w", err)
		}
	}
	return rdr, nil
}

func (r *BinaryReader) readUint64() (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r.br, buf[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (r *BinaryReader) readString() (string, error) {
	n, err := r.readUint64()
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// ReadRecord returns the next record, or io.EOF when the container is
// exhausted.
func (r *BinaryReader) ReadRecord() (BinaryRecord, error) {
	queryName, err := r.readString()
	if err != nil {
		return BinaryRecord{}, err
	}
	targetName, err := r.readString()
	if err != nil {
		return BinaryRecord{}, err
	}
	var strandByte [1]byte
	if _, err := io.ReadFull(r.br, strandByte[:]); err != nil {
		return BinaryRecord{}, err
	}
	vals := make([]uint64, 9)
	for i := range vals {
		vals[i], err = r.readUint64()
		if err != nil {
			return BinaryRecord{}, err
		}
	}
	rec := BinaryRecord{
		Rank:         r.rank,
		QueryName:    queryName,
		TargetName:   targetName,
		QueryLength:  int(vals[0]),
		QueryStart:   int(vals[1]),
		QueryEnd:     int(vals[2]),
		TargetLength: int(vals[3]),
		TargetStart:  int(vals[4]),
		TargetEnd:    int(vals[5]),
		BlockLength:  int(vals[6]),
		Matches:      int(vals[7]),
		Mismatches:   int(vals[8]),
	}
	if strandByte[0] == 1 {
		rec.Strand = Reverse
	} else {
		rec.Strand = Forward
	}
	r.rank++
	return rec, nil
}

// Close closes the underlying bgzf stream.
func (r *BinaryReader) Close() error {
	return r.br.Close()
}

// BufferedBinaryReader wraps a raw *os.File (or similar) with buffering
// appropriate for bgzf block reads, mirroring the buffering the text
// extractor applies via bufio.Reader.
func BufferedBinaryReader(r io.Reader) io.Reader {
	return bufio.NewReaderSize(r, 1<<20)
}
