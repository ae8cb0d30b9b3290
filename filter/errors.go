// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package filter

import (
	"errors"
	"fmt"

	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/format"
)

// Status is the process-level exit category a Run reports (spec §6,
// "Exit behavior").
type Status int

const (
	OK Status = iota
	MalformedInput
	IOFailure
	ConfigInvalid
)

func (s Status) String() string {
	switch s {
	case MalformedInput:
		return "malformed-input"
	case IOFailure:
		return "io"
	case ConfigInvalid:
		return "config-invalid"
	default:
		return "ok"
	}
}

// IOError wraps a read/write/seek failure so it can be distinguished
// from malformed input at the Run boundary (spec §7).
type IOError struct {
	Err error
}

func (e *IOError) Error() string { return fmt.Sprintf("io: %v", e.Err) }
func (e *IOError) Unwrap() error { return e.Err }

// ClassifyError maps an error returned from any pipeline stage to its
// exit Status (spec §6-7): a format.ParseError or config.InvalidConfigError
// is classified specifically; an IOError or anything else is treated as
// a plain I/O failure, since a filter run never produces unclassified
// errors except through direct OS/library I/O calls.
func ClassifyError(err error) Status {
	if err == nil {
		return OK
	}
	var perr *format.ParseError
	if errors.As(err, &perr) {
		return MalformedInput
	}
	var cerr *config.InvalidConfigError
	if errors.As(err, &cerr) {
		return ConfigInvalid
	}
	return IOFailure
}
