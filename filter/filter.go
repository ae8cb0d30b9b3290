// Copyright ©2024 The sweepga Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package filter wires the pipeline stages — extraction, the Mapping
// Filter, the Scaffold Chainer, the Scaffold-Guided Second Sweep, and
// the Streaming Output Writer — into the single entry point spec §6's
// exit-status contract describes.
package filter

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"

	"github.com/pangenome/sweepga/chain"
	"github.com/pangenome/sweepga/config"
	"github.com/pangenome/sweepga/mapping"
	"github.com/pangenome/sweepga/meta"
	"github.com/pangenome/sweepga/secondsweep"
	"github.com/pangenome/sweepga/writer"
)

// InputFormat selects which extractor/writer pair a Run uses.
type InputFormat int

const (
	Text InputFormat = iota
	Binary
)

// Options bundles the inputs to one filter Run.
type Options struct {
	InputPath  string
	OutputPath string
	Format     InputFormat
	Config     config.Config
}

// Report summarizes a completed Run for logging/diagnostics.
type Report struct {
	Extracted int
	Kept      int
	Chains    int
	Rescued   int
	Warnings  []string
}

// Run executes the full pipeline and returns the exit Status alongside
// any error driving a non-OK status (spec §6-7). Config is validated
// before any I/O, so a config-invalid error never touches the input
// file.
func Run(opts Options) (Status, Report, error) {
	var rep Report

	if err := opts.Config.Validate(); err != nil {
		return ConfigInvalid, rep, err
	}

	scratchDir, err := ioutil.TempDir("", "sweepga-filter-")
	if err != nil {
		return IOFailure, rep, &IOError{err}
	}
	defer os.RemoveAll(scratchDir)

	var records []meta.RecordMeta
	switch opts.Format {
	case Text:
		records, err = meta.ExtractText(opts.InputPath, opts.Config.Verbose)
	case Binary:
		// The header blob extracted here is discarded: WriteBinary reopens
		// the source container and re-derives it directly, since the
		// writer must not depend on state captured at extraction time.
		records, _, err = meta.ExtractBinary(opts.InputPath, opts.Config.Verbose)
	default:
		return ConfigInvalid, rep, &config.InvalidConfigError{Field: "format", Msg: "unrecognized input format"}
	}
	if err != nil {
		return ClassifyError(err), rep, err
	}
	rep.Extracted = len(records)

	mapResult, err := mapping.Apply(records, opts.Config, scratchDir)
	if err != nil {
		return ClassifyError(err), rep, err
	}
	for _, w := range mapResult.Warnings {
		log.Printf("warning: %s", w)
	}
	rep.Warnings = mapResult.Warnings

	for i := range records {
		if !mapResult.Kept[i] {
			records[i].Discard = true
		}
	}

	chains := chain.Build(records, mapResult.Kept, opts.Config)
	rep.Chains = len(chains)
	for _, c := range chains {
		for _, m := range c.Members {
			records[m].ChainID = c.ID
		}
	}

	outcome, err := secondsweep.Apply(records, chains, opts.Config)
	if err != nil {
		return ClassifyError(err), rep, err
	}

	for i, status := range outcome.Status {
		records[i].ChainStatus = status
	}

	kept := make(map[int]bool, len(outcome.Kept))
	for i := range records {
		if writer.Kept(records[i].ChainStatus) {
			kept[i] = true
			if records[i].ChainStatus == meta.Rescued {
				rep.Rescued++
			}
		}
	}
	rep.Kept = len(kept)

	switch opts.Format {
	case Text:
		err = writer.WriteText(opts.InputPath, opts.OutputPath, records, kept)
	case Binary:
		err = writer.WriteBinary(opts.InputPath, opts.OutputPath, records, kept)
	}
	if err != nil {
		return ClassifyError(err), rep, err
	}

	if opts.Config.Verbose {
		log.Printf("filter: extracted=%d kept=%d chains=%d rescued=%d", rep.Extracted, rep.Kept, rep.Chains, rep.Rescued)
	}

	return OK, rep, nil
}

// ParseFormat maps a --format flag value to an InputFormat, used by the
// command-line front ends.
func ParseFormat(s string) (InputFormat, error) {
	switch s {
	case "text", "paf":
		return Text, nil
	case "binary":
		return Binary, nil
	default:
		return Text, fmt.Errorf("unrecognized format %q (want text or binary)", s)
	}
}
