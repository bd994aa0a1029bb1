// Salescope - E-commerce Sales Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salescope

package pipeline

import "fmt"

// NoInputDataError reports an input directory containing no raw export files.
type NoInputDataError struct {
	Dir string
}

func (e *NoInputDataError) Error() string {
	return fmt.Sprintf("no input data: directory %s contains no CSV files", e.Dir)
}

// SchemaMismatchError reports an input file whose column set differs from the
// first file loaded. The run aborts rather than guessing at a union schema.
type SchemaMismatchError struct {
	File     string
	Expected []string
	Actual   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch in %s: expected columns %v, got %v", e.File, e.Expected, e.Actual)
}

// MalformedRecordError reports a field that survived cleaning but cannot be
// coerced to its target type. Coercion failures are fatal; rows are never
// silently dropped at this stage.
type MalformedRecordError struct {
	File   string
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record at %s:%d: column %q value %q: %v", e.File, e.Line, e.Column, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error { return e.Err }

// AddressParseError reports a purchase address without the three
// comma-delimited segments (street, city, state+zip) needed for geographic
// enrichment. There is no best-effort fallback.
type AddressParseError struct {
	File    string
	Line    int
	Address string
}

func (e *AddressParseError) Error() string {
	return fmt.Sprintf("unparseable address at %s:%d: %q has fewer than 3 comma-delimited segments", e.File, e.Line, e.Address)
}
