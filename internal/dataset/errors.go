// ContentROI - Content Attribution and Lifetime-Value Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/contentroi

package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedRecord is wrapped by every record-level load failure.
var ErrMalformedRecord = errors.New("malformed record")

// RecordKind names the collection a record belongs to.
type RecordKind string

const (
	KindContent RecordKind = "content"
	KindUser    RecordKind = "user"
)

// RecordError describes one rejected record.
//
// Line is the 1-based line in the source file (the header is line 1) and is
// zero for records that did not come from a file.
type RecordError struct {
	Kind   RecordKind
	Line   int
	ID     string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "malformed %s record", e.Kind)
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.ID != "" {
		fmt.Fprintf(&b, " (%s)", e.ID)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, ": %s", e.Field)
	}
	fmt.Fprintf(&b, ": %s", e.Reason)
	return b.String()
}

// Unwrap lets callers match any record error with errors.Is(err, ErrMalformedRecord).
func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

// collector gathers record errors, stopping at the first one unless all
// errors were requested.
type collector struct {
	all  bool
	errs []error
}

// add records an error and reports whether loading should stop.
func (c *collector) add(err *RecordError) bool {
	c.errs = append(c.errs, err)
	return !c.all
}

func (c *collector) failed() bool {
	return len(c.errs) > 0
}

func (c *collector) err() error {
	switch len(c.errs) {
	case 0:
		return nil
	case 1:
		return c.errs[0]
	default:
		return errors.Join(c.errs...)
	}
}
