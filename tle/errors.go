package tle

import "fmt"

// ParseError reports a structural or field-level problem in an element set
// line. Column is 1-based, matching the column numbering used in TLE format
// descriptions.
type ParseError struct {
	Line   int    // 1 or 2
	Field  string // e.g. "mean motion"
	Column int
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("tle: line %d column %d: invalid %s: %v", e.Line, e.Column, e.Field, e.Cause)
	}
	return fmt.Sprintf("tle: line %d column %d: invalid %s", e.Line, e.Column, e.Field)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ChecksumError reports a modulo-10 checksum mismatch found by ParseStrict.
type ChecksumError struct {
	Line int
	Want int // digit printed in column 69
	Got  int // digit computed from columns 1-68
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("tle: line %d checksum mismatch: line says %d, computed %d", e.Line, e.Want, e.Got)
}
