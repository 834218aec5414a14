// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
)

// Errors returned by this package can be tested against these values using
// errors.Is.
var (
	// ErrInvalidArgument is returned when a function is passed an argument it
	// cannot use, like a nil reader or a blank name.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a file or a referenced item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrFormat is returned when INI text does not follow the grammar.
	ErrFormat = errors.New("invalid ini syntax")

	// ErrConversion is returned when a property value cannot be converted to
	// the requested type.
	ErrConversion = errors.New("cannot convert value")

	// ErrDuplicateKey is returned when a section is added to a file that
	// already has a section with an equal name.
	ErrDuplicateKey = errors.New("duplicate section")
)

// A SyntaxError describes a line of INI text that could not be parsed.
type SyntaxError struct {
	// Line is the 1-based line number of the offending line.
	Line int
	// Text is the content of the offending line.
	Text string
	Msg  string
	// Err is a more specific cause, like ErrDuplicateKey. The error always
	// matches ErrFormat.
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Unwrap returns ErrFormat and e.Err, if set.
func (e *SyntaxError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrFormat}
	}
	return []error{ErrFormat, e.Err}
}

// A ConversionError is returned by the typed accessors of PropertyValue.
type ConversionError struct {
	Value string
	// Type is the name of the target type, like "int64" or "bool".
	Type string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("cannot convert %q to %s", e.Value, e.Type)
	}
	return fmt.Sprintf("cannot convert %q to %s: %v", e.Value, e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalidArgument}, args...)...)
}
