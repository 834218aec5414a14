// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// A PropertyValue is the value of a property. It is always representable as a
// string (its canonical form, which is what gets written to the file) and may
// remember the typed value it was created from. The zero value is empty.
type PropertyValue struct {
	s     string
	typed interface{}
	set   bool
}

// StringValue returns s as a property value.
func StringValue(s string) PropertyValue {
	return PropertyValue{s: s, set: true}
}

// IntValue returns a property value holding the base 10 form of n.
func IntValue(n int64) PropertyValue {
	return PropertyValue{s: strconv.FormatInt(n, 10), typed: n, set: true}
}

// UintValue returns a property value holding the base 10 form of n.
func UintValue(n uint64) PropertyValue {
	return PropertyValue{s: strconv.FormatUint(n, 10), typed: n, set: true}
}

// FloatValue returns a property value holding the shortest decimal form of f
// that parses back to f.
func FloatValue(f float64) PropertyValue {
	return PropertyValue{s: strconv.FormatFloat(f, 'g', -1, 64), typed: f, set: true}
}

// BoolValue returns a property value holding "True" or "False".
// Use TypesConfig.BoolValue for other tokens.
func BoolValue(b bool) PropertyValue {
	return defaultConfig.Types.BoolValue(b)
}

// TimeValue returns a property value holding t formatted as RFC 3339.
// Use TypesConfig.TimeValue for other layouts.
func TimeValue(t time.Time) PropertyValue {
	return defaultConfig.Types.TimeValue(t)
}

// DurationValue returns a property value holding d as formatted by
// time.Duration.String.
func DurationValue(d time.Duration) PropertyValue {
	return PropertyValue{s: d.String(), typed: d, set: true}
}

// EnumValue returns a property value holding x.String().
func EnumValue[T fmt.Stringer](x T) PropertyValue {
	return PropertyValue{s: x.String(), typed: x, set: true}
}

// BoolValue returns a property value holding tc.TrueString or tc.FalseString.
func (tc TypesConfig) BoolValue(b bool) PropertyValue {
	tc = tc.orDefault()
	s := tc.FalseString
	if b {
		s = tc.TrueString
	}
	return PropertyValue{s: s, typed: b, set: true}
}

// TimeValue returns a property value holding t formatted with tc.DateFormat.
func (tc TypesConfig) TimeValue(t time.Time) PropertyValue {
	return PropertyValue{s: t.Format(tc.orDefault().DateFormat), typed: t, set: true}
}

func (tc TypesConfig) orDefault() TypesConfig {
	def := defaultTypes()
	if tc.DateFormat == "" {
		tc.DateFormat = def.DateFormat
	}
	if tc.TrueString == "" {
		tc.TrueString = def.TrueString
	}
	if tc.FalseString == "" {
		tc.FalseString = def.FalseString
	}
	return tc
}

// String returns the canonical form of the value.
func (v PropertyValue) String() string {
	return v.s
}

// IsEmpty reports whether v is the zero PropertyValue. StringValue("") is not
// empty.
func (v PropertyValue) IsEmpty() bool {
	return !v.set
}

// Equal reports whether v and w have the same canonical form.
func (v PropertyValue) Equal(w PropertyValue) bool {
	return v.s == w.s
}

// Int parses the value as a base 10 int.
func (v PropertyValue) Int() (int, error) {
	n, err := strconv.ParseInt(v.s, 10, strconv.IntSize)
	if err != nil {
		return 0, v.convErr("int", err)
	}
	return int(n), nil
}

// Int64 parses the value as a base 10 int64.
func (v PropertyValue) Int64() (int64, error) {
	n, err := strconv.ParseInt(v.s, 10, 64)
	if err != nil {
		return 0, v.convErr("int64", err)
	}
	return n, nil
}

// Uint64 parses the value as a base 10 uint64.
func (v PropertyValue) Uint64() (uint64, error) {
	n, err := strconv.ParseUint(v.s, 10, 64)
	if err != nil {
		return 0, v.convErr("uint64", err)
	}
	return n, nil
}

// Float64 parses the value as a float64.
func (v PropertyValue) Float64() (float64, error) {
	f, err := strconv.ParseFloat(v.s, 64)
	if err != nil {
		return 0, v.convErr("float64", err)
	}
	return f, nil
}

// Bool parses the value as a boolean using the default True/False tokens.
// See TypesConfig.ParseBool for the accepted forms.
func (v PropertyValue) Bool() (bool, error) {
	return defaultConfig.Types.ParseBool(v)
}

// Time parses the value with the given time layout. A value created by
// TimeValue returns its original time.
func (v PropertyValue) Time(layout string) (time.Time, error) {
	if t, ok := v.typed.(time.Time); ok {
		return t, nil
	}
	t, err := time.Parse(layout, v.s)
	if err != nil {
		return time.Time{}, v.convErr("time.Time", err)
	}
	return t, nil
}

// Duration parses the value with time.ParseDuration.
func (v PropertyValue) Duration() (time.Duration, error) {
	d, err := time.ParseDuration(v.s)
	if err != nil {
		return 0, v.convErr("time.Duration", err)
	}
	return d, nil
}

// ParseBool converts v to a boolean. The value is matched case-insensitively
// against 0, f, n, off, no, disabled and false (false), against 1, t, y, on,
// yes, enabled and true (true), and then against tc.TrueString and
// tc.FalseString.
func (tc TypesConfig) ParseBool(v PropertyValue) (bool, error) {
	if b, ok := v.typed.(bool); ok {
		return b, nil
	}
	switch strings.ToLower(v.s) {
	case "0", "f", "n", "off", "no", "disabled", "false":
		return false, nil
	case "1", "t", "y", "on", "yes", "enabled", "true":
		return true, nil
	}
	tc = tc.orDefault()
	switch {
	case strings.EqualFold(v.s, tc.TrueString):
		return true, nil
	case strings.EqualFold(v.s, tc.FalseString):
		return false, nil
	}
	return false, v.convErr("bool", nil)
}

// ParseTime converts v to a time using tc.DateFormat.
func (tc TypesConfig) ParseTime(v PropertyValue) (time.Time, error) {
	return v.Time(tc.orDefault().DateFormat)
}

// Enum returns the candidate whose String method matches v. A value created
// by EnumValue with the same type returns its original value.
func Enum[T fmt.Stringer](v PropertyValue, candidates []T, caseSensitive bool) (T, error) {
	if x, ok := v.typed.(T); ok {
		return x, nil
	}
	for _, c := range candidates {
		name := c.String()
		if name == v.s || !caseSensitive && strings.EqualFold(name, v.s) {
			return c, nil
		}
	}
	var zero T
	return zero, v.convErr(fmt.Sprintf("%T", zero), nil)
}

func (v PropertyValue) convErr(typ string, err error) error {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		err = numErr.Err
	}
	return &ConversionError{Value: v.s, Type: typ, Err: err}
}
