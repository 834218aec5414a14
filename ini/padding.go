// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// A PaddingValue is a whitespace width. It is rendered as that many spaces.
type PaddingValue int

// NewPaddingValue returns n as a PaddingValue. It returns an error wrapping
// ErrInvalidArgument if n is negative.
func NewPaddingValue(n int) (PaddingValue, error) {
	if n < 0 {
		return 0, invalidArgf("negative padding %d", n)
	}
	return PaddingValue(n), nil
}

// Int returns the width as an int.
func (p PaddingValue) Int() int {
	return int(p)
}

// String returns p spaces. Negative widths render as the empty string.
func (p PaddingValue) String() string {
	if p <= 0 {
		return ""
	}
	return strings.Repeat(" ", int(p))
}

func appendPadding(dst []byte, p PaddingValue) []byte {
	for i := PaddingValue(0); i < p; i++ {
		dst = append(dst, ' ')
	}
	return dst
}

// BlankLinePadding is the padding of a blank line: the number of spaces on it.
type BlankLinePadding struct {
	Left PaddingValue
}

// Reset restores the blank line padding defaults from cfg.
func (p *BlankLinePadding) Reset(cfg *Config) {
	*p = cfg.orDefault().Padding.BlankLine
}

// CommentPadding is the padding of a comment line:
//
//	<Left>;<Inside>text<Right>
type CommentPadding struct {
	Left   PaddingValue
	Inside PaddingValue
	Right  PaddingValue
}

// Reset restores the comment padding defaults from cfg.
func (p *CommentPadding) Reset(cfg *Config) {
	*p = cfg.orDefault().Padding.Comment
}

// SectionPadding is the padding of a section line:
//
//	<Left>[<InsideLeft>name<InsideRight>]<Right>
type SectionPadding struct {
	Left        PaddingValue
	InsideLeft  PaddingValue
	InsideRight PaddingValue
	Right       PaddingValue
}

// Reset restores the section padding defaults from cfg.
func (p *SectionPadding) Reset(cfg *Config) {
	*p = cfg.orDefault().Padding.Section
}

// PropertyPadding is the padding of a property line:
//
//	<Left>name<InsideLeft>=<InsideRight>value<Right>
type PropertyPadding struct {
	Left        PaddingValue
	InsideLeft  PaddingValue
	InsideRight PaddingValue
	Right       PaddingValue
}

// Reset restores the property padding defaults from cfg.
func (p *PropertyPadding) Reset(cfg *Config) {
	*p = cfg.orDefault().Padding.Property
}
