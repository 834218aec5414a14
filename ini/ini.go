// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// A File is an INI document: an ordered list of uniquely named sections
// followed by the comments and blank lines that trail the last section.
// The zero value is an empty file that compares names case-insensitively.
//
// Files can be read by multiple concurrent goroutines, but must not be
// modified concurrently.
type File struct {
	sections []*Section

	// TrailingItems holds the comments and blank lines after the last
	// property, which are not attached to any section or property.
	TrailingItems []MinorItem

	// LineBreak is written after every line. Parse sets it to the first line
	// break in the input. If empty, "\n" is used.
	LineBreak string

	caseSensitive  bool
	cfg            *Config
	bom            bool
	noFinalNewline bool
	// finalCR is a '\r' after the last line that is not part of a line break.
	finalCR bool
}

// NewFile returns an empty file using the name comparison and Config from
// opts. Nil options are treated identically as passing the zero value.
func NewFile(opts *ParseOptions) *File {
	if opts == nil {
		return new(File)
	}
	return &File{
		caseSensitive: opts.CaseSensitive,
		cfg:           opts.Config,
	}
}

// Config returns the file's configuration, which is used for the padding of
// new items and by Format. Changes to the returned Config affect f.
func (f *File) Config() *Config {
	if f.cfg == nil {
		f.cfg = DefaultConfig()
	}
	return f.cfg
}

func (f *File) attach(s *Section) {
	s.file = f
}

func (f *File) namesEqual(a, b string) bool {
	if f.caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

func (f *File) lineBreak() string {
	if f.LineBreak == "" {
		return "\n"
	}
	return f.LineBreak
}

// Len returns the number of sections in the file.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.sections)
}

// SectionAt returns the i'th section. It panics if i is out of range.
func (f *File) SectionAt(i int) *Section {
	return f.sections[i]
}

// Sections returns the file's sections in order. The slice is a copy, but the
// sections are not.
func (f *File) Sections() []*Section {
	if f == nil {
		return nil
	}
	return append([]*Section(nil), f.sections...)
}

// SectionNames returns the names of the file's sections in order.
func (f *File) SectionNames() []string {
	if f == nil {
		return nil
	}
	names := make([]string, 0, len(f.sections))
	for _, s := range f.sections {
		names = append(names, s.name)
	}
	return names
}

// HasSections reports whether f has any sections with properties set.
func (f *File) HasSections() bool {
	if f == nil {
		return false
	}
	for _, s := range f.sections {
		if len(s.Properties) > 0 {
			return true
		}
	}
	return false
}

// Section returns the section with the given name or nil if there is none.
func (f *File) Section(name string) *Section {
	if i := f.index(name); i >= 0 {
		return f.sections[i]
	}
	return nil
}

func (f *File) index(name string) int {
	if f == nil {
		return -1
	}
	name = strings.TrimSpace(name)
	for i, s := range f.sections {
		if f.namesEqual(s.name, name) {
			return i
		}
	}
	return -1
}

// Add inserts s before the section before, or appends it if before is nil.
// Add returns an error wrapping ErrDuplicateKey if f already has a section
// with an equal name, or one wrapping ErrNotFound if before is not in f.
func (f *File) Add(s *Section, before *Section) error {
	if s == nil {
		return fmt.Errorf("add section: %w", invalidArgf("nil section"))
	}
	if f.Section(s.name) != nil {
		return fmt.Errorf("add section: %w %q", ErrDuplicateKey, s.name)
	}
	i := len(f.sections)
	if before != nil {
		i = f.position(before)
		if i < 0 {
			return fmt.Errorf("add section %q: %w: section %q", s.name, ErrNotFound, before.name)
		}
	}
	f.insert(i, s)
	return nil
}

// Insert inserts s so that it becomes the i'th section. Insert returns an
// error wrapping ErrDuplicateKey if f already has a section with an equal
// name, or one wrapping ErrInvalidArgument if i is out of range.
func (f *File) Insert(i int, s *Section) error {
	if s == nil {
		return fmt.Errorf("insert section: %w", invalidArgf("nil section"))
	}
	if i < 0 || i > len(f.sections) {
		return fmt.Errorf("insert section %q: %w", s.name, invalidArgf("index %d out of range [0, %d]", i, len(f.sections)))
	}
	if f.Section(s.name) != nil {
		return fmt.Errorf("insert section: %w %q", ErrDuplicateKey, s.name)
	}
	f.insert(i, s)
	return nil
}

func (f *File) insert(i int, s *Section) {
	f.sections = append(f.sections, nil)
	copy(f.sections[i+1:], f.sections[i:])
	f.sections[i] = s
	f.attach(s)
}

func (f *File) position(s *Section) int {
	for i, t := range f.sections {
		if t == s {
			return i
		}
	}
	return -1
}

// AddSection appends a new section with the file's default padding and
// returns it.
func (f *File) AddSection(name string) (*Section, error) {
	s, err := f.Config().NewSection(name)
	if err != nil {
		return nil, err
	}
	if err := f.Add(s, nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Remove removes the section with the given name and reports whether it was
// present.
func (f *File) Remove(name string) bool {
	i := f.index(name)
	if i < 0 {
		return false
	}
	s := f.sections[i]
	copy(f.sections[i:], f.sections[i+1:])
	// Zero out truncated element for garbage collection.
	f.sections[len(f.sections)-1] = nil
	f.sections = f.sections[:len(f.sections)-1]
	s.file = nil
	return true
}

// Get returns the value of the first property with the given key in the
// given section. If there is no such property, Get returns the empty string.
func (f *File) Get(section, key string) string {
	return f.Value(section, key).String()
}

// Value returns the value of the first property with the given key in the
// given section. The returned value is empty if there is no such property.
func (f *File) Value(section, key string) PropertyValue {
	s := f.Section(section)
	if s == nil {
		return PropertyValue{}
	}
	return s.Value(key)
}

// Find returns all the values associated with the given key in the given
// section, in file order.
func (f *File) Find(section, key string) []string {
	s := f.Section(section)
	if s == nil {
		return nil
	}
	var values []string
	for _, p := range s.Properties {
		if f.namesEqual(p.name, strings.TrimSpace(key)) {
			values = append(values, p.Value.s)
		}
	}
	return values
}

// Set sets the first property with the given key in the given section to the
// given value. If there is no such property, it is appended to the section,
// and the section is appended to the file if necessary.
func (f *File) Set(section, key string, value PropertyValue) error {
	s := f.Section(section)
	if s == nil {
		var err error
		s, err = f.AddSection(section)
		if err != nil {
			return fmt.Errorf("set %s.%s: %w", section, key, err)
		}
	}
	if err := s.Set(key, value); err != nil {
		return fmt.Errorf("set %s.%s: %w", section, key, err)
	}
	return nil
}

// Delete deletes any property with the given key in the given section. If
// this causes the section to become empty and the section does not have
// comments attached, the section is removed.
func (f *File) Delete(section, key string) {
	s := f.Section(section)
	if s == nil {
		return
	}
	if s.Remove(key) && len(s.Properties) == 0 && !hasComments(s.Items) {
		f.Remove(s.name)
	}
}

func hasComments(items []MinorItem) bool {
	for _, item := range items {
		if _, ok := item.(*Comment); ok {
			return true
		}
	}
	return false
}

// MarshalText serializes the file in INI format. A file returned by Parse
// that has not been modified serializes to its original text.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	lineBreak := f.lineBreak()
	var buf []byte
	if f.bom {
		buf = append(buf, utf8BOM...)
	}
	for _, s := range f.sections {
		for _, item := range s.Items {
			buf = appendMinor(buf, item, lineBreak)
		}
		buf = s.appendTo(buf)
		buf = append(buf, lineBreak...)
		for _, p := range s.Properties {
			for _, item := range p.Items {
				buf = appendMinor(buf, item, lineBreak)
			}
			buf = p.appendTo(buf, lineBreak)
			buf = append(buf, lineBreak...)
		}
	}
	for _, item := range f.TrailingItems {
		buf = appendMinor(buf, item, lineBreak)
	}
	if f.noFinalNewline {
		buf = bytes.TrimSuffix(buf, []byte(lineBreak))
		if f.finalCR {
			buf = append(buf, '\r')
		}
	}
	return buf, nil
}

// UnmarshalText parses the INI data, replacing any sections in f. The name
// comparison and Config of f are kept.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := ParseString(string(data), &ParseOptions{
		CaseSensitive: f.caseSensitive,
		Config:        f.cfg,
	})
	if err != nil {
		return err
	}
	*f = *parsed
	for _, s := range f.sections {
		f.attach(s)
	}
	return nil
}

// String returns the file in INI format.
func (f *File) String() string {
	text, _ := f.MarshalText()
	return string(text)
}

// WriteTo writes the file in INI format to w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	text, _ := f.MarshalText()
	n, err := w.Write(text)
	return int64(n), err
}

// Encode writes the file to w in the given character encoding. A nil
// encoding writes UTF-8, like WriteTo.
func (f *File) Encode(w io.Writer, enc encoding.Encoding) error {
	if w == nil {
		return fmt.Errorf("encode ini file: %w", invalidArgf("nil writer"))
	}
	if enc == nil || enc == unicode.UTF8 {
		if _, err := f.WriteTo(w); err != nil {
			return fmt.Errorf("encode ini file: %w", err)
		}
		return nil
	}
	text, _ := f.MarshalText()
	text = bytes.TrimPrefix(text, utf8BOM)
	tw := transform.NewWriter(w, enc.NewEncoder())
	if _, err := tw.Write(text); err != nil {
		return fmt.Errorf("encode ini file: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("encode ini file: %w", err)
	}
	return nil
}

// WriteFile writes the file to the given path in the given character
// encoding, creating or truncating it. A nil encoding writes UTF-8.
func (f *File) WriteFile(path string, enc encoding.Encoding) (err error) {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write ini file: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("write ini file: %w", closeErr)
		}
	}()
	if err := f.Encode(out, enc); err != nil {
		return fmt.Errorf("write ini file %s: %w", path, err)
	}
	return nil
}

// IsValidName reports whether a string can be used as a section or property
// name that reads back unchanged.
func IsValidName(name string) bool {
	if name == "" || strings.TrimSpace(name) != name {
		return false
	}
	return scanName(name, 0) == len(name)
}
