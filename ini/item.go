// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"strconv"
	"strings"
)

// An Item is a single construct of an INI file. The only implementations are
// *Section, *Property, *Comment and *BlankLine.
type Item interface {
	// String returns the item as it would appear in a file, without the
	// trailing line break.
	String() string
	isItem()
}

// A MinorItem is an unnamed item: a *Comment or a *BlankLine. Minor items are
// attached to the section or property that follows them, or trail the file.
type MinorItem interface {
	Item
	isMinor()
}

// A MajorItem is a named item: a *Section or a *Property.
type MajorItem interface {
	Item
	Name() string
	isMajor()
}

// DefaultEndMarker is the token that delimits a multi-line property value
// when the property does not name one.
const DefaultEndMarker = "EOT"

// major holds the parts shared by sections and properties.
type major struct {
	name string

	// Items is the list of comments and blank lines that precede the item.
	Items []MinorItem
}

// Name returns the item's name.
func (m *major) Name() string {
	return m.name
}

// AddComment appends a comment with default padding to the item's leading
// comments and blank lines.
func (m *major) AddComment(text string) *Comment {
	c := NewComment(text)
	m.Items = append(m.Items, c)
	return c
}

// AddBlankLine appends a blank line to the item's leading comments and blank
// lines.
func (m *major) AddBlankLine() *BlankLine {
	b := NewBlankLine()
	m.Items = append(m.Items, b)
	return b
}

func (m *major) isItem()  {}
func (m *major) isMajor() {}

// cleanName trims a section or property name and rejects names that do not
// follow the name syntax.
func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalidArgf("name must contain at least one non-space character")
	}
	if strings.ContainsAny(name, "\r\n") {
		return "", invalidArgf("name %q contains a line break", name)
	}
	if !IsValidName(name) {
		return "", invalidArgf("name %q would not read back unchanged", name)
	}
	return name, nil
}

// A Section is a named group of properties.
type Section struct {
	major
	Padding SectionPadding

	// Properties is the list of properties in file order. Property names
	// need not be unique; lookups return the first match.
	Properties []*Property

	cfg  *Config
	file *File
}

// NewSection returns a new section with the default padding. It returns an
// error wrapping ErrInvalidArgument if the name is not valid (see IsValidName).
func NewSection(name string) (*Section, error) {
	return defaultConfig.NewSection(name)
}

// SetName renames the section. If the section belongs to a File that has
// another section with an equal name, SetName returns an error wrapping
// ErrDuplicateKey and leaves the name unchanged.
func (s *Section) SetName(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return fmt.Errorf("rename section %q: %w", s.name, err)
	}
	if s.file != nil {
		if other := s.file.Section(name); other != nil && other != s {
			return fmt.Errorf("rename section %q: %w %q", s.name, ErrDuplicateKey, name)
		}
	}
	s.name = name
	return nil
}

func (s *Section) config() *Config {
	if s.file != nil {
		return s.file.cfg.orDefault()
	}
	return s.cfg.orDefault()
}

func (s *Section) namesEqual(a, b string) bool {
	if s.file != nil && s.file.caseSensitive {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// Len returns the number of properties in the section.
func (s *Section) Len() int {
	return len(s.Properties)
}

// Property returns the first property with the given name or nil if there is
// none. Names are compared case-insensitively unless the section belongs to a
// case-sensitive File.
func (s *Section) Property(name string) *Property {
	if i := s.index(name); i >= 0 {
		return s.Properties[i]
	}
	return nil
}

func (s *Section) index(name string) int {
	name = strings.TrimSpace(name)
	for i, p := range s.Properties {
		if s.namesEqual(p.name, name) {
			return i
		}
	}
	return -1
}

// Get returns the value of the first property with the given name or the
// empty string if there is none.
func (s *Section) Get(name string) string {
	return s.Value(name).String()
}

// Value returns the value of the first property with the given name. The
// returned value is empty if there is no such property.
func (s *Section) Value(name string) PropertyValue {
	if p := s.Property(name); p != nil {
		return p.Value
	}
	return PropertyValue{}
}

// Set sets the value of the first property with the given name, appending a
// new property if there is none.
func (s *Section) Set(name string, value PropertyValue) error {
	if p := s.Property(name); p != nil {
		p.Value = value
		p.emptyLine = false
		return nil
	}
	p, err := s.config().NewProperty(name, value)
	if err != nil {
		return fmt.Errorf("set property in section %q: %w", s.name, err)
	}
	s.Properties = append(s.Properties, p)
	return nil
}

// Add inserts p before the property before, or appends it if before is nil.
// Add returns an error wrapping ErrNotFound if before is not in the section.
func (s *Section) Add(p *Property, before *Property) error {
	if p == nil {
		return invalidArgf("add nil property to section %q", s.name)
	}
	if before == nil {
		s.Properties = append(s.Properties, p)
		return nil
	}
	for i, q := range s.Properties {
		if q == before {
			s.Properties = append(s.Properties, nil)
			copy(s.Properties[i+1:], s.Properties[i:])
			s.Properties[i] = p
			return nil
		}
	}
	return fmt.Errorf("add property %q to section %q: %w: property %q", p.name, s.name, ErrNotFound, before.name)
}

// Remove removes every property with the given name and reports whether
// any were removed.
func (s *Section) Remove(name string) bool {
	n := 0
	for _, p := range s.Properties {
		if !s.namesEqual(p.name, strings.TrimSpace(name)) {
			s.Properties[n] = p
			n++
		}
	}
	for i := n; i < len(s.Properties); i++ {
		// Zero out for garbage collection.
		s.Properties[i] = nil
	}
	removed := n < len(s.Properties)
	s.Properties = s.Properties[:n]
	return removed
}

// String returns the section line.
func (s *Section) String() string {
	return string(s.appendTo(nil))
}

func (s *Section) appendTo(dst []byte) []byte {
	dst = appendPadding(dst, s.Padding.Left)
	dst = append(dst, '[')
	dst = appendPadding(dst, s.Padding.InsideLeft)
	dst = append(dst, s.name...)
	dst = appendPadding(dst, s.Padding.InsideRight)
	dst = append(dst, ']')
	dst = appendPadding(dst, s.Padding.Right)
	return dst
}

// A Property is a name/value pair inside a section.
type Property struct {
	major
	Value   PropertyValue
	Padding PropertyPadding

	// EndMarker is the token that ends a multi-line value. When set, the
	// value is always written in multi-line form. When empty,
	// DefaultEndMarker is used for values that contain line breaks.
	EndMarker string

	// closing is the terminator line as it appeared in the parsed file.
	closing string
	// emptyLine is set for a parsed multi-line value made of a single empty
	// line. It only applies while the value is empty.
	emptyLine bool
}

// NewProperty returns a new property with the default padding. It returns an
// error wrapping ErrInvalidArgument if the name is not valid (see IsValidName).
func NewProperty(name string, value PropertyValue) (*Property, error) {
	return defaultConfig.NewProperty(name, value)
}

// SetName renames the property.
func (p *Property) SetName(name string) error {
	name, err := cleanName(name)
	if err != nil {
		return fmt.Errorf("rename property %q: %w", p.name, err)
	}
	p.name = name
	return nil
}

// IsMultiline reports whether the property is written in multi-line form:
//
//	name = <<EOT
//	first line
//	second line
//	EOT
func (p *Property) IsMultiline() bool {
	return p.EndMarker != "" || strings.Contains(p.Value.s, "\n") || isHeredocStart(p.Value.s)
}

// marker returns the end marker to write: EndMarker or DefaultEndMarker,
// followed by a number if a line of the value would end the value early.
func (p *Property) marker() string {
	base := p.EndMarker
	if base == "" {
		base = DefaultEndMarker
	}
	lines := strings.Split(p.Value.s, "\n")
	marker := base
	for i := 1; containsLine(lines, marker); i++ {
		marker = base + strconv.Itoa(i)
	}
	return marker
}

func containsLine(lines []string, marker string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) == marker {
			return true
		}
	}
	return false
}

// String returns the property line. Multi-line properties span several lines
// separated by "\n".
func (p *Property) String() string {
	return string(p.appendTo(nil, "\n"))
}

func (p *Property) appendTo(dst []byte, lineBreak string) []byte {
	dst = appendPadding(dst, p.Padding.Left)
	dst = append(dst, p.name...)
	dst = appendPadding(dst, p.Padding.InsideLeft)
	dst = append(dst, '=')
	dst = appendPadding(dst, p.Padding.InsideRight)
	if !p.IsMultiline() {
		dst = append(dst, p.Value.s...)
		dst = appendPadding(dst, p.Padding.Right)
		return dst
	}
	marker := p.marker()
	dst = append(dst, "<<"...)
	dst = append(dst, marker...)
	dst = appendPadding(dst, p.Padding.Right)
	if p.Value.s != "" || p.emptyLine {
		for _, line := range strings.Split(p.Value.s, "\n") {
			dst = append(dst, lineBreak...)
			dst = append(dst, line...)
		}
	}
	dst = append(dst, lineBreak...)
	if strings.TrimSpace(p.closing) == marker {
		dst = append(dst, p.closing...)
	} else {
		dst = append(dst, marker...)
	}
	return dst
}

// A Comment is a comment line.
type Comment struct {
	// Text must not contain line breaks. Leading and trailing spaces are
	// written as padding, so they do not read back as part of the text.
	Text string
	// Marker is the comment character, ';' or '#'. The zero value means ';'.
	Marker  byte
	Padding CommentPadding
}

// NewComment returns a new ';' comment with the default padding.
func NewComment(text string) *Comment {
	return defaultConfig.NewComment(text)
}

// String returns the comment line.
func (c *Comment) String() string {
	return string(c.appendTo(nil))
}

func (c *Comment) appendTo(dst []byte) []byte {
	marker := c.Marker
	if marker == 0 {
		marker = ';'
	}
	dst = appendPadding(dst, c.Padding.Left)
	dst = append(dst, marker)
	dst = appendPadding(dst, c.Padding.Inside)
	dst = append(dst, c.Text...)
	dst = appendPadding(dst, c.Padding.Right)
	return dst
}

func (c *Comment) isItem()  {}
func (c *Comment) isMinor() {}

// A BlankLine is an empty or all-space line.
type BlankLine struct {
	Padding BlankLinePadding
}

// NewBlankLine returns a new empty blank line.
func NewBlankLine() *BlankLine {
	return defaultConfig.NewBlankLine()
}

// String returns Padding.Left spaces.
func (b *BlankLine) String() string {
	return b.Padding.Left.String()
}

func (b *BlankLine) isItem()  {}
func (b *BlankLine) isMinor() {}

// appendMinor appends the text of a minor item followed by a line break.
func appendMinor(dst []byte, item MinorItem, lineBreak string) []byte {
	switch item := item.(type) {
	case *Comment:
		dst = item.appendTo(dst)
	case *BlankLine:
		dst = appendPadding(dst, item.Padding.Left)
	}
	return append(dst, lineBreak...)
}
