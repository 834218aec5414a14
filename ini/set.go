// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"errors"
	"fmt"
)

// FileSet is a list of files to obtain configuration from in descending order
// of precedence. Nil elements are treated as empty files.
type FileSet []*File

// ParseFiles parses the files at the given paths as INI and returns a FileSet.
// If the returned error is nil, the returned file set's length will be the same
// as the number of arguments. ParseFiles will stop on the first error, but
// ignores missing file errors, instead filling the corresponding element of the
// set with a nil *File.
func ParseFiles(opts *ParseOptions, paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := ParseFile(p, opts)
		if errors.Is(err, ErrNotFound) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %w", err)
		}
		fset = append(fset, f)
	}
	return fset, nil
}

// Get returns the value of the property with the given key in the given
// section from the first file that has one. If no file has the property, Get
// returns the empty string.
func (fset FileSet) Get(section, key string) string {
	return fset.Value(section, key).String()
}

// Value is like Get, but returns a PropertyValue. The returned value is empty
// if no file has the property.
func (fset FileSet) Value(section, key string) PropertyValue {
	for _, f := range fset {
		if s := f.Section(section); s != nil {
			if p := s.Property(key); p != nil {
				return p.Value
			}
		}
	}
	return PropertyValue{}
}

// Find returns all the values associated with the given key in the given
// section, from the lowest precedence file to the highest.
func (fset FileSet) Find(section, key string) []string {
	var values []string
	for i := len(fset) - 1; i >= 0; i-- {
		values = append(values, fset[i].Find(section, key)...)
	}
	return values
}

// SectionNames returns the names of the sections in any file, in order of
// first appearance by precedence. Names that are equal under a file's name
// comparison are reported once.
func (fset FileSet) SectionNames() []string {
	var names []string
	for _, f := range fset {
		for _, name := range f.SectionNames() {
			if !containsName(f, names, name) {
				names = append(names, name)
			}
		}
	}
	return names
}

func containsName(f *File, names []string, name string) bool {
	for _, n := range names {
		if f.namesEqual(n, name) {
			return true
		}
	}
	return false
}

// HasSections reports whether any file has a section with properties set.
func (fset FileSet) HasSections() bool {
	for _, f := range fset {
		if f.HasSections() {
			return true
		}
	}
	return false
}

// Set sets the property on the first file and deletes the property in all
// subsequent files. Set returns an error wrapping ErrInvalidArgument if
// len(fset) == 0 or the names are blank.
//
// If fset[0] == nil, Set allocates a new File. Any other nil files in the set
// will be ignored.
func (fset FileSet) Set(section, key string, value PropertyValue) error {
	if len(fset) == 0 {
		return fmt.Errorf("set %s.%s: %w", section, key, invalidArgf("empty file set"))
	}
	if fset[0] == nil {
		fset[0] = new(File)
	}
	if err := fset[0].Set(section, key, value); err != nil {
		return err
	}
	fset[1:].Delete(section, key)
	return nil
}

// Delete deletes any property with the given key in sections with the given
// name. If this causes any sections that do not have comments attached to
// become empty, then those sections will be removed. Nil elements of the set
// are ignored.
func (fset FileSet) Delete(section, key string) {
	for _, f := range fset {
		if f != nil {
			f.Delete(section, key)
		}
	}
}
