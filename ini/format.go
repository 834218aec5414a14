// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

// FormatOptions holds optional parameters for Format. The zero value only
// resets padding.
type FormatOptions struct {
	// EnsureBlankLineBetweenSections inserts a blank line before every
	// section but the first, unless its leading items already start with one.
	EnsureBlankLineBetweenSections bool

	// EnsureBlankLineBetweenProperties does the same for every property but
	// the first of each section.
	EnsureBlankLineBetweenProperties bool

	// RemoveSuccessiveBlankLines collapses runs of blank lines into one.
	RemoveSuccessiveBlankLines bool
}

// Format rewrites the file in place: every item's padding is reset to the
// defaults of the file's Config, blank lines at the end of the file are
// removed and the file ends with a line break. Nil options are treated
// identically as passing the zero value.
//
// Formatting a formatted file with the same options does not change it.
func (f *File) Format(opts *FormatOptions) {
	if opts == nil {
		opts = new(FormatOptions)
	}
	cfg := f.cfg.orDefault()
	for i, s := range f.sections {
		s.Items = formatMinor(s.Items, cfg, opts.EnsureBlankLineBetweenSections && i > 0, opts.RemoveSuccessiveBlankLines)
		s.Padding.Reset(cfg)
		for j, p := range s.Properties {
			p.Items = formatMinor(p.Items, cfg, opts.EnsureBlankLineBetweenProperties && j > 0, opts.RemoveSuccessiveBlankLines)
			p.Padding.Reset(cfg)
			p.closing = ""
		}
	}
	f.TrailingItems = formatMinor(f.TrailingItems, cfg, false, opts.RemoveSuccessiveBlankLines)
	n := len(f.TrailingItems)
	for n > 0 && isBlank(f.TrailingItems[n-1]) {
		n--
		f.TrailingItems[n] = nil
	}
	f.TrailingItems = f.TrailingItems[:n]
	f.noFinalNewline = false
	f.finalCR = false
}

func formatMinor(items []MinorItem, cfg *Config, ensureBlank, squeeze bool) []MinorItem {
	for _, item := range items {
		switch item := item.(type) {
		case *Comment:
			item.Padding.Reset(cfg)
		case *BlankLine:
			item.Padding.Reset(cfg)
		}
	}
	if ensureBlank && (len(items) == 0 || !isBlank(items[0])) {
		items = append([]MinorItem{cfg.NewBlankLine()}, items...)
	}
	if squeeze {
		items = removeSuccessiveBlankLines(items)
	}
	return items
}

// removeSuccessiveBlankLines drops every blank line that immediately follows
// another blank line. It reuses the backing array of items.
func removeSuccessiveBlankLines(items []MinorItem) []MinorItem {
	n := 0
	for _, item := range items {
		if n > 0 && isBlank(item) && isBlank(items[n-1]) {
			continue
		}
		items[n] = item
		n++
	}
	for i := n; i < len(items); i++ {
		items[i] = nil
	}
	return items[:n]
}

func isBlank(item MinorItem) bool {
	_, ok := item.(*BlankLine)
	return ok
}
