// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ParseOptions holds optional parameters for Parse. The zero value parses
// UTF-8 text with case-insensitive names and the default Config.
type ParseOptions struct {
	// Encoding is the character encoding of the input. If nil, the input is
	// read as UTF-8. A leading UTF-8 byte order mark is always skipped and
	// remembered for serialization.
	Encoding encoding.Encoding

	// DetectEncoding makes Parse honor a UTF-8 or UTF-16 byte order mark at
	// the start of the input, overriding Encoding.
	DetectEncoding bool

	// CaseSensitive makes section and property name comparisons
	// case-sensitive.
	CaseSensitive bool

	// IgnoreBlankLines and IgnoreComments drop blank lines and comments from
	// the parsed document.
	IgnoreBlankLines bool
	IgnoreComments   bool

	// Config holds the defaults for the document. If nil, DefaultConfig() is
	// used.
	Config *Config
}

var utf8BOM = []byte("\xef\xbb\xbf")

// Parse parses an INI file. Nil options are treated identically as passing the
// zero value.
//
// See the Syntax section in the package documentation for the format recognized
// by Parse. Parse returns an error wrapping ErrFormat (usually a *SyntaxError)
// if any line cannot be parsed; no partial document is returned.
func Parse(r io.Reader, opts *ParseOptions) (*File, error) {
	if r == nil {
		return nil, fmt.Errorf("parse ini file: %w", invalidArgf("nil reader"))
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	if opts == nil {
		opts = new(ParseOptions)
	}
	text, bom, err := decode(data, opts)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	f, err := parseText(text, opts)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	f.bom = bom
	return f, nil
}

// ParseString parses INI text held in a string. opts.Encoding and
// opts.DetectEncoding are ignored.
func ParseString(s string, opts *ParseOptions) (*File, error) {
	if opts == nil {
		opts = new(ParseOptions)
	}
	bom := strings.HasPrefix(s, string(utf8BOM))
	f, err := parseText(strings.TrimPrefix(s, string(utf8BOM)), opts)
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	f.bom = bom
	return f, nil
}

// ParseFile parses the INI file at the given path. If the file does not
// exist, the returned error wraps both ErrNotFound and fs.ErrNotExist.
func ParseFile(path string, opts *ParseOptions) (*File, error) {
	r, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("parse ini file: %w: %w", ErrNotFound, err)
	}
	if err != nil {
		return nil, fmt.Errorf("parse ini file: %w", err)
	}
	defer r.Close() // Close errors irrelevant for reads.
	f, err := Parse(r, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// decode converts data to UTF-8 text according to opts. bom reports whether
// the input started with a UTF-8 byte order mark.
func decode(data []byte, opts *ParseOptions) (text string, bom bool, err error) {
	isUTF8 := opts.Encoding == nil || opts.Encoding == unicode.UTF8
	bom = bytes.HasPrefix(data, utf8BOM)
	if opts.DetectEncoding {
		var fallback transform.Transformer = transform.Nop
		if !isUTF8 {
			fallback = opts.Encoding.NewDecoder()
		}
		out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
		if err != nil {
			return "", false, fmt.Errorf("decode: %w", err)
		}
		return string(out), bom, nil
	}
	if isUTF8 {
		return string(bytes.TrimPrefix(data, utf8BOM)), bom, nil
	}
	out, err := opts.Encoding.NewDecoder().Bytes(data)
	if err != nil {
		return "", false, fmt.Errorf("decode: %w", err)
	}
	return string(out), false, nil
}

// splitLines splits text into lines without their line breaks. lineBreak is
// the first line break found ("\n" or "\r\n"), or empty if there is none.
// finalCR reports whether a last line without a line break ended in '\r',
// which is removed from it.
func splitLines(text string) (lines []string, lineBreak string, finalNewline, finalCR bool) {
	if text == "" {
		return nil, "", true, false
	}
	lines = strings.Split(text, "\n")
	finalNewline = lines[len(lines)-1] == ""
	if finalNewline {
		lines = lines[:len(lines)-1]
	}
	for i := range lines {
		cr := strings.HasSuffix(lines[i], "\r")
		if cr {
			lines[i] = lines[i][:len(lines[i])-1]
		}
		if !finalNewline && i == len(lines)-1 {
			// Not followed by a line break.
			finalCR = cr
			break
		}
		if lineBreak == "" {
			lineBreak = "\n"
			if cr {
				lineBreak = "\r\n"
			}
		}
	}
	return lines, lineBreak, finalNewline, finalCR
}

func parseText(text string, opts *ParseOptions) (*File, error) {
	lines, lineBreak, finalNewline, finalCR := splitLines(text)
	f := &File{
		caseSensitive:  opts.CaseSensitive,
		cfg:            opts.Config,
		LineBreak:      lineBreak,
		noFinalNewline: !finalNewline,
		finalCR:        finalCR,
	}
	p := &parser{
		f:    f,
		opts: opts,
		cfg:  opts.Config.orDefault(),
	}
	for i, line := range lines {
		if err := p.line(i+1, line); err != nil {
			return nil, err
		}
	}
	if err := p.finish(); err != nil {
		return nil, err
	}
	return f, nil
}

type parseState int

const (
	// stateNormal classifies each line as an item.
	stateNormal parseState = iota
	// stateHeredoc collects the lines of a multi-line property value.
	stateHeredoc
)

// parser groups the flat sequence of lines into sections and properties.
// Comments and blank lines accumulate in pending until the next section or
// property claims them.
type parser struct {
	f    *File
	opts *ParseOptions
	cfg  *Config

	state   parseState
	section *Section
	pending []MinorItem

	// Valid in stateHeredoc.
	heredoc     *Property
	heredocLine int
	heredocText string
	endToken    string
	valueLines  []string
}

func (p *parser) line(lineno int, line string) error {
	if p.state == stateHeredoc {
		// The end marker is case-sensitive.
		if strings.TrimSpace(line) != p.endToken {
			p.valueLines = append(p.valueLines, line)
			return nil
		}
		p.heredoc.Value = StringValue(strings.Join(p.valueLines, "\n"))
		p.heredoc.emptyLine = len(p.valueLines) == 1 && p.valueLines[0] == ""
		p.heredoc.closing = line
		p.state = stateNormal
		p.heredoc = nil
		p.valueLines = nil
		return nil
	}

	item, err := ParseLine(line, p.cfg)
	if err != nil {
		var serr *SyntaxError
		if errors.As(err, &serr) {
			serr.Line = lineno
		}
		return err
	}
	switch item := item.(type) {
	case *BlankLine:
		if !p.opts.IgnoreBlankLines {
			p.pending = append(p.pending, item)
		}
	case *Comment:
		if !p.opts.IgnoreComments {
			p.pending = append(p.pending, item)
		}
	case *Section:
		if p.f.Section(item.name) != nil {
			return &SyntaxError{
				Line: lineno,
				Text: line,
				Msg:  fmt.Sprintf("duplicate section %q", item.name),
				Err:  ErrDuplicateKey,
			}
		}
		item.Items = p.takePending()
		p.f.attach(item)
		p.f.sections = append(p.f.sections, item)
		p.section = item
	case *Property:
		if p.section == nil {
			return &SyntaxError{
				Line: lineno,
				Text: line,
				Msg:  fmt.Sprintf("property %q without section", item.name),
			}
		}
		item.Items = p.takePending()
		p.section.Properties = append(p.section.Properties, item)
		if token := heredocToken(item.Value.s); token != "" {
			item.EndMarker = token
			p.state = stateHeredoc
			p.heredoc = item
			p.heredocLine = lineno
			p.heredocText = line
			p.endToken = token
		}
	}
	return nil
}

func (p *parser) takePending() []MinorItem {
	items := p.pending
	p.pending = nil
	return items
}

func (p *parser) finish() error {
	if p.state == stateHeredoc {
		return &SyntaxError{
			Line: p.heredocLine,
			Text: p.heredocText,
			Msg:  fmt.Sprintf("multi-line value of %q is not terminated by %q", p.heredoc.name, p.endToken),
		}
	}
	p.f.TrailingItems = p.takePending()
	return nil
}
