// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseLine classifies a single line of INI text (without its line break) as
// a property, section, comment or blank line, in that order of priority.
// The padding of the returned item records the width of the whitespace
// around each token, so that String returns line unchanged as long as line
// only uses spaces for whitespace. cfg controls whether '#' comments are
// recognized; nil means the default configuration.
//
// ParseLine returns a *SyntaxError if the line matches none of the forms.
func ParseLine(line string, cfg *Config) (Item, error) {
	if p := scanProperty(line); p != nil {
		return p, nil
	}
	if s := scanSection(line); s != nil {
		return s, nil
	}
	if c := scanComment(line, cfg.orDefault().HashComments.Allow); c != nil {
		return c, nil
	}
	if b := scanBlankLine(line); b != nil {
		return b, nil
	}
	return nil, &SyntaxError{Text: line, Msg: "unrecognized line " + quoteLine(line)}
}

func quoteLine(line string) string {
	const max = 60
	if len(line) > max {
		line = line[:max] + "..."
	}
	return "\"" + line + "\""
}

// isWordChar reports whether c is a letter, digit, combining mark or
// connector punctuation (which includes the underscore).
func isWordChar(c rune) bool {
	return unicode.In(c, unicode.L, unicode.Mn, unicode.Nd, unicode.Pc)
}

// isNameStart reports whether c can begin a section or property name.
func isNameStart(c rune) bool {
	return isWordChar(c) || c == '.' || c == '$' || c == ':'
}

// isNameChar reports whether c can appear after the first character of a
// section or property name.
func isNameChar(c rune) bool {
	return isWordChar(c) || unicode.IsSpace(c) || strings.ContainsRune("_~-.:", c)
}

// spaceWidth returns the number of characters in s.
func spaceWidth(s string) PaddingValue {
	return PaddingValue(utf8.RuneCountInString(s))
}

// skipSpace returns the index of the first non-space character in s at or
// after i.
func skipSpace(s string, i int) int {
	for i < len(s) {
		c, n := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(c) {
			break
		}
		i += n
	}
	return i
}

// scanName scans a name starting at i and returns the index of the first
// character that is not part of it. The name may end in spaces. It returns
// i if there is no name at i.
func scanName(s string, i int) int {
	c, n := utf8.DecodeRuneInString(s[i:])
	if n == 0 || !isNameStart(c) {
		return i
	}
	j := i + n
	for j < len(s) {
		c, n := utf8.DecodeRuneInString(s[j:])
		if !isNameChar(c) {
			break
		}
		j += n
	}
	return j
}

// splitTrailingSpace splits s into its content and its trailing whitespace.
func splitTrailingSpace(s string) (content, space string) {
	content = strings.TrimRightFunc(s, unicode.IsSpace)
	return content, s[len(content):]
}

// scanProperty recognizes
//
//	<space>name<space>=<space>value<space>
func scanProperty(line string) *Property {
	start := skipSpace(line, 0)
	end := scanName(line, start)
	if end == start || end >= len(line) || line[end] != '=' {
		return nil
	}
	name, insideLeft := splitTrailingSpace(line[start:end])
	valueStart := skipSpace(line, end+1)
	value, right := splitTrailingSpace(line[valueStart:])
	return &Property{
		major: major{name: name},
		Value: StringValue(value),
		Padding: PropertyPadding{
			Left:        spaceWidth(line[:start]),
			InsideLeft:  spaceWidth(insideLeft),
			InsideRight: spaceWidth(line[end+1 : valueStart]),
			Right:       spaceWidth(right),
		},
	}
}

// scanSection recognizes
//
//	<space>[<space>name<space>]<space>
func scanSection(line string) *Section {
	open := skipSpace(line, 0)
	if open >= len(line) || line[open] != '[' {
		return nil
	}
	start := skipSpace(line, open+1)
	end := scanName(line, start)
	if end == start || end >= len(line) || line[end] != ']' {
		return nil
	}
	if skipSpace(line, end+1) != len(line) {
		return nil
	}
	name, insideRight := splitTrailingSpace(line[start:end])
	return &Section{
		major: major{name: name},
		Padding: SectionPadding{
			Left:        spaceWidth(line[:open]),
			InsideLeft:  spaceWidth(line[open+1 : start]),
			InsideRight: spaceWidth(insideRight),
			Right:       spaceWidth(line[end+1:]),
		},
	}
}

// scanComment recognizes
//
//	<space>;<space>text<space>
//
// and the same with '#' if allowHash is true.
func scanComment(line string, allowHash bool) *Comment {
	mark := skipSpace(line, 0)
	if mark >= len(line) {
		return nil
	}
	if c := line[mark]; c != ';' && !(allowHash && c == '#') {
		return nil
	}
	start := skipSpace(line, mark+1)
	text, right := splitTrailingSpace(line[start:])
	return &Comment{
		Text:   text,
		Marker: line[mark],
		Padding: CommentPadding{
			Left:   spaceWidth(line[:mark]),
			Inside: spaceWidth(line[mark+1 : start]),
			Right:  spaceWidth(right),
		},
	}
}

// scanBlankLine recognizes lines that are empty or only contain whitespace.
func scanBlankLine(line string) *BlankLine {
	if skipSpace(line, 0) != len(line) {
		return nil
	}
	return &BlankLine{Padding: BlankLinePadding{Left: spaceWidth(line)}}
}

// heredocToken returns the end marker of a multi-line value start ("<<EOT")
// or the empty string if value does not start a multi-line value.
func heredocToken(value string) string {
	if !strings.HasPrefix(value, "<<") {
		return ""
	}
	token := value[2:]
	if token == "" {
		return ""
	}
	for _, c := range token {
		if !isWordChar(c) {
			return ""
		}
	}
	return token
}

func isHeredocStart(value string) bool {
	return heredocToken(value) != ""
}
