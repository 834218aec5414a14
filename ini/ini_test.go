// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bytes"
	"encoding"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Ensure File satisfies the encoding.Text* interfaces.
var _ interface {
	encoding.TextMarshaler
	encoding.TextUnmarshaler
} = new(File)

func TestNil(t *testing.T) {
	f := (*File)(nil)
	if got := f.Get("foo", "bar"); got != "" {
		t.Errorf("Get(...) = %q; want empty", got)
	}
	if got := f.Find("foo", "bar"); len(got) > 0 {
		t.Errorf("Find(...) = %q; want empty", got)
	}
	if got := f.SectionNames(); len(got) > 0 {
		t.Errorf("SectionNames() = %q; want empty", got)
	}
	if got := f.Len(); got != 0 {
		t.Errorf("Len() = %d; want 0", got)
	}
	if f.HasSections() {
		t.Error("HasSections() = true; want false")
	}
	if got := f.Section("foo"); got != nil {
		t.Errorf("Section(...) = %v; want nil", got)
	}
	if got, err := f.MarshalText(); err != nil {
		t.Errorf("MarshalText(): %v", err)
	} else if len(got) > 0 {
		t.Errorf("MarshalText() = %q; want empty", got)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		options *ParseOptions
	}{
		{name: "Empty", source: ""},
		{name: "OnlyNewline", source: "\n"},
		{name: "Single", source: "[foo]\nbar=baz\n"},
		{
			name:   "GameState",
			source: "[Game State]\n; comment\nPlayer1=Ryan\nPlayer2=Emma\n",
		},
		{name: "SpaceEverywhere", source: "  [  foo  ]   \n   bar   =   baz   \n"},
		{name: "SpaceInName", source: "[my section]\nmy key = my value\n"},
		{name: "EmptyValue", source: "[foo]\nbar=\nbaz = \n"},
		{name: "SemicolonInValue", source: "[foo]\nurl = http://example.com/;x=1\n"},
		{name: "EqualsInValue", source: "[foo]\nexpr = a=b\n"},
		{name: "NameCharacters", source: "[.a:b-c]\n$x.y-z~w:v = 1\n"},
		{name: "Unicode", source: "[Ünïcödé]\nключ = значение\n"},
		{name: "BlankLines", source: "\n\n[foo]\n\n  \nbar=baz\n\n"},
		{name: "EmptyComment", source: ";\n[foo]\n  ;  \nbar=baz\n"},
		{
			name:   "Comments",
			source: "; header\n\n[foo]\n  ;   about bar  \nbar=baz\n; trailing\n",
		},
		{
			name:    "HashComments",
			source:  "# header\n[foo]\n; semicolon\n  #hash\nbar=baz\n",
			options: &ParseOptions{Config: &Config{HashComments: HashCommentConfig{Allow: true}}},
		},
		{name: "CRLF", source: "[foo]\r\nbar=baz\r\n\r\n; end\r\n"},
		{name: "NoFinalNewline", source: "[foo]\nbar=baz"},
		{name: "NoFinalNewlineBlank", source: "[foo]\nbar=baz\n  "},
		{name: "ByteOrderMark", source: "\ufeff[foo]\nbar=baz\n"},
		{
			name:   "Multiline",
			source: "[foo]\nbar = <<EOT\nline 1\n  line 2\n\nEOT\nbaz=quux\n",
		},
		{name: "MultilineCustomMarker", source: "[foo]\nbar=<<END_OF_TEXT\nEOT\nEND_OF_TEXT\n"},
		{name: "MultilineIndentedClose", source: "[foo]\nbar=<<EOT  \nx\n   EOT  \n"},
		{name: "MultilineEmpty", source: "[foo]\nbar=<<EOT\nEOT\n"},
		{name: "MultilineCRLF", source: "[foo]\r\nbar=<<EOT\r\na\r\nb\r\nEOT\r\n"},
		{name: "MultilineSingleEmptyLine", source: "[s]\nk=<<EOT\n\nEOT\n"},
		{name: "MultilineSingleSpaceLine", source: "[s]\nk=<<EOT\n  \nEOT\n"},
		{name: "FinalCarriageReturn", source: "[foo]\nbar=v\r"},
		{name: "FinalCarriageReturnCRLF", source: "[foo]\r\nbar=v\r"},
		{name: "OnlyCarriageReturn", source: "\r"},
		{
			name:   "MultilineKeepsSyntax",
			source: "[foo]\nbar=<<EOT\n[not a section]\nnot = a property\n; nor a comment\nEOT\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(test.source), test.options)
			if err != nil {
				t.Fatal("Parse:", err)
			}
			got, err := f.MarshalText()
			if err != nil {
				t.Fatal("MarshalText:", err)
			}
			if diff := cmp.Diff(test.source, string(got)); diff != "" {
				t.Errorf("MarshalText (-want +got):\n%s", diff)
			}
			if got := f.String(); got != test.source {
				t.Errorf("String() = %q; want %q", got, test.source)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		options *ParseOptions
		want    map[string][][2]string
		order   []string
	}{
		{
			name:   "Empty",
			source: "",
		},
		{
			name:   "GameState",
			source: "[Game State]\n; comment\nPlayer1=Ryan\nPlayer2=Emma\n",
			want: map[string][][2]string{
				"Game State": {{"Player1", "Ryan"}, {"Player2", "Emma"}},
			},
			order: []string{"Game State"},
		},
		{
			name:   "SpaceAroundTokens",
			source: "  [  foo  ]\n  bar  =  baz  \n",
			want: map[string][][2]string{
				"foo": {{"bar", "baz"}},
			},
			order: []string{"foo"},
		},
		{
			name:   "RepeatedProperty",
			source: "[foo]\nbar=1\nbar=2\n",
			want: map[string][][2]string{
				"foo": {{"bar", "1"}, {"bar", "2"}},
			},
			order: []string{"foo"},
		},
		{
			name:   "SectionOrder",
			source: "[b]\n[a]\nx=y\n[c]\n",
			want: map[string][][2]string{
				"a": {{"x", "y"}},
				"b": nil,
				"c": nil,
			},
			order: []string{"b", "a", "c"},
		},
		{
			name:   "Multiline",
			source: "[foo]\nbar = <<EOT\nline 1\n  line 2\nEOT\n",
			want: map[string][][2]string{
				"foo": {{"bar", "line 1\n  line 2"}},
			},
			order: []string{"foo"},
		},
		{
			name:    "CaseSensitive",
			source:  "[foo]\n[FOO]\n",
			options: &ParseOptions{CaseSensitive: true},
			want: map[string][][2]string{
				"foo": nil,
				"FOO": nil,
			},
			order: []string{"foo", "FOO"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := ParseString(test.source, test.options)
			if err != nil {
				t.Fatal("ParseString:", err)
			}
			got := make(map[string][][2]string)
			for _, s := range f.Sections() {
				var props [][2]string
				for _, p := range s.Properties {
					props = append(props, [2]string{p.Name(), p.Value.String()})
				}
				got[s.Name()] = props
			}
			if diff := cmp.Diff(test.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("sections (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.order, f.SectionNames(), cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("f.SectionNames() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		options  *ParseOptions
		wantErr  error
		wantLine int
	}{
		{
			name:     "PropertyWithoutSection",
			source:   "foo=bar\n",
			wantErr:  ErrFormat,
			wantLine: 1,
		},
		{
			name:     "CommentThenPropertyWithoutSection",
			source:   "; comment\n\nfoo=bar\n[foo]\n",
			wantErr:  ErrFormat,
			wantLine: 3,
		},
		{
			name:     "UnrecognizedLine",
			source:   "[foo]\nbar=baz\nnot a property\n",
			wantErr:  ErrFormat,
			wantLine: 3,
		},
		{
			name:     "MissingSectionName",
			source:   "[]\n",
			wantErr:  ErrFormat,
			wantLine: 1,
		},
		{
			name:     "MissingSectionBracket",
			source:   "[foo\n",
			wantErr:  ErrFormat,
			wantLine: 1,
		},
		{
			name:     "TextAfterSection",
			source:   "[foo] bar\n",
			wantErr:  ErrFormat,
			wantLine: 1,
		},
		{
			name:     "HashCommentNotAllowed",
			source:   "[foo]\n# comment\n",
			wantErr:  ErrFormat,
			wantLine: 2,
		},
		{
			name:     "DuplicateSection",
			source:   "[foo]\nbar=baz\n[FOO]\n",
			wantErr:  ErrDuplicateKey,
			wantLine: 3,
		},
		{
			name:     "DuplicateSectionCaseSensitive",
			source:   "[foo]\n[bar]\n[foo]\n",
			options:  &ParseOptions{CaseSensitive: true},
			wantErr:  ErrDuplicateKey,
			wantLine: 3,
		},
		{
			name:     "UnterminatedMultiline",
			source:   "[foo]\nbar=<<EOT\nline 1\neot\n",
			wantErr:  ErrFormat,
			wantLine: 2,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := Parse(strings.NewReader(test.source), test.options)
			if err == nil {
				t.Fatalf("Parse(...) = %q, <nil>; want error", f)
			}
			if !errors.Is(err, test.wantErr) {
				t.Errorf("Parse(...) error = %v; want %v", err, test.wantErr)
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("Parse(...) error = %v; want %v", err, ErrFormat)
			}
			var serr *SyntaxError
			if !errors.As(err, &serr) {
				t.Fatalf("Parse(...) error = %v; want *SyntaxError", err)
			}
			if serr.Line != test.wantLine {
				t.Errorf("error line = %d; want %d", serr.Line, test.wantLine)
			}
			if f != nil {
				t.Errorf("Parse(...) returned partial file %q", f)
			}
		})
	}
}

func TestParseInvalidArguments(t *testing.T) {
	if _, err := Parse(nil, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Parse(nil, nil) error = %v; want %v", err, ErrInvalidArgument)
	}

	path := filepath.Join(t.TempDir(), "missing.ini")
	_, err := ParseFile(path, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("ParseFile(%q, nil) error = %v; want %v", path, err, ErrNotFound)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ParseFile(%q, nil) error = %v; want %v", path, err, fs.ErrNotExist)
	}
}

func TestParseOptions(t *testing.T) {
	const source = "; header\n\n[foo]\n; about bar\n\nbar=baz\n\n; trailing\n"
	tests := []struct {
		name    string
		options *ParseOptions
		want    string
	}{
		{
			name:    "IgnoreBlankLines",
			options: &ParseOptions{IgnoreBlankLines: true},
			want:    "; header\n[foo]\n; about bar\nbar=baz\n; trailing\n",
		},
		{
			name:    "IgnoreComments",
			options: &ParseOptions{IgnoreComments: true},
			want:    "\n[foo]\n\nbar=baz\n\n",
		},
		{
			name:    "IgnoreBoth",
			options: &ParseOptions{IgnoreBlankLines: true, IgnoreComments: true},
			want:    "[foo]\nbar=baz\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := ParseString(source, test.options)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(test.want, f.String()); diff != "" {
				t.Errorf("String() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMinorItemAttachment(t *testing.T) {
	const source = "; file\n\n[foo]\n; about bar\nbar=baz\n\n; end\n"
	f, err := ParseString(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	foo := f.Section("foo")
	wantSectionItems := []MinorItem{
		&Comment{Text: "file", Marker: ';', Padding: CommentPadding{Inside: 1}},
		&BlankLine{},
	}
	if diff := cmp.Diff(wantSectionItems, foo.Items); diff != "" {
		t.Errorf("section items (-want +got):\n%s", diff)
	}
	wantPropertyItems := []MinorItem{
		&Comment{Text: "about bar", Marker: ';', Padding: CommentPadding{Inside: 1}},
	}
	if diff := cmp.Diff(wantPropertyItems, foo.Property("bar").Items); diff != "" {
		t.Errorf("property items (-want +got):\n%s", diff)
	}
	wantTrailing := []MinorItem{
		&BlankLine{},
		&Comment{Text: "end", Marker: ';', Padding: CommentPadding{Inside: 1}},
	}
	if diff := cmp.Diff(wantTrailing, f.TrailingItems); diff != "" {
		t.Errorf("trailing items (-want +got):\n%s", diff)
	}
}

func TestAccess(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		options  *ParseOptions
		section  string
		key      string
		wantGet  string
		wantFind []string
	}{
		{
			name:     "Section",
			source:   "[foo]\nbar=baz\n",
			section:  "foo",
			key:      "bar",
			wantGet:  "baz",
			wantFind: []string{"baz"},
		},
		{
			name:     "DoesNotExist",
			source:   "[foo]\nbar=baz\n",
			section:  "foo",
			key:      "xyzzy",
			wantGet:  "",
			wantFind: []string{},
		},
		{
			name:     "SectionDoesNotExist",
			source:   "[foo]\nbar=baz\n",
			section:  "xyzzy",
			key:      "bar",
			wantGet:  "",
			wantFind: []string{},
		},
		{
			name:     "FirstMatch",
			source:   "[foo]\nbar=1\nbar=2\n",
			section:  "foo",
			key:      "bar",
			wantGet:  "1",
			wantFind: []string{"1", "2"},
		},
		{
			name:     "CaseInsensitive",
			source:   "[Foo]\nBar=baz\n",
			section:  "FOO",
			key:      "bAR",
			wantGet:  "baz",
			wantFind: []string{"baz"},
		},
		{
			name:     "CaseSensitive",
			source:   "[Foo]\nBar=baz\n",
			options:  &ParseOptions{CaseSensitive: true},
			section:  "Foo",
			key:      "bar",
			wantGet:  "",
			wantFind: []string{},
		},
		{
			name:     "SurroundingSpace",
			source:   "[foo]\nbar=baz\n",
			section:  " foo ",
			key:      " bar ",
			wantGet:  "baz",
			wantFind: []string{"baz"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := ParseString(test.source, test.options)
			if err != nil {
				t.Fatal(err)
			}
			if got := f.Get(test.section, test.key); got != test.wantGet {
				t.Errorf("f.Get(%q, %q) = %q; want %q", test.section, test.key, got, test.wantGet)
			}
			if s := f.Section(test.section); s != nil {
				if got := s.Get(test.key); got != test.wantGet {
					t.Errorf("f.Section(%q).Get(%q) = %q; want %q", test.section, test.key, got, test.wantGet)
				}
			}
			got := f.Find(test.section, test.key)
			if diff := cmp.Diff(test.wantFind, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("f.Find(%q, %q) (-want +got):\n%s", test.section, test.key, diff)
			}
		})
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		section string
		key     string
		value   PropertyValue
		want    string
	}{
		{
			name:    "AddSectionToEmpty",
			section: "foo",
			key:     "bar",
			value:   StringValue("baz"),
			want:    "[foo]\nbar = baz \n",
		},
		{
			name:    "Overwrite",
			source:  "[foo]\n  bar=baz\n",
			section: "foo",
			key:     "bar",
			value:   StringValue("xyzzy"),
			want:    "[foo]\n  bar=xyzzy\n",
		},
		{
			name:    "OverwriteFirst",
			source:  "[foo]\nbar=1\nbar=2\n",
			section: "foo",
			key:     "BAR",
			value:   IntValue(3),
			want:    "[foo]\nbar=3\nbar=2\n",
		},
		{
			name:    "AddToExistingSection",
			source:  "[foo]\nbar=baz\n[other]\n",
			section: "foo",
			key:     "enabled",
			value:   BoolValue(true),
			want:    "[foo]\nbar=baz\nenabled = True \n[other]\n",
		},
		{
			name:    "AddNewSection",
			source:  "[foo]\nbar=baz\n",
			section: "python",
			key:     "spam",
			value:   StringValue("eggs"),
			want:    "[foo]\nbar=baz\n[python]\nspam = eggs \n",
		},
		{
			name:    "Multiline",
			source:  "[foo]\nbar=baz\n",
			section: "foo",
			key:     "bar",
			value:   StringValue("line 1\nline 2"),
			want:    "[foo]\nbar=<<EOT\nline 1\nline 2\nEOT\n",
		},
		{
			name:    "MultilineMarkerCollision",
			source:  "[foo]\nbar=baz\n",
			section: "foo",
			key:     "bar",
			value:   StringValue("EOT\nEOT1\nx"),
			want:    "[foo]\nbar=<<EOT2\nEOT\nEOT1\nx\nEOT2\n",
		},
		{
			name:    "ReplaceMultilineValueWithMarkerLine",
			source:  "[s]\nk=<<EOT\nx\nEOT\n",
			section: "s",
			key:     "k",
			value:   StringValue("a\nEOT\nb"),
			want:    "[s]\nk=<<EOT1\na\nEOT\nb\nEOT1\n",
		},
		{
			name:    "ReplaceCustomMarkerValue",
			source:  "[s]\nk=<<END\nx\n  END\n",
			section: "s",
			key:     "k",
			value:   StringValue("END"),
			want:    "[s]\nk=<<END1\nEND\nEND1\n",
		},
		{
			name:    "KeepCustomMarker",
			source:  "[s]\nk=<<END\nx\n  END\n",
			section: "s",
			key:     "k",
			value:   StringValue("y\nEOT"),
			want:    "[s]\nk=<<END\ny\nEOT\n  END\n",
		},
		{
			name:    "ReplaceSingleEmptyLine",
			source:  "[s]\nk=<<EOT\n\nEOT\n",
			section: "s",
			key:     "k",
			value:   StringValue(""),
			want:    "[s]\nk=<<EOT\nEOT\n",
		},
		{
			name:    "LooksLikeMultiline",
			source:  "[foo]\nbar=baz\n",
			section: "foo",
			key:     "bar",
			value:   StringValue("<<EOF"),
			want:    "[foo]\nbar=<<EOT\n<<EOF\nEOT\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := new(File)
			if test.source != "" {
				var err error
				f, err = ParseString(test.source, nil)
				if err != nil {
					t.Fatal(err)
				}
			}
			if err := f.Set(test.section, test.key, test.value); err != nil {
				t.Fatal("Set:", err)
			}
			got := f.String()
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("String() (-want +got):\n%s", diff)
			}

			// Values must read back unchanged.
			reparsed, err := ParseString(got, nil)
			if err != nil {
				t.Fatal("ParseString:", err)
			}
			if got, want := reparsed.Get(test.section, test.key), test.value.String(); got != want {
				t.Errorf("after reparse, Get(%q, %q) = %q; want %q", test.section, test.key, got, want)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		section string
		key     string
		want    string
	}{
		{
			name:    "RemovesAllMatches",
			source:  "[foo]\nbar=1\n; about baz\nbaz=2\nbar=3\n",
			section: "foo",
			key:     "bar",
			want:    "[foo]\n; about baz\nbaz=2\n",
		},
		{
			name:    "RemovesEmptySection",
			source:  "[foo]\nbar=1\n[baz]\nquux=2\n",
			section: "foo",
			key:     "bar",
			want:    "[baz]\nquux=2\n",
		},
		{
			name:    "KeepsCommentedSection",
			source:  "; about foo\n[foo]\nbar=1\n",
			section: "foo",
			key:     "bar",
			want:    "; about foo\n[foo]\n",
		},
		{
			name:    "KeepsSectionIfNothingDeleted",
			source:  "[foo]\n",
			section: "foo",
			key:     "bar",
			want:    "[foo]\n",
		},
		{
			name:    "MissingSection",
			source:  "[foo]\nbar=1\n",
			section: "xyzzy",
			key:     "bar",
			want:    "[foo]\nbar=1\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := ParseString(test.source, nil)
			if err != nil {
				t.Fatal(err)
			}
			f.Delete(test.section, test.key)
			if diff := cmp.Diff(test.want, f.String()); diff != "" {
				t.Errorf("String() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddSection(t *testing.T) {
	f, err := ParseString("[a]\n[c]\n", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSection("b")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Add(b, f.Section("c")); err != nil {
		t.Fatal("Add:", err)
	}
	first, err := NewSection(" first ")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Insert(0, first); err != nil {
		t.Fatal("Insert:", err)
	}
	last, err := NewSection("last")
	if err != nil {
		t.Fatal(err)
	}
	if err := f.Add(last, nil); err != nil {
		t.Fatal("Add:", err)
	}
	want := []string{"first", "a", "b", "c", "last"}
	if diff := cmp.Diff(want, f.SectionNames()); diff != "" {
		t.Errorf("SectionNames() (-want +got):\n%s", diff)
	}
	if got := f.SectionAt(2); got != b {
		t.Errorf("SectionAt(2) = %v; want %v", got, b)
	}
	if got, want := f.String(), "[first]\n[a]\n[b]\n[c]\n[last]\n"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}

	t.Run("Duplicate", func(t *testing.T) {
		dup, err := NewSection("A")
		if err != nil {
			t.Fatal(err)
		}
		if err := f.Add(dup, nil); !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("Add(%q, nil) = %v; want %v", dup.Name(), err, ErrDuplicateKey)
		}
		if err := f.Insert(0, dup); !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("Insert(0, %q) = %v; want %v", dup.Name(), err, ErrDuplicateKey)
		}
		if _, err := f.AddSection("LAST"); !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("AddSection(%q) = _, %v; want %v", "LAST", err, ErrDuplicateKey)
		}
		if err := f.Section("a").SetName("B"); !errors.Is(err, ErrDuplicateKey) {
			t.Errorf("SetName(%q) = %v; want %v", "B", err, ErrDuplicateKey)
		}
		if got := f.Len(); got != 5 {
			t.Errorf("Len() = %d; want 5", got)
		}
	})
	t.Run("BeforeNotFound", func(t *testing.T) {
		s, err := NewSection("orphan")
		if err != nil {
			t.Fatal(err)
		}
		other, err := NewSection("other")
		if err != nil {
			t.Fatal(err)
		}
		if err := f.Add(s, other); !errors.Is(err, ErrNotFound) {
			t.Errorf("Add(...) = %v; want %v", err, ErrNotFound)
		}
	})
	t.Run("InvalidArguments", func(t *testing.T) {
		if err := f.Add(nil, nil); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Add(nil, nil) = %v; want %v", err, ErrInvalidArgument)
		}
		s, err := NewSection("new")
		if err != nil {
			t.Fatal(err)
		}
		if err := f.Insert(f.Len()+1, s); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("Insert(%d, ...) = %v; want %v", f.Len()+1, err, ErrInvalidArgument)
		}
		for _, name := range []string{"", "   ", "a\nb", "a=b", "x]", "[x", "a;b", "#x", "a$"} {
			if _, err := NewSection(name); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewSection(%q) = _, %v; want %v", name, err, ErrInvalidArgument)
			}
			if _, err := NewProperty(name, StringValue("x")); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("NewProperty(%q, ...) = _, %v; want %v", name, err, ErrInvalidArgument)
			}
			if err := s.SetName(name); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("SetName(%q) = %v; want %v", name, err, ErrInvalidArgument)
			}
		}
		if got := s.Name(); got != "new" {
			t.Errorf("Name() = %q after failed renames; want \"new\"", got)
		}
	})
	t.Run("Remove", func(t *testing.T) {
		if !f.Remove("B") {
			t.Error("Remove(\"B\") = false; want true")
		}
		if f.Remove("B") {
			t.Error("second Remove(\"B\") = true; want false")
		}
		// A removed section can be renamed freely and added back.
		if err := b.SetName("a"); err != nil {
			t.Errorf("SetName on removed section: %v", err)
		}
	})
}

func TestSectionProperties(t *testing.T) {
	s, err := NewSection("foo")
	if err != nil {
		t.Fatal(err)
	}
	a, err := NewProperty("a", StringValue("1"))
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewProperty("c", StringValue("3"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewProperty("b", StringValue("2"))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(a, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(c, nil); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(b, c); err != nil {
		t.Fatal(err)
	}
	b.AddComment("second")
	s.AddBlankLine()
	s.AddComment("section")

	const want = "\n; section \n[foo]\na = 1 \n; second \nb = 2 \nc = 3 \n"
	f := new(File)
	if err := f.Add(s, nil); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, f.String()); diff != "" {
		t.Errorf("String() (-want +got):\n%s", diff)
	}
	if got := s.Len(); got != 3 {
		t.Errorf("Len() = %d; want 3", got)
	}
	if got := s.Property("B"); got != b {
		t.Errorf("Property(\"B\") = %v; want %v", got, b)
	}
	if got := s.Property("d"); got != nil {
		t.Errorf("Property(\"d\") = %v; want nil", got)
	}
	other, err := NewProperty("x", StringValue(""))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Add(other, other); !errors.Is(err, ErrNotFound) {
		t.Errorf("Add(x, x) = %v; want %v", err, ErrNotFound)
	}
}

func TestUnmarshalText(t *testing.T) {
	f := NewFile(&ParseOptions{CaseSensitive: true})
	if err := f.UnmarshalText([]byte("[a]\nx=1\n[A]\ny=2\n")); err != nil {
		t.Fatal(err)
	}
	if got := f.Get("A", "y"); got != "2" {
		t.Errorf("Get(\"A\", \"y\") = %q; want \"2\"", got)
	}
	if err := f.Section("a").SetName("A"); !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("SetName(\"A\") = %v; want %v", err, ErrDuplicateKey)
	}
	if err := f.UnmarshalText([]byte("x=1\n")); !errors.Is(err, ErrFormat) {
		t.Errorf("UnmarshalText(%q) = %v; want %v", "x=1\n", err, ErrFormat)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		options *FormatOptions
		want    string
	}{
		{
			name:   "ResetPadding",
			source: "  [  Game State ]  \n  ;comment\nPlayer1=Ryan\n   Player2   =   Emma",
			want:   "[Game State]\n; comment \nPlayer1 = Ryan \nPlayer2 = Emma \n",
		},
		{
			name:   "StripTrailingBlankLines",
			source: "[foo]\nbar=baz\n\n\n; end\n\n  \n",
			want:   "[foo]\nbar = baz \n\n\n; end \n",
		},
		{
			name:    "BlankLineBetweenSections",
			source:  "[a]\nx=1\n[b]\ny=2\n\n[c]\n; about c\n[d]\n",
			options: &FormatOptions{EnsureBlankLineBetweenSections: true},
			want:    "[a]\nx = 1 \n\n[b]\ny = 2 \n\n[c]\n\n; about c \n[d]\n",
		},
		{
			name:    "BlankLineBetweenProperties",
			source:  "[a]\nx=1\n; about y\ny=2\n\nz=3\n",
			options: &FormatOptions{EnsureBlankLineBetweenProperties: true},
			want:    "[a]\nx = 1 \n\n; about y \ny = 2 \n\nz = 3 \n",
		},
		{
			name:    "RemoveSuccessiveBlankLines",
			source:  "\n\n\n[a]\n\n\nx=1\n\n; end\n\n\n; really\n",
			options: &FormatOptions{RemoveSuccessiveBlankLines: true},
			want:    "\n[a]\n\nx = 1 \n\n; end \n\n; really \n",
		},
		{
			name:   "Multiline",
			source: "[a]\nx=<<EOT\n  keep  \n   EOT  \n",
			want:   "[a]\nx = <<EOT \n  keep  \nEOT\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f, err := ParseString(test.source, nil)
			if err != nil {
				t.Fatal(err)
			}
			f.Format(test.options)
			got := f.String()
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("after Format (-want +got):\n%s", diff)
			}

			f.Format(test.options)
			if diff := cmp.Diff(got, f.String()); diff != "" {
				t.Errorf("second Format changed file (-first +second):\n%s", diff)
			}
		})
	}
}

func TestFormatRemovesSuccessiveBlankLines(t *testing.T) {
	f := new(File)
	s, err := f.AddSection("a")
	if err != nil {
		t.Fatal(err)
	}
	s.AddBlankLine()
	s.AddBlankLine()
	s.AddComment("comment")
	f.Format(&FormatOptions{RemoveSuccessiveBlankLines: true})
	want := []MinorItem{
		&BlankLine{},
		&Comment{Text: "comment", Marker: ';', Padding: CommentPadding{Inside: 1, Right: 1}},
	}
	if diff := cmp.Diff(want, s.Items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
}

func TestFormatConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Padding.Property = PropertyPadding{}
	cfg.Padding.Comment = CommentPadding{Inside: 2}
	cfg.Padding.Section = SectionPadding{InsideLeft: 1, InsideRight: 1}
	f, err := ParseString("[a]\n;x\nk = v \n", &ParseOptions{Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	f.Format(nil)
	if got, want := f.String(), "[ a ]\n;  x\nk=v\n"; got != want {
		t.Errorf("String() = %q; want %q", got, want)
	}
	if got := f.Config(); got != cfg {
		t.Errorf("Config() = %p; want %p", got, cfg)
	}
}

func TestEncoding(t *testing.T) {
	const text = "[größe]\r\nwert = äöü\r\n"
	utf16 := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	data, err := utf16.NewEncoder().Bytes([]byte(text))
	if err != nil {
		t.Fatal(err)
	}

	t.Run("DetectUTF16", func(t *testing.T) {
		f, err := Parse(bytes.NewReader(data), &ParseOptions{DetectEncoding: true})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := f.Get("GRÖßE", "wert"), "äöü"; got != want {
			t.Errorf("Get(\"GRÖßE\", \"wert\") = %q; want %q", got, want)
		}
		var buf bytes.Buffer
		if err := f.Encode(&buf, utf16); err != nil {
			t.Fatal("Encode:", err)
		}
		if !bytes.Equal(buf.Bytes(), data) {
			t.Errorf("Encode(...) = %q; want %q", buf.Bytes(), data)
		}
	})
	t.Run("DetectUTF8", func(t *testing.T) {
		in := "\ufeff" + text
		f, err := Parse(strings.NewReader(in), &ParseOptions{
			Encoding:       charmap.Windows1252,
			DetectEncoding: true,
		})
		if err != nil {
			t.Fatal(err)
		}
		if got := f.String(); got != in {
			t.Errorf("String() = %q; want %q", got, in)
		}
	})
	t.Run("Windows1252", func(t *testing.T) {
		f, err := Parse(strings.NewReader("[foo]\nbar=caf\xe9\n"), &ParseOptions{
			Encoding: charmap.Windows1252,
		})
		if err != nil {
			t.Fatal(err)
		}
		if got, want := f.Get("foo", "bar"), "café"; got != want {
			t.Errorf("Get(\"foo\", \"bar\") = %q; want %q", got, want)
		}
		var buf bytes.Buffer
		if err := f.Encode(&buf, charmap.Windows1252); err != nil {
			t.Fatal("Encode:", err)
		}
		if got, want := buf.String(), "[foo]\nbar=caf\xe9\n"; got != want {
			t.Errorf("Encode(...) = %q; want %q", got, want)
		}
	})
}

func TestWriteFile(t *testing.T) {
	const source = "\ufeff; settings\r\n[foo]\r\nbar = <<EOT\r\na\r\nb\r\nEOT\r\n"
	f, err := ParseString(source, nil)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "settings.ini")
	if err := f.WriteFile(path, nil); err != nil {
		t.Fatal("WriteFile:", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(source, string(got)); diff != "" {
		t.Errorf("file content (-want +got):\n%s", diff)
	}
	reparsed, err := ParseFile(path, nil)
	if err != nil {
		t.Fatal("ParseFile:", err)
	}
	if got, want := reparsed.Get("foo", "bar"), "a\nb"; got != want {
		t.Errorf("Get(\"foo\", \"bar\") = %q; want %q", got, want)
	}
}
