// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"time"
)

// Config holds the defaults used when parsing, constructing and formatting
// INI items. A nil *Config is treated as DefaultConfig().
type Config struct {
	HashComments HashCommentConfig
	Padding      PaddingConfig
	Types        TypesConfig
}

// HashCommentConfig controls whether '#' starts a comment in addition to ';'.
type HashCommentConfig struct {
	// Allow makes the parser accept '#' comments.
	Allow bool
	// IsDefault makes newly constructed comments use '#' instead of ';'.
	IsDefault bool
}

// PaddingConfig holds the padding given to newly constructed items and
// restored by Reset and File.Format.
type PaddingConfig struct {
	Section   SectionPadding
	Property  PropertyPadding
	Comment   CommentPadding
	BlankLine BlankLinePadding
}

// TypesConfig holds the textual forms used when converting typed values to
// and from property values.
type TypesConfig struct {
	// DateFormat is a time layout as accepted by time.Parse.
	DateFormat  string
	TrueString  string
	FalseString string
}

// DefaultConfig returns a new Config with the package defaults: ';' comments
// only, "name = value " properties, "; text " comments, RFC 3339 dates and
// True/False booleans.
func DefaultConfig() *Config {
	return &Config{
		Padding: PaddingConfig{
			Property: PropertyPadding{InsideLeft: 1, InsideRight: 1, Right: 1},
			Comment:  CommentPadding{Inside: 1, Right: 1},
		},
		Types: defaultTypes(),
	}
}

func defaultTypes() TypesConfig {
	return TypesConfig{
		DateFormat:  time.RFC3339,
		TrueString:  "True",
		FalseString: "False",
	}
}

// defaultConfig is never modified.
var defaultConfig = DefaultConfig()

func (cfg *Config) orDefault() *Config {
	if cfg == nil {
		return defaultConfig
	}
	return cfg
}

func (cfg *Config) commentMarker() byte {
	if cfg.orDefault().HashComments.IsDefault {
		return '#'
	}
	return ';'
}

// NewSection returns a new section with cfg's default padding. It returns an
// error wrapping ErrInvalidArgument if the name is not valid (see IsValidName).
func (cfg *Config) NewSection(name string) (*Section, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, fmt.Errorf("new section: %w", err)
	}
	return &Section{
		major:   major{name: name},
		Padding: cfg.orDefault().Padding.Section,
		cfg:     cfg,
	}, nil
}

// NewProperty returns a new property with cfg's default padding. It returns an
// error wrapping ErrInvalidArgument if the name is not valid (see IsValidName).
func (cfg *Config) NewProperty(name string, value PropertyValue) (*Property, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, fmt.Errorf("new property: %w", err)
	}
	return &Property{
		major:   major{name: name},
		Value:   value,
		Padding: cfg.orDefault().Padding.Property,
	}, nil
}

// NewComment returns a new comment with cfg's default padding and marker.
func (cfg *Config) NewComment(text string) *Comment {
	return &Comment{
		Text:    text,
		Marker:  cfg.commentMarker(),
		Padding: cfg.orDefault().Padding.Comment,
	}
}

// NewBlankLine returns a new blank line with cfg's default padding.
func (cfg *Config) NewBlankLine() *BlankLine {
	return &BlankLine{Padding: cfg.orDefault().Padding.BlankLine}
}
