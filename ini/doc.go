// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a parser and serializer for the INI file format.
See https://en.wikipedia.org/wiki/INI_file.

This package is specifically designed for read-modify-write scenarios: every
comment, blank line and run of spaces is kept in the parsed document, so a
File that has not been modified serializes back to the exact text it was
parsed from. Edits only change the lines they touch. File.Format rewrites the
whitespace of a whole document to the defaults of a Config.

# Syntax

An INI file is Unicode text, UTF-8 by default. Every line is one of the
following, tried in this order:

	name = value
	[name]
	; comment
	(empty or all-space line)

Names start with a letter, digit, underscore, dot ('.'), dollar sign ('$') or
colon (':') and continue with letters, digits, spaces, and the characters
"_~-.:". Spaces around names and values are not part of them. A value is
the rest of the line, so semicolons in a value do not start a comment.
Comments start with a semicolon (';'). If Config.HashComments.Allow is set,
a hash ('#') also starts a comment.

Every property belongs to the section before it. A property before the first
section is a syntax error, as is a line that matches none of the forms above.

Section names are unique within a file. Names are compared case-insensitively
unless ParseOptions.CaseSensitive is set. Property names may repeat; lookups
return the first property with the name.

# Multi-line values

A property whose value is "<<" followed by a token of letters, digits or
underscores starts a multi-line value. The following lines are the value,
verbatim, up to a line that only contains the token:

	[message]
	body = <<EOT
	Hello,
	  World!
	EOT

The token is case-sensitive. Values containing line breaks are written in
this form, with the token in Property.EndMarker or DefaultEndMarker.

# Comments and blank lines

Comments and blank lines are attached to the section or property that
follows them, in their Items field. Those after the last property are kept in
File.TrailingItems.
*/
package ini
