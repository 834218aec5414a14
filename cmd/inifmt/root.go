// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/envvar"
	"github.com/yourbase/inikit/ini"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"zombiezen.com/go/log"
)

// Environment variables that provide the defaults of the global flags.
const (
	hashCommentsEnv  = "INIFMT_HASH_COMMENTS"
	caseSensitiveEnv = "INIFMT_CASE_SENSITIVE"
	encodingEnv      = "INIFMT_ENCODING"
)

// globalOptions holds the flags shared by every subcommand.
type globalOptions struct {
	hashComments   bool
	caseSensitive  bool
	encoding       string
	detectEncoding bool
	verbose        bool

	// envErrors holds problems with the environment variables, reported once
	// the command runs.
	envErrors []error
}

// newRootCommand returns the inifmt command tree. If logger is not nil, the
// --verbose flag adjusts its level.
func newRootCommand(logger *stderrLogger) *cobra.Command {
	g := new(globalOptions)
	root := &cobra.Command{
		Use:   "inifmt",
		Short: "Format and edit INI files without losing comments or layout",
		Long: `inifmt reads INI files and writes them back exactly as they were,
except for the parts you change. It can reformat files, check that a file
survives a read-write cycle unchanged, and read or update single values.

The defaults of the global flags can be set with the ` + hashCommentsEnv + `,
` + caseSensitiveEnv + ` and ` + encodingEnv + ` environment variables.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.setVerbose(g.verbose)
			}
			for _, err := range g.envErrors {
				log.Warnf(cmd.Context(), "Ignoring environment: %v", err)
			}
		},
	}

	hashDefault, err := envvar.Bool(hashCommentsEnv, false)
	if err != nil {
		g.envErrors = append(g.envErrors, err)
	}
	caseDefault, err := envvar.Bool(caseSensitiveEnv, false)
	if err != nil {
		g.envErrors = append(g.envErrors, err)
	}
	flags := root.PersistentFlags()
	flags.BoolVar(&g.hashComments, "hash-comments", hashDefault, "accept '#' in addition to ';' as a comment marker")
	flags.BoolVar(&g.caseSensitive, "case-sensitive", caseDefault, "compare section and property names case-sensitively")
	flags.StringVar(&g.encoding, "encoding", envvar.Get(encodingEnv, ""), "character `encoding` of the files, like utf-16le or windows-1252 (default utf-8)")
	flags.BoolVar(&g.detectEncoding, "detect-encoding", false, "honor a UTF-8 or UTF-16 byte order mark over --encoding")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "print progress messages")

	root.AddCommand(
		newFmtCommand(g),
		newCheckCommand(g),
		newGetCommand(g),
		newSetCommand(g),
		newUnsetCommand(g),
	)
	return root
}

// parseOptions returns the ini.ParseOptions selected by the global flags.
func (g *globalOptions) parseOptions() (*ini.ParseOptions, error) {
	cfg := ini.DefaultConfig()
	cfg.HashComments.Allow = g.hashComments
	enc, err := g.textEncoding()
	if err != nil {
		return nil, err
	}
	return &ini.ParseOptions{
		Encoding:       enc,
		DetectEncoding: g.detectEncoding,
		CaseSensitive:  g.caseSensitive,
		Config:         cfg,
	}, nil
}

// textEncoding returns the encoding named by --encoding or nil for UTF-8.
func (g *globalOptions) textEncoding() (encoding.Encoding, error) {
	if g.encoding == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(g.encoding)
	if err != nil {
		return nil, fmt.Errorf("--encoding=%s: %w", g.encoding, err)
	}
	return enc, nil
}

// readFile parses the INI file at path with the global options.
func (g *globalOptions) readFile(path string) (*ini.File, error) {
	opts, err := g.parseOptions()
	if err != nil {
		return nil, err
	}
	return ini.ParseFile(path, opts)
}
