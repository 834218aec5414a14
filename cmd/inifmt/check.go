// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
	"zombiezen.com/go/log"
)

func newCheckCommand(g *globalOptions) *cobra.Command {
	var showDiff bool
	c := &cobra.Command{
		Use:   "check [options] FILE [...]",
		Short: "Verify that INI files are written back unchanged",
		Long: `check parses each file and serializes it again in the same encoding. It
fails if a file cannot be parsed or if the output differs from the input.`,
		Args:                  cobra.MinimumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, g, showDiff, args)
		},
	}
	c.Flags().BoolVarP(&showDiff, "diff", "d", false, "print the difference for files that change")
	return c
}

func runCheck(cmd *cobra.Command, g *globalOptions, showDiff bool, args []string) error {
	ctx := cmd.Context()
	opts, err := g.parseOptions()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printer := newDiffPrinter(useColor(out))
	var errs []error
	for _, path := range args {
		name := displayName(path)
		data, err := readAll(cmd.InOrStdin(), path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f, err := ini.Parse(bytes.NewReader(data), opts)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		buf := new(bytes.Buffer)
		if err := f.Encode(buf, opts.Encoding); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		if bytes.Equal(buf.Bytes(), data) {
			log.Debugf(ctx, "%s: ok", name)
			continue
		}
		errs = append(errs, fmt.Errorf("%s: does not round-trip", name))
		if showDiff {
			if err := printer.print(out, name, string(data), buf.String()); err != nil {
				return err
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("check: %w", errors.Join(errs...))
	}
	return nil
}

// readAll returns the content of path, or of stdin if path is "-".
func readAll(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read <stdin>: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return data, nil
}
