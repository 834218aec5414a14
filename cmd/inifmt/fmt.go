// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
	"zombiezen.com/go/log"
)

type fmtOptions struct {
	write           bool
	diff            bool
	list            bool
	sectionSpacing  bool
	propertySpacing bool
	squeeze         bool
}

func newFmtCommand(g *globalOptions) *cobra.Command {
	opts := new(fmtOptions)
	c := &cobra.Command{
		Use:   "fmt [options] FILE [...]",
		Short: "Reformat INI files",
		Long: `fmt resets the padding of every line to the defaults and removes trailing
blank lines. By default the result is printed to standard output. A file
named "-" is read from standard input.`,
		Args:                  cobra.MinimumNArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, g, opts, args)
		},
	}
	c.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result to the file instead of standard output")
	c.Flags().BoolVarP(&opts.diff, "diff", "d", false, "print a diff instead of the formatted text")
	c.Flags().BoolVarP(&opts.list, "list", "l", false, "print the names of files whose formatting differs")
	c.Flags().BoolVar(&opts.sectionSpacing, "section-spacing", false, "ensure a blank line before each section")
	c.Flags().BoolVar(&opts.propertySpacing, "property-spacing", false, "ensure a blank line before each property")
	c.Flags().BoolVar(&opts.squeeze, "squeeze", false, "collapse runs of blank lines")
	return c
}

func runFmt(cmd *cobra.Command, g *globalOptions, opts *fmtOptions, args []string) error {
	ctx := cmd.Context()
	enc, err := g.textEncoding()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printer := newDiffPrinter(useColor(out))
	var errs []error
	for _, path := range args {
		if path == "-" && opts.write {
			errs = append(errs, errors.New("cannot use --write with standard input"))
			continue
		}
		f, err := g.readInput(cmd.InOrStdin(), path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		orig := f.String()
		f.Format(&ini.FormatOptions{
			EnsureBlankLineBetweenSections:   opts.sectionSpacing,
			EnsureBlankLineBetweenProperties: opts.propertySpacing,
			RemoveSuccessiveBlankLines:       opts.squeeze,
		})
		formatted := f.String()
		changed := formatted != orig
		log.Debugf(ctx, "Formatted %s (changed=%t)", path, changed)

		if opts.list && changed {
			fmt.Fprintln(out, displayName(path))
		}
		if opts.diff {
			if err := printer.print(out, displayName(path), orig, formatted); err != nil {
				return err
			}
		}
		if opts.write {
			if changed {
				if err := writeFile(ctx, path, f, enc); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}
		if !opts.list && !opts.diff {
			if _, err := io.WriteString(out, formatted); err != nil {
				return err
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("fmt: %w", errors.Join(errs...))
	}
	return nil
}

// readInput parses path, or standard input if path is "-".
func (g *globalOptions) readInput(stdin io.Reader, path string) (*ini.File, error) {
	if path != "-" {
		return g.readFile(path)
	}
	opts, err := g.parseOptions()
	if err != nil {
		return nil, err
	}
	f, err := ini.Parse(stdin, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", displayName(path), err)
	}
	return f, nil
}

// displayName is how path is referred to in output.
func displayName(path string) string {
	if path == "-" {
		return "<stdin>"
	}
	return path
}
