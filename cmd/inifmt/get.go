// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
)

func newGetCommand(g *globalOptions) *cobra.Command {
	var all bool
	c := &cobra.Command{
		Use:   "get [options] FILE SECTION KEY",
		Short: "Print a property value",
		Long: `get prints the value of the property KEY in SECTION. If the key appears
more than once, the first value is printed unless --all is given.`,
		Args:                  cobra.ExactArgs(3),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := g.readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			section, key := args[1], args[2]
			values := f.Find(section, key)
			if len(values) == 0 {
				return fmt.Errorf("get %s.%s: %w", section, key, ini.ErrNotFound)
			}
			if !all {
				values = values[:1]
			}
			out := cmd.OutOrStdout()
			for _, v := range values {
				fmt.Fprintln(out, v)
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&all, "all", "a", false, "print every value of the key in file order")
	return c
}
