// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yourbase/inikit/ini"
	"zombiezen.com/go/log"
)

// valueTypes lists the accepted values of set --type.
var valueTypes = []string{"string", "bool", "int", "float", "duration", "time"}

func newSetCommand(g *globalOptions) *cobra.Command {
	var typ string
	c := &cobra.Command{
		Use:   "set [options] FILE SECTION KEY VALUE",
		Short: "Change or add a property",
		Long: `set changes the first property KEY in SECTION to VALUE, adding the section
and the property if needed. If the file does not exist, it is created readable
and writable only by its owner. Every other line of the file is written back
unchanged.

With --type, VALUE is checked and written in the canonical form of the type:
bool values become True or False, times are written in RFC 3339 format.`,
		Args:                  cobra.ExactArgs(4),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, section, key := args[0], args[1], args[2]
			f, err := g.readOrCreate(path)
			if err != nil {
				return err
			}
			v, err := typedValue(f.Config().Types, typ, args[3])
			if err != nil {
				return err
			}
			if err := f.Set(section, key, v); err != nil {
				return err
			}
			enc, err := g.textEncoding()
			if err != nil {
				return err
			}
			return writeFile(cmd.Context(), path, f, enc)
		},
	}
	c.Flags().StringVarP(&typ, "type", "t", "string", fmt.Sprintf("`type` of the value, one of %q", valueTypes))
	return c
}

func newUnsetCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "unset FILE SECTION KEY",
		Short: "Remove a property",
		Long: `unset removes every property KEY in SECTION. The section is removed too
if nothing but blank lines is left in it.`,
		Args:                  cobra.ExactArgs(3),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, section, key := args[0], args[1], args[2]
			f, err := g.readFile(path)
			if err != nil {
				return err
			}
			if s := f.Section(section); s == nil || s.Property(key) == nil {
				log.Warnf(cmd.Context(), "%s: no property %s in section [%s]", path, key, section)
				return nil
			}
			f.Delete(section, key)
			enc, err := g.textEncoding()
			if err != nil {
				return err
			}
			return writeFile(cmd.Context(), path, f, enc)
		},
	}
}

// readOrCreate parses the file at path or returns an empty file if it does
// not exist.
func (g *globalOptions) readOrCreate(path string) (*ini.File, error) {
	f, err := g.readFile(path)
	if errors.Is(err, ini.ErrNotFound) {
		opts, err := g.parseOptions()
		if err != nil {
			return nil, err
		}
		return ini.NewFile(opts), nil
	}
	return f, err
}

// typedValue converts s to a property value of the named type.
func typedValue(types ini.TypesConfig, typ string, s string) (ini.PropertyValue, error) {
	v := ini.StringValue(s)
	switch typ {
	case "string":
		return v, nil
	case "bool":
		b, err := types.ParseBool(v)
		if err != nil {
			return ini.PropertyValue{}, err
		}
		return types.BoolValue(b), nil
	case "int":
		n, err := v.Int64()
		if err != nil {
			return ini.PropertyValue{}, err
		}
		return ini.IntValue(n), nil
	case "float":
		x, err := v.Float64()
		if err != nil {
			return ini.PropertyValue{}, err
		}
		return ini.FloatValue(x), nil
	case "duration":
		d, err := v.Duration()
		if err != nil {
			return ini.PropertyValue{}, err
		}
		return ini.DurationValue(d), nil
	case "time":
		t, err := types.ParseTime(v)
		if err != nil {
			return ini.PropertyValue{}, err
		}
		return types.TimeValue(t), nil
	default:
		return ini.PropertyValue{}, fmt.Errorf("--type=%s: %w: must be one of %q", typ, ini.ErrInvalidArgument, valueTypes)
	}
}
