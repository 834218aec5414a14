// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines shown around a change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string
}

// lineDiff returns the line-by-line difference between a and b.
func lineDiff(a, b string) []diffLine {
	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var out []diffLine
	for _, d := range diffs {
		text := d.Text
		for text != "" {
			i := strings.IndexByte(text, '\n')
			if i == -1 {
				out = append(out, diffLine{d.Type, text + "\n\\ No newline at end of file"})
				break
			}
			out = append(out, diffLine{d.Type, text[:i]})
			text = text[i+1:]
		}
	}
	return out
}

// hunk is a range of lineDiff output along with the starting line numbers
// in both inputs.
type hunk struct {
	lines  []diffLine
	startA int
	startB int
	countA int
	countB int
}

// hunks groups changed lines with diffContext lines of surrounding context.
func hunks(lines []diffLine) []hunk {
	var result []hunk
	lineA, lineB := 1, 1
	start := -1
	lastChange := -1
	var startA, startB int
	flush := func(end int) {
		h := hunk{lines: lines[start:end], startA: startA, startB: startB}
		for _, l := range h.lines {
			if l.op != diffmatchpatch.DiffInsert {
				h.countA++
			}
			if l.op != diffmatchpatch.DiffDelete {
				h.countB++
			}
		}
		result = append(result, h)
		start = -1
	}
	for i, l := range lines {
		if l.op != diffmatchpatch.DiffEqual {
			if start == -1 {
				start = i - diffContext
				if start < 0 {
					start = 0
				}
				startA, startB = lineA-(i-start), lineB-(i-start)
			}
			lastChange = i
		} else if start != -1 && i-lastChange > 2*diffContext {
			flush(lastChange + diffContext + 1)
		}
		if l.op != diffmatchpatch.DiffInsert {
			lineA++
		}
		if l.op != diffmatchpatch.DiffDelete {
			lineB++
		}
	}
	if start != -1 {
		end := lastChange + diffContext + 1
		if end > len(lines) {
			end = len(lines)
		}
		flush(end)
	}
	return result
}

// diffPrinter writes unified diffs, optionally colored.
type diffPrinter struct {
	header *color.Color
	meta   *color.Color
	del    *color.Color
	ins    *color.Color
}

func newDiffPrinter(colored bool) *diffPrinter {
	p := &diffPrinter{
		header: color.New(color.Bold),
		meta:   color.New(color.FgCyan),
		del:    color.New(color.FgRed),
		ins:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{p.header, p.meta, p.del, p.ins} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// print writes the unified diff between a and b to w. It writes nothing if
// the texts are equal.
func (p *diffPrinter) print(w io.Writer, name, a, b string) error {
	hs := hunks(lineDiff(a, b))
	if len(hs) == 0 {
		return nil
	}
	if _, err := p.header.Fprintf(w, "--- %s.orig\n+++ %s\n", name, name); err != nil {
		return err
	}
	for _, h := range hs {
		if _, err := p.meta.Fprintf(w, "@@ -%s +%s @@\n", hunkRange(h.startA, h.countA), hunkRange(h.startB, h.countB)); err != nil {
			return err
		}
		for _, l := range h.lines {
			var err error
			switch l.op {
			case diffmatchpatch.DiffDelete:
				_, err = p.del.Fprintln(w, "-"+l.text)
			case diffmatchpatch.DiffInsert:
				_, err = p.ins.Fprintln(w, "+"+l.text)
			default:
				_, err = fmt.Fprintln(w, " "+l.text)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func hunkRange(start, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", start-1)
	case 1:
		return fmt.Sprint(start)
	default:
		return fmt.Sprintf("%d,%d", start, count)
	}
}

// useColor reports whether w is a terminal.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
