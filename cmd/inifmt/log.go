// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"zombiezen.com/go/log"
)

// stderrLogger writes log entries at or above a minimum level as lines
// prefixed with the program name.
type stderrLogger struct {
	mu  sync.Mutex
	w   io.Writer
	min log.Level
}

func newStderrLogger(w io.Writer) *stderrLogger {
	return &stderrLogger{w: w, min: log.Info}
}

func (l *stderrLogger) setVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if verbose {
		l.min = log.Debug
	} else {
		l.min = log.Info
	}
}

func (l *stderrLogger) Log(ctx context.Context, entry log.Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if entry.Level < l.min {
		return
	}
	msg := strings.TrimSuffix(entry.Msg, "\n")
	switch {
	case entry.Level >= log.Error:
		fmt.Fprintf(l.w, "inifmt: error: %s\n", msg)
	case entry.Level >= log.Warn:
		fmt.Fprintf(l.w, "inifmt: warning: %s\n", msg)
	default:
		fmt.Fprintf(l.w, "inifmt: %s\n", msg)
	}
}

func (l *stderrLogger) LogEnabled(entry log.Entry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return entry.Level >= l.min
}
