// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// inifmt formats, checks and edits INI files while keeping their comments
// and layout.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"zombiezen.com/go/log"
)

func main() {
	logger := newStderrLogger(os.Stderr)
	log.SetDefault(logger)
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	root := newRootCommand(logger)
	err := root.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "inifmt:", err)
		os.Exit(1)
	}
}
