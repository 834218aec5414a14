// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/yourbase/inikit/ini"
	"github.com/yourbase/inikit/retry"
	"github.com/yourbase/inikit/xcontext"
	"golang.org/x/text/encoding"
	"zombiezen.com/go/log"
)

const (
	// replaceGracePeriod is how long a replace may continue after an interrupt.
	replaceGracePeriod = 2 * time.Second
	// replaceTimeout bounds the retries of a replace.
	replaceTimeout = 5 * time.Second
)

// writeFile replaces the file at path with f in the given encoding. The new
// content is written to a temporary file in the same directory and renamed
// over path, so readers never observe a partially written file. The mode of
// an existing file is kept. A new file is only readable and writable by its
// owner.
func writeFile(ctx context.Context, path string, f *ini.File, enc encoding.Encoding) (err error) {
	var perm fs.FileMode
	exists := false
	if info, err := os.Stat(path); err == nil {
		perm, exists = info.Mode().Perm(), true
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpPath)
		}
	}()
	if err := f.Encode(tmp, enc); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if exists {
		if err := os.Chmod(tmpPath, perm); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	ctx, cancelKeepAlive := xcontext.KeepAlive(ctx, replaceGracePeriod)
	defer cancelKeepAlive()
	ctx, cancelTimeout := context.WithTimeout(ctx, replaceTimeout)
	defer cancelTimeout()
	backoff := &retry.ExponentialBackoff{Initial: 10 * time.Millisecond, Max: 500 * time.Millisecond}
	err = retry.Do(ctx, "replacing "+path, backoff, func() error {
		err := os.Rename(tmpPath, path)
		// Another process holding the file open shows up as a permission
		// error on Windows.
		if err != nil && !errors.Is(err, fs.ErrPermission) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	log.Debugf(ctx, "Wrote %s", path)
	return nil
}
