// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package retry provides a function for retrying an operation.
package retry

import (
	"context"
	"errors"
	"time"

	"zombiezen.com/go/log"
)

// A BackoffStrategy can be called repeatedly to obtain (presumably) increasing
// durations to wait between retries.
type BackoffStrategy interface {
	Duration() time.Duration
}

// ExponentialBackoff is a BackoffStrategy that starts at Initial and doubles
// the wait after every attempt, up to Max. The zero value never waits.
type ExponentialBackoff struct {
	Initial time.Duration
	Max     time.Duration

	next time.Duration
}

// Duration returns the next wait.
func (b *ExponentialBackoff) Duration() time.Duration {
	if b.next == 0 {
		b.next = b.Initial
	}
	d := b.next
	b.next *= 2
	if b.Max > 0 && b.next > b.Max {
		b.next = b.Max
	}
	return d
}

// Permanent wraps an error so that Do stops retrying and returns err.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return permanentError{err}
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

// Do calls a function repeatedly with the given backoff until it returns a
// nil error. Do returns an error only if the passed-in function does not return
// nil before the Context is Done, or if it returns an error created by
// Permanent. The function is guaranteed to be called at least once.
//
// The operation should be a verb phrase like "replacing config.ini" for
// logging.
func Do(ctx context.Context, operation string, strategy BackoffStrategy, f func() error) error {
	var t *time.Timer
	for {
		err := f()
		if err == nil {
			return nil
		}
		var perm permanentError
		if errors.As(err, &perm) {
			return perm.err
		}
		d := strategy.Duration()
		if d > 0 {
			log.Debugf(ctx, "Error %s (will retry in %v): %v", operation, d, err)
			if t == nil {
				t = time.NewTimer(d)
				defer t.Stop()
			} else {
				t.Reset(d)
			}
			select {
			case <-t.C:
			case <-ctx.Done():
				return err
			}
		} else {
			log.Debugf(ctx, "Error %s (will retry): %v", operation, err)
			select {
			case <-ctx.Done():
				return err
			default:
			}
		}
	}
}
