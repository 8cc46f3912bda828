// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"time"
)

// timeoutBootstrapSource bounds every Fetch of the wrapped source. The caller
// is released when the deadline passes or its own context is cancelled, even
// if the wrapped source ignores the context.
type timeoutBootstrapSource struct {
	source  BootstrapSource
	timeout time.Duration
}

// WithFetchTimeout wraps source so that a fetch lasting longer than timeout
// fails with [ErrFetchTimeout].
func WithFetchTimeout(source BootstrapSource, timeout time.Duration) BootstrapSource {
	return &timeoutBootstrapSource{source: source, timeout: timeout}
}

type fetchResult struct {
	data []byte
	err  error
}

func (s *timeoutBootstrapSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan fetchResult, 1)
	go func() {
		data, err := s.source.Fetch(ctx, name)
		done <- fetchResult{data: data, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrFetchTimeout
		}
		return res.data, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrFetchTimeout
		}
		return nil, ctx.Err()
	}
}
