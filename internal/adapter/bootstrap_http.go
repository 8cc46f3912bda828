// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"time"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/utils"
)

// httpBootstrapSource fetches <baseURL>/<name>.json from a remote host. The
// session token found in the context is forwarded as a bearer credential, so
// a protected seed host sees the same session as the admin API.
type httpBootstrapSource struct {
	client *utils.HTTPClient
}

// NewHTTPBootstrapSource builds a remote seed source rooted at baseURL.
func NewHTTPBootstrapSource(baseURL string, timeout time.Duration) (BootstrapSource, error) {
	normalized, err := normalizeBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid bootstrap url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.SetBaseURL(normalized).SetTimeout(timeout)

	return &httpBootstrapSource{client: client}, nil
}

func (s *httpBootstrapSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	log := logger.FromContext(ctx)

	req := s.client.R().SetContext(ctx).SetHeader("Accept", "application/json")
	if token, ok := utils.GetSessionTokenFromContext(ctx); ok {
		req.SetAuthToken(token)
	}

	resp, err := req.Get("/" + url.PathEscape(name) + ".json")
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, ErrFetchTimeout
		}
		log.Err(err).Str("func", "*httpBootstrapSource.Fetch").Str("name", name).Msg("seed request failed")
		return nil, fmt.Errorf("%w: %w", ErrBootstrapUnavailable, err)
	}

	if err = mapHTTPError(resp); err != nil {
		log.Warn().Err(err).Str("func", "*httpBootstrapSource.Fetch").Str("name", name).Msg("seed host rejected request")
		if errors.Is(err, ErrUnauthorized) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrBootstrapUnavailable, err)
	}

	return resp.Body(), nil
}
