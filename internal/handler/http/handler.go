// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/netip"

	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/service"
)

type Handler struct {
	services *service.Services

	loginLimiter   *loginLimiter
	trustedProxies []netip.Prefix
	corsOrigins    []string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		loginLimiter:   newLoginLimiter(cfg.LoginRate, cfg.LoginBurst),
		trustedProxies: parseTrustedProxies(cfg.TrustedProxies, logger),
		corsOrigins:    cfg.CORSOrigins,
		logger:         logger,
	}
}
