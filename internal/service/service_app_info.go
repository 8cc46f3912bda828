// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/aplu147/interia/models"
)

type appInfoService struct {
	info models.AppBuildInfo
}

func NewAppInfoService(info models.AppBuildInfo) (AppInfoService, error) {
	if info.BuildVersion() == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{info: info}, nil
}

func (s *appInfoService) BuildInfo(ctx context.Context) models.BuildInfoResponse {
	return s.info.Response()
}
