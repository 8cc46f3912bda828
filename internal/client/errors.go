// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var ErrMissingDependency = errors.New("client: server adapter, session store and ui are required")
