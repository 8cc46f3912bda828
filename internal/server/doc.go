// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP transport and the background workers.
//
// It provides orchestration of their lifecycles: startup, signal handling,
// and graceful shutdown.
package server
