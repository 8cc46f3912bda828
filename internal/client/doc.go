// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the admin console application runtime.
//
// It restores a previous session from the local session file, keeps that
// file in sync with the server's answers and hands control to the terminal
// UI.
package client
