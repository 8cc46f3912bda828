// Package config loads, merges and validates the configuration of the
// interia server and admin console.
//
// Configuration is assembled from, in priority order:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the admin console.
package config
