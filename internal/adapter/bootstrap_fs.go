// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/seed"
)

// fsBootstrapSource reads <name>.json from a file system: the seed content
// compiled into the binary or a directory on disk.
type fsBootstrapSource struct {
	fsys   fs.FS
	origin string
}

// NewEmbeddedBootstrapSource serves the seed content compiled into the binary.
func NewEmbeddedBootstrapSource() BootstrapSource {
	return &fsBootstrapSource{fsys: seed.FS, origin: "embedded"}
}

// NewDirBootstrapSource serves <dir>/<name>.json files.
func NewDirBootstrapSource(dir string) BootstrapSource {
	return &fsBootstrapSource{fsys: os.DirFS(dir), origin: dir}
}

func (s *fsBootstrapSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file := path.Clean(name) + ".json"
	if !fs.ValidPath(file) {
		return nil, fmt.Errorf("%w: invalid name %q", ErrBootstrapUnavailable, name)
	}

	data, err := fs.ReadFile(s.fsys, file)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).
			Str("func", "*fsBootstrapSource.Fetch").
			Str("origin", s.origin).
			Str("name", name).
			Msg("seed document is not readable")
		return nil, fmt.Errorf("%w: %s: %w", ErrBootstrapUnavailable, name, err)
	}

	return data, nil
}
