// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aplu147/interia/models"
)

// fileSessionStore keeps the admin console session in a small JSON file so
// that a restart within the session window does not require a new login.
type fileSessionStore struct {
	path string
	mu   sync.Mutex
}

func NewFileSessionStore(path string) LocalSessionStore {
	return &fileSessionStore{path: path}
}

func (s *fileSessionStore) Load() (models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.Session{}, ErrLocalSessionNotFound
		}
		return models.Session{}, fmt.Errorf("read local session file: %w", err)
	}

	var session models.Session
	if err = json.Unmarshal(data, &session); err != nil {
		return models.Session{}, fmt.Errorf("decode local session file: %w", err)
	}
	if session.Token == "" {
		return models.Session{}, ErrLocalSessionNotFound
	}

	return session, nil
}

func (s *fileSessionStore) Save(session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create local session dir: %w", err)
		}
	}

	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local session: %w", err)
	}

	if err = os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write local session file: %w", err)
	}

	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *fileSessionStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove local session file: %w", err)
	}
	return nil
}
