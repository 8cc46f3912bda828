// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aplu147/interia/internal/config"
	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/store"
	"github.com/aplu147/interia/internal/utils"
	"github.com/aplu147/interia/models"
)

// ─── clock ───────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// ─── in-memory repositories ──────────────────────────────────────────────────

type memorySessions struct {
	mu       sync.Mutex
	sessions map[string]models.Session
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[string]models.Session{}}
}

func (m *memorySessions) Save(_ context.Context, s models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Token] = s
	return nil
}

func (m *memorySessions) Get(_ context.Context, token string) (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return models.Session{}, store.ErrSessionNotFound
	}
	return s, nil
}

func (m *memorySessions) Touch(_ context.Context, token string, lastActivity int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return store.ErrSessionNotFound
	}
	s.LastActivity = lastActivity
	m.sessions[token] = s
	return nil
}

func (m *memorySessions) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

func (m *memorySessions) DeleteExpired(_ context.Context, cutoff int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for token, s := range m.sessions {
		if s.LastActivity < cutoff {
			delete(m.sessions, token)
			n++
		}
	}
	return n, nil
}

func (m *memorySessions) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// memoryCollections mimics the SQL repository's revision semantics.
type memoryCollections struct {
	mu     sync.Mutex
	docs   map[string]models.CachedDocument
	puts   int
	putErr error
}

func newMemoryCollections() *memoryCollections {
	return &memoryCollections{docs: map[string]models.CachedDocument{}}
}

func (m *memoryCollections) Get(_ context.Context, key string) (models.CachedDocument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[key]
	if !ok {
		return models.CachedDocument{}, store.ErrCollectionNotFound
	}
	return doc, nil
}

func (m *memoryCollections) Put(_ context.Context, key string, payload []byte, expectedRevision int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++
	if m.putErr != nil {
		return 0, m.putErr
	}

	current, exists := m.docs[key]
	switch {
	case expectedRevision == 0 && exists:
		return 0, store.ErrRevisionConflict
	case expectedRevision != 0 && (!exists || current.Revision != expectedRevision):
		return 0, store.ErrRevisionConflict
	}

	next := current.Revision + 1
	m.docs[key] = models.CachedDocument{Key: key, Payload: append([]byte(nil), payload...), Revision: next}
	return next, nil
}

func (m *memoryCollections) seed(key, payload string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = models.CachedDocument{Key: key, Payload: []byte(payload), Revision: 1}
}

func (m *memoryCollections) payload(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.docs[key].Payload)
}

func (m *memoryCollections) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[key]
	return ok
}

// ─── bootstrap / activity / verifier fakes ───────────────────────────────────

type countingBootstrap struct {
	mu    sync.Mutex
	docs  map[string]string
	err   error
	calls map[string]int
}

func newCountingBootstrap(docs map[string]string) *countingBootstrap {
	return &countingBootstrap{docs: docs, calls: map[string]int{}}
}

func (b *countingBootstrap) Fetch(_ context.Context, name string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[name]++
	if b.err != nil {
		return nil, b.err
	}
	doc, ok := b.docs[name]
	if !ok {
		return []byte(`[]`), nil
	}
	return []byte(doc), nil
}

func (b *countingBootstrap) Calls(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[name]
}

type recordingActivity struct {
	mu      sync.Mutex
	entries []models.ActivityEntry
}

func (r *recordingActivity) Record(ctx context.Context, entry models.ActivityEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry.Username == "" {
		entry.Username, _ = utils.GetUsernameFromContext(ctx)
	}
	r.entries = append(r.entries, entry)
}

func (r *recordingActivity) Actions() []models.ActivityAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ActivityAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeVerifier struct {
	VerifyFunc func(ctx context.Context, username, password string) error
}

func (f *fakeVerifier) Verify(ctx context.Context, username, password string) error {
	return f.VerifyFunc(ctx, username, password)
}

func acceptAdmin() *fakeVerifier {
	return &fakeVerifier{VerifyFunc: func(_ context.Context, username, password string) error {
		if username == testAdmin && password == testPassword {
			return nil
		}
		return ErrInvalidCredentials
	}}
}

// ─── guard helpers ───────────────────────────────────────────────────────────

const (
	testAdmin    = "admin"
	testPassword = "in2025"
)

func testAppConfig() config.App {
	return config.App{
		AdminUsername:  testAdmin,
		SessionTimeout: 30 * time.Minute,
		TokenSignKey:   "test-sign-key",
		TokenIssuer:    "interia",
	}
}

func newTestGuard(t *testing.T, sessions store.SessionRepository, activity ActivityRecorder) (*sessionGuard, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	g := NewSessionGuard(sessions, acceptAdmin(), activity, testAppConfig(), logger.Nop()).(*sessionGuard)
	g.now = clock.Now
	return g, clock
}

// login authenticates as the test admin and returns a context carrying the
// session token.
func login(t *testing.T, g SessionGuard) context.Context {
	t.Helper()

	session, err := g.Authenticate(context.Background(), testAdmin, testPassword)
	require.NoError(t, err)
	return utils.WithSessionToken(context.Background(), session.Token)
}
