// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"reflect"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/aplu147/interia/internal/logger"
	"github.com/aplu147/interia/internal/mock"
	"github.com/aplu147/interia/models"
)

var tuiPkg = reflect.TypeOf(RootModel{}).PkgPath()

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testConsole struct {
	root     *RootModel
	server   *mock.MockServerAdapter
	sessions *mock.MockLocalSessionStore
	clock    *testClock
}

func newTestConsole(t *testing.T, restored *models.SessionResponse) *testConsole {
	t.Helper()

	ctrl := gomock.NewController(t)
	server := mock.NewMockServerAdapter(ctrl)
	sessions := mock.NewMockLocalSessionStore(ctrl)
	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}

	if restored != nil {
		server.EXPECT().SetToken(restored.Token)
		sessions.EXPECT().Save(gomock.Any()).Return(nil)
	}

	opts := Options{
		Server:        server,
		Sessions:      sessions,
		BuildInfo:     models.NewAppBuildInfo("v1.2.0", "2026-03-01", "abc123"),
		TouchInterval: 30 * time.Second,
	}

	// The clock is swapped in before any session bookkeeping happens.
	app := newAppContext(context.Background(), opts, logger.Nop())
	app.now = clock.Now
	root := newRootModelWithApp(app, opts, restored)

	return &testConsole{root: root, server: server, sessions: sessions, clock: clock}
}

func restoredSession(c *testClock) *models.SessionResponse {
	return &models.SessionResponse{
		Token:     "tok",
		Username:  "admin",
		ExpiresAt: c.now.Add(30 * time.Minute),
	}
}

// send delivers msg to the root model and runs the resulting commands until
// the console settles. Messages of other packages, such as cursor blinks and
// spinner ticks, are dropped.
func (c *testConsole) send(t *testing.T, msg tea.Msg) {
	t.Helper()
	_, cmd := c.root.Update(msg)
	c.pump(t, cmd)
}

func (c *testConsole) pump(t *testing.T, cmd tea.Cmd) {
	t.Helper()

	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 100, "message loop did not settle")

		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil || reflect.TypeOf(msg).PkgPath() != tuiPkg {
			continue
		}

		_, follow := c.root.Update(msg)
		queue = append(queue, follow)
	}
}

// typeText feeds runes into the focused input. Cursor commands are dropped.
func (c *testConsole) typeText(text string) {
	c.root.Update(runes(text))
}

func (c *testConsole) press(t *testing.T, k tea.KeyMsg) {
	t.Helper()
	c.send(t, k)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
)

func page[T tea.Model](t *testing.T, c *testConsole, name string) T {
	t.Helper()
	p, ok := c.root.pages[name].(T)
	require.True(t, ok, "page %s has unexpected type %T", name, c.root.pages[name])
	return p
}
