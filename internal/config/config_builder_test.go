package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func validServerConfig() *StructuredConfig {
	cfg := Defaults()
	cfg.App.AdminPassword = "in2025"
	cfg.App.TokenSignKey = "secret"
	return cfg
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestBuild_FirstSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{AdminUsername: "from-env"}},
		&StructuredConfig{App: App{AdminUsername: "from-flags", TokenIssuer: "issuer"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.App.AdminUsername)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
}

func TestBuild_DefaultsFillGaps(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{SessionTimeout: 5 * time.Minute}})

	cfg, err := b.withDefaults().build()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.App.SessionTimeout)
	assert.Equal(t, DefaultAdminUsername, cfg.App.AdminUsername)
	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
}

func TestWithJSON_UsesPathFromEarlierSource(t *testing.T) {
	p := writeTempJSONConfig(t, `{"app":{"token_issuer":"json-issuer"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: p})

	cfg, err := b.withJSON().build()
	require.NoError(t, err)
	assert.Equal(t, "json-issuer", cfg.App.TokenIssuer)
}

func TestWithJSON_MissingFileIsAnError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	_, err := b.withJSON().build()
	assert.Error(t, err)
}

// ── env ───────────────────────────────────────────────────────────────────────

func TestWithEnv_ReadsPrefixedVariables(t *testing.T) {
	t.Setenv("APP_ADMIN_USERNAME", "env-admin")
	t.Setenv("APP_SESSION_TIMEOUT", "45m")
	t.Setenv("STORAGE_DB_DATABASE_URI", "postgres://u:p@localhost/db")
	t.Setenv("SERVER_CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("SERVER_TRUSTED_PROXIES", "10.0.0.1,192.168.0.0/16")
	t.Setenv("WORKERS_SESSION_SWEEP_INTERVAL", "2m")

	cfg, err := newConfigBuilder().withEnv().build()
	require.NoError(t, err)
	assert.Equal(t, "env-admin", cfg.App.AdminUsername)
	assert.Equal(t, 45*time.Minute, cfg.App.SessionTimeout)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.Storage.DB.DSN)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.Server.TrustedProxies)
	assert.Equal(t, 2*time.Minute, cfg.Workers.SessionSweepInterval)
}

func TestWithEnv_InvalidDuration(t *testing.T) {
	t.Setenv("APP_SESSION_TIMEOUT", "forever")

	_, err := newConfigBuilder().withEnv().build()
	assert.Error(t, err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_FlagsAndDefaults(t *testing.T) {
	cfg, err := GetStructuredConfig([]string{
		"-admin-password", "in2025",
		"-token-sign-key", "secret",
		"-a", "127.0.0.1:9000",
	})
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.HTTPAddress)
	assert.Equal(t, DefaultSessionTimeout, cfg.App.SessionTimeout)
	assert.Equal(t, "admin", cfg.App.AdminUsername)
}

func TestGetStructuredConfig_MissingSecrets(t *testing.T) {
	_, err := GetStructuredConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

// ── validate ──────────────────────────────────────────────────────────────────

func TestStructuredConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*StructuredConfig) {}},
		{name: "hash instead of password", mutate: func(c *StructuredConfig) {
			c.App.AdminPassword = ""
			c.App.AdminPasswordHash = "$2a$10$abc"
		}},
		{name: "no password", mutate: func(c *StructuredConfig) { c.App.AdminPassword = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "no sign key", mutate: func(c *StructuredConfig) { c.App.TokenSignKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "no timeout", mutate: func(c *StructuredConfig) { c.App.SessionTimeout = 0 }, wantErr: ErrInvalidAppConfigs},
		{name: "no dsn", mutate: func(c *StructuredConfig) { c.Storage.DB.DSN = " " }, wantErr: ErrInvalidStorageConfigs},
		{name: "no login burst", mutate: func(c *StructuredConfig) { c.Server.LoginBurst = 0 }, wantErr: ErrInvalidServerConfigs},
		{name: "trusted proxies", mutate: func(c *StructuredConfig) { c.Server.TrustedProxies = []string{"10.0.0.1", "172.16.0.0/12"} }},
		{name: "bad trusted proxy", mutate: func(c *StructuredConfig) { c.Server.TrustedProxies = []string{"proxy.local"} }, wantErr: ErrInvalidServerConfigs},
		{name: "no fetch timeout", mutate: func(c *StructuredConfig) { c.Adapter.FetchTimeout = 0 }, wantErr: ErrInvalidAdapterConfigs},
		{name: "no sweep interval", mutate: func(c *StructuredConfig) { c.Workers.SessionSweepInterval = 0 }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validServerConfig()
			tt.mutate(cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseTrustedProxy(t *testing.T) {
	single, err := ParseTrustedProxy(" 10.0.0.1 ")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1/32", single.String())

	rng, err := ParseTrustedProxy("172.16.5.4/12")
	require.NoError(t, err)
	assert.Equal(t, "172.16.0.0/12", rng.String())

	v6, err := ParseTrustedProxy("::1")
	require.NoError(t, err)
	assert.Equal(t, "::1/128", v6.String())

	_, err = ParseTrustedProxy("10.0.0.0/40")
	assert.Error(t, err)
}

func TestGetClientConfig(t *testing.T) {
	cfg, err := GetClientConfig([]string{"-server", "http://example.test"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.test", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultSessionTimeout, cfg.SessionTimeout)
	assert.NotEmpty(t, cfg.Storage.SessionFile)
}
