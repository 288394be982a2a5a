package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadDefaultsAndValidation(t *testing.T) {
	// no file, no env: missing secrets must fail
	_, err := Load("")
	require.Error(t, err)
}

func TestLoadYAML(t *testing.T) {
	p := writeYAML(t, `
app:
  env: prod
  log_level: warn
server:
  addr: ":9090"
storage:
  driver: memory
jwt:
  access_secret: aaa
  refresh_secret: bbb
  access_ttl: 5m
  refresh_ttl: 24h
`)
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "prod", c.App.Env)
	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, 5*time.Minute, c.AccessTTL())
	assert.Equal(t, 24*time.Hour, c.RefreshTTL())
}

func TestEnvOverridesWin(t *testing.T) {
	p := writeYAML(t, `
storage:
  driver: memory
jwt:
  access_secret: aaa
  refresh_secret: bbb
`)
	t.Setenv("SERVER_ADDR", ":7777")
	t.Setenv("JWT_ACCESS_SECRET", "env-access")
	t.Setenv("RATE_ENABLED", "true")

	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":7777", c.Server.Addr)
	assert.Equal(t, "env-access", c.JWT.AccessSecret)
	assert.True(t, c.Rate.Enabled)
}

func TestEqualSecretsRejected(t *testing.T) {
	p := writeYAML(t, `
storage:
  driver: memory
jwt:
  access_secret: same
  refresh_secret: same
`)
	_, err := Load(p)
	require.Error(t, err)
}

func TestPostgresRequiresDSN(t *testing.T) {
	p := writeYAML(t, `
storage:
  driver: postgres
jwt:
  access_secret: aaa
  refresh_secret: bbb
`)
	_, err := Load(p)
	require.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/partnerdesk")
	_, err = Load(p)
	require.NoError(t, err)
}
