package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Database.Seed)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Orders.StrictTransitions)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, `
server:
  port: 9090
  allowed_origins: ["https://shop.example"]
database:
  dsn: /tmp/orders.db
  seed: false
auth:
  token_ttl: 2h
orders:
  strict_transitions: true
redis:
  addr: localhost:6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://shop.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "/tmp/orders.db", cfg.Database.DSN)
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Orders.StrictTransitions)
	assert.True(t, cfg.Redis.Enabled())
	// untouched keys keep their defaults
	assert.Equal(t, "admin", cfg.Auth.AdminUsername)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "server:\n  port: 9090\n")
	t.Setenv("PORT", "7070")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("STRICT_TRANSITIONS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.True(t, cfg.Orders.StrictTransitions)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("bad yaml", func(t *testing.T) {
		_, err := Load(writeFile(t, "server: [unterminated"))
		assert.Error(t, err)
	})
	t.Run("bad port env", func(t *testing.T) {
		t.Setenv("PORT", "eighty")
		_, err := Load("")
		assert.ErrorContains(t, err, "PORT")
	})
	t.Run("bad strict env", func(t *testing.T) {
		t.Setenv("STRICT_TRANSITIONS", "sometimes")
		_, err := Load("")
		assert.ErrorContains(t, err, "STRICT_TRANSITIONS")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"port", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"dsn", func(c *Config) { c.Database.DSN = "" }, "database.dsn"},
		{"secret", func(c *Config) { c.Auth.JWTSecret = "" }, "auth.jwt_secret"},
		{"ttl", func(c *Config) { c.Auth.TokenTTL = 0 }, "auth.token_ttl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestWithPragmas(t *testing.T) {
	dsn := withPragmas("data/kitchen.db")
	assert.Contains(t, dsn, "foreign_keys(1)")
	assert.Contains(t, dsn, "busy_timeout")
}
