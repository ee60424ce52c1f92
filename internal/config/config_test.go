package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validConfig = `
server:
  host: "127.0.0.1"
  port: 8080
database:
  driver: "postgres"
  host: "localhost"
  port: 5432
  user: "rentacar"
  password: "secret"
  database: "rentacar"
jwt:
  secret: "test-secret"
  token_expiry_hours: 24
contract:
  auto_initialize: true
  admin: "admin"
  payment_token: "usdc"
log:
  level: "info"
  format: "json"
`

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddress())
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
	assert.True(t, cfg.Contract.AutoInitialize)
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "dbname=rentacar")
	assert.Contains(t, cfg.GetDatabaseConnectionString(), "sslmode=disable")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "env-secret", cfg.JWT.Secret)
}

func TestValidate(t *testing.T) {
	t.Run("Missing jwt secret", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 8080
database:
  driver: "memory"
`))
		assert.ErrorContains(t, err, "jwt secret")
	})

	t.Run("Unknown driver", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 8080
database:
  driver: "sqlite"
jwt:
  secret: "s"
`))
		assert.ErrorContains(t, err, "unsupported database driver")
	})

	t.Run("Memory driver needs no database host", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
server:
  port: 8080
database:
  driver: "memory"
jwt:
  secret: "s"
`))
		require.NoError(t, err)
		assert.Equal(t, "memory", cfg.Database.Driver)
	})

	t.Run("Bootstrap principals must differ", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
server:
  port: 8080
database:
  driver: "memory"
jwt:
  secret: "s"
contract:
  auto_initialize: true
  admin: "same"
  payment_token: "same"
`))
		assert.ErrorContains(t, err, "cannot be the same principal")
	})
}

func TestCustodyPrincipal(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "contract-custody", cfg.CustodyPrincipal())

	cfg.Contract.Custody = "escrow-7"
	assert.Equal(t, "escrow-7", cfg.CustodyPrincipal())
}
