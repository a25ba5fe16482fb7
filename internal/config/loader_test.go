package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_FileWithDefaults(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "app.db")
	path := writeConfigFile(t, `
database:
  path: `+dbPath+`
jwt:
  secret_key: file-secret
admin:
  password: admin-pass
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 18080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:18080", cfg.Server.GetAddress())
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "HS256", cfg.JWT.Algorithm)
	assert.Equal(t, 7*24*60, cfg.JWT.ExpireMinutes)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.Equal(t, "admin@localhost", cfg.Admin.Email)
	assert.Equal(t, 5, cfg.Login.MaxAttempts)
	assert.Equal(t, 15, cfg.Login.LockoutMinutes)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, int64(10<<20), cfg.Upload.GetMaxBytes())
	assert.False(t, cfg.Redis.Enabled())

	// sqlite 目录会被自动创建
	_, err = os.Stat(filepath.Dir(dbPath))
	assert.NoError(t, err)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9000
database:
  path: `+filepath.Join(t.TempDir(), "app.db")+`
jwt:
  secret_key: file-secret
admin:
  password: admin-pass
`)
	t.Setenv("JWT_SECRET_KEY", "env-secret")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("REDIS_HOST", "127.0.0.1")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.JWT.SecretKey)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "127.0.0.1:6379", cfg.Redis.GetAddress())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Validation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "app.db")

	tests := []struct {
		name    string
		content string
	}{
		{
			name: "empty jwt secret",
			content: `
database:
  path: ` + dbPath + `
admin:
  password: admin-pass
`,
		},
		{
			name: "empty admin password",
			content: `
database:
  path: ` + dbPath + `
jwt:
  secret_key: s
`,
		},
		{
			name: "unknown driver",
			content: `
database:
  driver: oracle
jwt:
  secret_key: s
admin:
  password: p
`,
		},
		{
			name: "postgres without dsn",
			content: `
database:
  driver: postgres
jwt:
  secret_key: s
admin:
  password: p
`,
		},
		{
			name: "port out of range",
			content: `
server:
  port: 70000
database:
  path: ` + dbPath + `
jwt:
  secret_key: s
admin:
  password: p
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfigFile(t, tt.content))
			assert.Error(t, err)
		})
	}
}
