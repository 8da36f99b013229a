package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := load(filepath.Join(t.TempDir(), "absent.yaml"), env(nil))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "ecosense.db", cfg.Database.Path)
	assert.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	assert.Empty(t, cfg.AI.Gemini.APIKey)
	assert.False(t, cfg.StorageEnabled())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	// Given
	path := writeFile(t, `
server:
  port: 9090
  writeTimeout: 90s
database:
  driver: MySQL
  host: db.local
  user: eco
  password: pw
  name: ecosense
ai:
  gemini:
    apiKey: from-file
    model: gemini-1.5-pro
auth:
  apiKeys:
    acme: k1
`)

	// When
	cfg, err := load(path, env(map[string]string{
		"GEMINI_API_KEY": "from-env",
		"OPENAI_API_KEY": "sk-test",
		"PORT":           "7070",
	}))

	// Then
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, DriverMySQL, cfg.Database.Driver)
	assert.Equal(t, 3306, cfg.Database.Port)
	assert.Equal(t, "from-env", cfg.AI.Gemini.APIKey)
	assert.Equal(t, "gemini-1.5-pro", cfg.AI.Gemini.Model)
	assert.Equal(t, "sk-test", cfg.AI.OpenAI.APIKey)
	assert.Equal(t, map[string]string{"acme": "k1"}, cfg.Auth.APIKeys)
	assert.Equal(t, "eco:pw@tcp(db.local:3306)/ecosense?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
		want error
	}{
		{"bad driver", "database:\n  driver: oracle\n", nil, ErrUnknownDriver},
		{"postgres without host", "database:\n  driver: postgres\n  name: x\n", nil, ErrMissingDatabase},
		{"bad port env", "", map[string]string{"PORT": "eighty"}, ErrInvalidPort},
		{"port out of range", "server:\n  port: 70000\n", nil, ErrInvalidPort},
		{"minio without bucket", "minio:\n  endpoint: localhost:9000\n", nil, ErrIncompleteMinio},
		{"negative rate", "rateLimit:\n  rps: -1\n", nil, ErrInvalidRateLimit},
		{"empty key", "auth:\n  apiKeys:\n    acme: \"\"\n", nil, ErrEmptyAPIKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(writeFile(t, tt.yaml), env(tt.env))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := load(writeFile(t, "server: [1, 2"), env(nil))
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = DriverPostgres
	cfg.Database.Host = "pg"
	cfg.Database.Port = 5432
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Name = "eco"

	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=eco sslmode=disable", cfg.PostgresDSN())
	assert.NoError(t, cfg.Validate())
}
