package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{"LLM_PROVIDER", "LLM_MODEL", "GOOGLE_API_KEY", "OPENAI_API_KEY", "SERVER_PORT", "DATABASE_DRIVER", "DATABASE_DSN", "API_KEYS"} {
		t.Setenv(k, "")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, 30000, cfg.Limits.MaxChars)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, uint(5), cfg.Database.ConnectAttempts)
	assert.Equal(t, "local", cfg.Storage.Driver)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	yml := `
server:
  port: 9000
llm:
  provider: openai
  retryDelay: 2s
database:
  driver: mysql
  host: db
  port: 3306
  user: root
  password: secret
  name: contracts
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("SERVER_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 2*time.Second, cfg.LLM.RetryDelay)
	assert.Equal(t, "root:secret@tcp(db:3306)/contracts?parseTime=true&charset=utf8mb4&loc=UTC", cfg.MySQLDSN())
}

func TestLoad_GoogleKeyForGemini(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "g-key")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "g-key", cfg.LLM.APIKey)
}

func TestLoad_BadPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "eighty")
	_, err := Load("")
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Host = "pg"
	cfg.Database.Port = 5432
	cfg.Database.User = "u"
	cfg.Database.Password = "p"
	cfg.Database.Name = "n"
	assert.Equal(t, "host=pg port=5432 user=u password=p dbname=n sslmode=disable", cfg.PostgresDSN())

	cfg.Database.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.PostgresDSN())
}

func TestLoad_APIKeysFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEYS", "legal:k1, ops:k2")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"legal": "k1", "ops": "k2"}, cfg.Auth.APIKeys)

	t.Setenv("API_KEYS", "broken")
	_, err = Load("")
	assert.Error(t, err)
}

func TestUseProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "g-key", cfg.LLM.APIKey)

	cfg.UseProvider("OpenAI")
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "o-key", cfg.LLM.APIKey)
}
