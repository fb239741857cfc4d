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
	for name := range envKeys {
		if _, ok := os.LookupEnv(name); ok {
			t.Setenv(name, "")
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(Default(), *cfg)

	name, _ := cfg.LLM.Selected()
	assert.Equal("none", name)
}

func TestLoadFileThenEnv(t *testing.T) {
	assert := assert.New(t)
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9000"
  api_key: fromfile
llm:
  enabled: true
  provider: groq
  timeout: 5s
  groq:
    api_key: gsk-file
cache:
  ttl: 1h
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(":9000", cfg.Server.Addr)
	assert.Equal("fromfile", cfg.Server.APIKey)
	assert.Equal(5*time.Second, cfg.LLM.Timeout)
	assert.Equal(time.Hour, cfg.Cache.TTL)
	assert.Equal(1024, cfg.Cache.Size)
	assert.Equal("llama-3.1-8b-instant", cfg.LLM.Groq.Model)

	name, p := cfg.LLM.Selected()
	assert.Equal("groq", name)
	assert.Equal("gsk-file", p.APIKey)

	client := cfg.LLM.Client(nil)
	assert.Equal("groq", client.Provider)
	assert.Equal("gsk-file", client.APIKey)
	assert.Equal(200, client.MaxTokens)
	assert.Equal(2, client.Retries)

	t.Setenv("PORT", "8080")
	t.Setenv("API_KEY", "fromenv")
	t.Setenv("USE_LLM", "no")
	t.Setenv("TELEGRAM_CHAT_IDS", "111, 222,,333")
	t.Setenv("LLM_TIMEOUT", "2s")

	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(":8080", cfg.Server.Addr)
	assert.Equal("fromenv", cfg.Server.APIKey)
	assert.False(cfg.LLM.Enabled)
	assert.Equal(2*time.Second, cfg.LLM.Timeout)
	assert.Equal([]string{"111", "222", "333"}, cfg.Notifier.TelegramChatIDs)

	name, _ = cfg.LLM.Selected()
	assert.Equal("none", name)
}

func TestLoadBadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	assert := assert.New(t)

	for _, v := range []string{"1", "true", "YES", "True"} {
		key, val := fromEnv("USE_LLM", v)
		assert.Equal("llm.enabled", key)
		assert.Equal(true, val, v)
	}
	_, val := fromEnv("USE_LLM", "0")
	assert.Equal(false, val)

	key, val := fromEnv("PORT", "0.0.0.0:7000")
	assert.Equal("server.addr", key)
	assert.Equal("0.0.0.0:7000", val)

	key, _ = fromEnv("HOME", "/root")
	assert.Empty(key)

	key, _ = fromEnv("API_KEY", "  ")
	assert.Empty(key)
}
