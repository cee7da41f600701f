package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasSaneProcessing(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 500, cfg.Processing.ChunkSize)
	assert.Equal(t, 100, cfg.Processing.ChunkOverlap)
	assert.Equal(t, 3, cfg.Processing.TopK)
	assert.Equal(t, 10, cfg.Processing.HistoryLimit)
	assert.Equal(t, "openai", cfg.Provider)
}

func TestLoadWithoutPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, Default().HTTP.Addr, cfg.HTTP.Addr)
}

func TestLoadParsesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("provider: ollama\nprocessing:\n  top_k: 5\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.Provider)
	assert.Equal(t, 5, cfg.Processing.TopK)
	// Untouched fields keep their defaults.
	assert.Equal(t, 500, cfg.Processing.ChunkSize)
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.Error(t, err)
}

func TestEnvOverridesSecrets(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok-123")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DATABASE_URL", "postgres://db/chatbot")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "tok-123", cfg.Telegram.BotToken)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "postgres://db/chatbot", cfg.Database.ConnectionString)
}
