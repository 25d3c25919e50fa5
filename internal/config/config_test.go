package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithEnvVars(t *testing.T) {
	os.Setenv("SITECHAT_PORT", "9090")
	os.Setenv("SITECHAT_DEBUG", "true")
	os.Setenv("SITECHAT_AI_API_KEY", "sk-test")
	os.Setenv("SITECHAT_AI_BASE_URL", "http://localhost:11434/v1")
	os.Setenv("SITECHAT_MAX_PAGES", "25")
	os.Setenv("SITECHAT_SESSION_TTL", "1h")
	os.Setenv("SITECHAT_SENTRY_DSN", "https://key@sentry.example/1")
	defer func() {
		os.Unsetenv("SITECHAT_PORT")
		os.Unsetenv("SITECHAT_DEBUG")
		os.Unsetenv("SITECHAT_AI_API_KEY")
		os.Unsetenv("SITECHAT_AI_BASE_URL")
		os.Unsetenv("SITECHAT_MAX_PAGES")
		os.Unsetenv("SITECHAT_SESSION_TTL")
		os.Unsetenv("SITECHAT_SENTRY_DSN")
	}()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "sk-test", cfg.AIAPIKey)
	assert.Equal(t, "http://localhost:11434/v1", cfg.AIBaseURL)
	assert.Equal(t, 25, cfg.MaxPages)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, "https://key@sentry.example/1", cfg.SentryDSN)
	assert.True(t, cfg.HasAI())
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbedModel)
	assert.Equal(t, "gpt-4o-mini", cfg.ChatModel)
	assert.Equal(t, 10, cfg.MaxPages)
	assert.Equal(t, 1500, cfg.MaxChunkChars)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 10*time.Minute, cfg.SweepInterval)
	assert.Equal(t, "data/embeddings.json", cfg.SnapshotPath)
	assert.False(t, cfg.HasAI())
}
