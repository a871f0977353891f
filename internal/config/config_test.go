package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://blog.db")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("AUTO_REPLY_RETRY_INTERVAL", "3s")
	t.Setenv("AUTO_REPLY_MAX_ATTEMPTS", "0")
	t.Setenv("AUTO_REPLY_MULTIPLIER", "1")
	t.Setenv("RATE_LIMIT_GLOBAL", "0s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite://blog.db", cfg.DatabaseURL)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 3*time.Second, cfg.AutoReply.RetryInterval)
	assert.Zero(t, cfg.AutoReply.MaxAttempts)
	assert.Equal(t, 1.0, cfg.AutoReply.Multiplier)
	assert.Zero(t, cfg.RateLimitGlobal)
	assert.Zero(t, cfg.GeminiTemperature)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTO_REPLY_RETRY_INTERVAL", "250ms")
	t.Setenv("AUTO_REPLY_MAX_ATTEMPTS", "5")
	t.Setenv("AUTO_REPLY_MULTIPLIER", "2")
	t.Setenv("LLM_PROVIDER", "http")
	t.Setenv("GEMINI_TEMPERATURE", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.AutoReply.RetryInterval)
	assert.Equal(t, uint(5), cfg.AutoReply.MaxAttempts)
	assert.Equal(t, 2.0, cfg.AutoReply.Multiplier)
	assert.Equal(t, "http", cfg.LLMProvider)
	assert.InDelta(t, 0.5, cfg.GeminiTemperature, 1e-6)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"JWT_TTL":                   "soon",
		"AUTO_REPLY_RETRY_INTERVAL": "0s",
		"AUTO_REPLY_MAX_ATTEMPTS":   "-1",
		"AUTO_REPLY_MULTIPLIER":     "0.5",
		"LLM_HTTP_MAX_RETRIES":      "x",
		"GEMINI_TEMPERATURE":        "hot",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
