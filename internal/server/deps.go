package server

import (
	"context"
	"fmt"
	"log/slog"

	"anoa.com/swetter/internal/agent/providers"
	"anoa.com/swetter/internal/config"
	"github.com/redis/go-redis/v9"
)

// NewLLMProvider picks the text model backend named by LLM_PROVIDER.
func NewLLMProvider(ctx context.Context, cfg *config.Config) (providers.LLMProvider, error) {
	switch cfg.LLMProvider {
	case "gemini":
		return providers.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel,
			providers.WithTemperature(cfg.GeminiTemperature),
		)
	case "http":
		return providers.NewHTTPProvider(cfg.LLMHTTPURL, cfg.LLMHTTPToken,
			providers.WithMaxRetries(cfg.LLMHTTPMaxRetries),
			providers.WithTimeout(cfg.LLMTimeout),
		)
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

// NewRedisClient connects to REDIS_URL. An empty URL returns nil, which turns
// rate limiting and live notifications off.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL == "" {
		slog.Warn("REDIS_URL not set, rate limiting and notifications are disabled")
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
