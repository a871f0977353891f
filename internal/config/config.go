package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	DatabaseURL string
	RedisURL    string

	MeiliSearchHost string
	MeiliMasterKey  string

	JWTSecret string
	JWTTTL    time.Duration

	LLMProvider       string
	GeminiAPIKey      string
	GeminiModel       string
	GeminiTemperature float32
	LLMHTTPURL        string
	LLMHTTPToken      string
	LLMHTTPMaxRetries int
	LLMTimeout        time.Duration

	AutoReply AutoReplyConfig

	RateLimitGlobal time.Duration

	AdminPassword string

	LogLevel  string
	LogFormat string
}

// AutoReplyConfig controls how long a deferred reply keeps asking the model.
type AutoReplyConfig struct {
	RetryInterval time.Duration
	MaxInterval   time.Duration
	Multiplier    float64
	// zero means retry until the model answers
	MaxAttempts uint
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		DatabaseURL: getEnv("DATABASE_URL", "sqlite://blog.db"),
		RedisURL:    os.Getenv("REDIS_URL"),

		MeiliSearchHost: os.Getenv("MEILISEARCH_HOST"),
		MeiliMasterKey:  os.Getenv("MEILI_MASTER_KEY"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		LLMProvider:  getEnv("LLM_PROVIDER", "gemini"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMHTTPURL:   os.Getenv("LLM_HTTP_URL"),
		LLMHTTPToken: os.Getenv("LLM_HTTP_TOKEN"),

		AdminPassword: getEnv("ADMIN_PASSWORD", "admin"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	// Parsing durations
	var err error
	cfg.JWTTTL, err = parseDuration(getEnv("JWT_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.LLMTimeout, err = parseDuration(getEnv("LLM_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LLM_TIMEOUT: %w", err)
	}
	cfg.RateLimitGlobal, err = parseDuration(getEnv("RATE_LIMIT_GLOBAL", "0s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_GLOBAL: %w", err)
	}
	cfg.AutoReply.RetryInterval, err = parseDuration(getEnv("AUTO_REPLY_RETRY_INTERVAL", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_REPLY_RETRY_INTERVAL: %w", err)
	}
	cfg.AutoReply.MaxInterval, err = parseDuration(getEnv("AUTO_REPLY_MAX_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_REPLY_MAX_INTERVAL: %w", err)
	}

	cfg.LLMHTTPMaxRetries, err = strconv.Atoi(getEnv("LLM_HTTP_MAX_RETRIES", "0"))
	if err != nil || cfg.LLMHTTPMaxRetries < 0 {
		return nil, fmt.Errorf("invalid LLM_HTTP_MAX_RETRIES: %q", os.Getenv("LLM_HTTP_MAX_RETRIES"))
	}
	maxAttempts, err := strconv.ParseUint(getEnv("AUTO_REPLY_MAX_ATTEMPTS", "0"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_REPLY_MAX_ATTEMPTS: %w", err)
	}
	cfg.AutoReply.MaxAttempts = uint(maxAttempts)

	temperature, err := strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", "0"), 32)
	if err != nil || temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("invalid GEMINI_TEMPERATURE: %q", os.Getenv("GEMINI_TEMPERATURE"))
	}
	cfg.GeminiTemperature = float32(temperature)

	cfg.AutoReply.Multiplier, err = strconv.ParseFloat(getEnv("AUTO_REPLY_MULTIPLIER", "1"), 64)
	if err != nil || cfg.AutoReply.Multiplier < 1 {
		return nil, fmt.Errorf("invalid AUTO_REPLY_MULTIPLIER: %q", os.Getenv("AUTO_REPLY_MULTIPLIER"))
	}

	if cfg.AutoReply.RetryInterval <= 0 {
		return nil, fmt.Errorf("invalid AUTO_REPLY_RETRY_INTERVAL: must be positive")
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
