package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
)

// HTTPProvider talks to any text model exposed behind a small JSON gateway:
// POST {"prompt": "..."} answered by {"text": "..."}.
type HTTPProvider struct {
	client *http.Client
	url    string
	token  string
}

type leveledSlog struct {
	inner *slog.Logger
}

// transport retries are expected, so client errors are logged as warnings
func (l leveledSlog) Error(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Warn(msg string, keysAndValues ...any) {
	l.inner.Warn(msg, keysAndValues...)
}

func (l leveledSlog) Info(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

func (l leveledSlog) Debug(msg string, keysAndValues ...any) {
	l.inner.Debug(msg, keysAndValues...)
}

type HTTPOption func(*retryablehttp.Client)

// WithMaxRetries sets how many times a failed round trip is retried.
// The default is zero so that one classification is one request.
func WithMaxRetries(maxRetries int) HTTPOption {
	return func(client *retryablehttp.Client) {
		client.RetryMax = maxRetries
	}
}

func WithRetryWait(waitMin, waitMax time.Duration) HTTPOption {
	return func(client *retryablehttp.Client) {
		client.RetryWaitMin = waitMin
		client.RetryWaitMax = waitMax
	}
}

func WithTimeout(timeout time.Duration) HTTPOption {
	return func(client *retryablehttp.Client) {
		client.HTTPClient.Timeout = timeout
	}
}

func NewHTTPProvider(url, token string, options ...HTTPOption) (*HTTPProvider, error) {
	if url == "" {
		return nil, fmt.Errorf("LLM_HTTP_URL is not set")
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = cleanhttp.DefaultPooledClient()
	retryClient.HTTPClient.Timeout = 30 * time.Second
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = retryablehttp.LeveledLogger(leveledSlog{inner: slog.Default().With("subsystem", "llm-http")})

	for _, option := range options {
		option(retryClient)
	}

	return &HTTPProvider{
		client: retryClient.StandardClient(),
		url:    url,
		token:  token,
	}, nil
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// GenerateText implements LLMProvider
func (p *HTTPProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("llm request failed with status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode llm response: %w", err)
	}

	return out.Text, nil
}

// Close implements LLMProvider
func (p *HTTPProvider) Close() {
	p.client.CloseIdleConnections()
}
