package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPProviderGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "say hi", req.Prompt)

		_ = json.NewEncoder(w).Encode(generateResponse{Text: "hi"})
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(srv.URL, "secret")
	require.NoError(t, err)
	defer p.Close()

	text, err := p.GenerateText(context.Background(), "say hi")
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestHTTPProviderFailsWithoutRetriesByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(srv.URL, "")
	require.NoError(t, err)

	_, err = p.GenerateText(context.Background(), "x")
	assert.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPProviderRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(generateResponse{Text: "False"})
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(srv.URL, "", WithMaxRetries(2), WithRetryWait(time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)

	text, err := p.GenerateText(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "False", text)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPProviderRejectsGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	p, err := NewHTTPProvider(srv.URL, "")
	require.NoError(t, err)

	_, err = p.GenerateText(context.Background(), "x")
	assert.Error(t, err)
}

func TestNewHTTPProviderRequiresURL(t *testing.T) {
	_, err := NewHTTPProvider("", "")
	assert.Error(t, err)
}

func TestNewGeminiProviderRequiresKey(t *testing.T) {
	_, err := NewGeminiProvider(context.Background(), "", "")
	assert.Error(t, err)
}
