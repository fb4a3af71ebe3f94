package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key", "http://relay.example.com", 2.0)

	assert.NotNil(t, client)
	assert.Equal(t, "test-api-key", client.apiKey)
	assert.Equal(t, "http://relay.example.com", client.relayURL)
	assert.NotNil(t, client.httpClient)
	assert.NotNil(t, client.rateLimiter)
}

func TestFetch_Direct(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/product/123", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")

		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	// No API key configured, so useProxy=true still goes direct
	client := NewClient("", "http://relay.example.com", 100)
	html, err := client.Fetch(context.Background(), server.URL+"/product/123", true)

	require.NoError(t, err)
	assert.Contains(t, html, "ok")
}

func TestFetch_Relayed(t *testing.T) {
	target := "https://www.truecarat.example.com/search?q=ring"

	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.URL.Query().Get("api_key"))
		assert.Equal(t, target, r.URL.Query().Get("url"))
		// The relay sets its own headers; the client must not force a UA
		assert.NotContains(t, r.Header.Get("User-Agent"), "Mozilla/5.0 (Windows NT 10.0")

		w.Write([]byte("<html>relayed</html>"))
	}))
	defer relay.Close()

	client := NewClient("test-api-key", relay.URL, 100)
	html, err := client.Fetch(context.Background(), target, true)

	require.NoError(t, err)
	assert.Equal(t, "<html>relayed</html>", html)
}

func TestFetch_ProxyDisabledPerCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Direct hit, no relay query params
		assert.Empty(t, r.URL.Query().Get("api_key"))
		w.Write([]byte("direct"))
	}))
	defer server.Close()

	client := NewClient("test-api-key", "http://relay.invalid", 100)
	html, err := client.Fetch(context.Background(), server.URL, false)

	require.NoError(t, err)
	assert.Equal(t, "direct", html)
}

func TestFetch_Non2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient("", "http://relay.example.com", 100)
	html, err := client.Fetch(context.Background(), server.URL, true)

	assert.Empty(t, html)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetch_TransportError(t *testing.T) {
	client := NewClient("", "http://relay.example.com", 100)

	// Closed server to force a connection error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	html, err := client.Fetch(context.Background(), addr, true)

	assert.Empty(t, html)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetch_EmptyURL(t *testing.T) {
	client := NewClient("", "http://relay.example.com", 100)

	html, err := client.Fetch(context.Background(), "", true)

	assert.Empty(t, html)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetch_CallerDeadline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("too late"))
	}))
	defer server.Close()

	client := NewClient("", "http://relay.example.com", 100)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	html, err := client.Fetch(ctx, server.URL, true)

	assert.Empty(t, html)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "context deadline exceeded") ||
		strings.Contains(err.Error(), "deadline"))
}
