package fetch

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/Dawar13/firefly-backend/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// relayTimeout allows for the extra hop through the anti-bot relay
	relayTimeout  = 60 * time.Second
	directTimeout = 30 * time.Second

	// browserUserAgent is sent on direct requests; the relay manages its
	// own headers
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Client retrieves competitor pages, routing through a ScraperAPI-style
// relay when a credential is configured
type Client struct {
	httpClient  *http.Client
	apiKey      string
	relayURL    string
	rateLimiter *rate.Limiter
}

// NewClient creates a new page fetch client. An empty apiKey disables the
// relay; every fetch then goes directly to the target site.
func NewClient(apiKey, relayURL string, ratePerSec float64) *Client {
	// Keep a small burst so a single fan-out doesn't serialize entirely
	// behind the limiter
	limiter := rate.NewLimiter(rate.Limit(ratePerSec), 6)

	return &Client{
		// No client-level timeout: the per-request context carries the
		// relay/direct deadline
		httpClient:  &http.Client{},
		apiKey:      apiKey,
		relayURL:    relayURL,
		rateLimiter: limiter,
	}
}

// Fetch retrieves the raw HTML of pageURL. Timeouts, transport errors and
// non-2xx statuses are logged and returned as errors wrapping
// domain.ErrFetchFailed; one dead competitor site must not abort a batch,
// so retry policy is left to the caller (there is none inside the client).
func (c *Client) Fetch(ctx context.Context, pageURL string, useProxy bool) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("%w: empty URL", domain.ErrFetchFailed)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := pageURL
	timeout := directTimeout
	relayed := useProxy && c.apiKey != ""
	if relayed {
		params := url.Values{}
		params.Add("api_key", c.apiKey)
		params.Add("url", pageURL)
		reqURL = fmt.Sprintf("%s?%s", c.relayURL, params.Encode())
		timeout = relayTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if !relayed {
		req.Header.Set("User-Agent", browserUserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[fetch] request error for %s (relayed=%v): %v", pageURL, relayed, err)
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[fetch] unexpected status %d for %s", resp.StatusCode, pageURL)
		return "", fmt.Errorf("%w: status %d", domain.ErrFetchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[fetch] body read error for %s: %v", pageURL, err)
		return "", fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	return string(body), nil
}
