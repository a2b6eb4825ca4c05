// Package grammar provides the external spelling/grammar delegate used by the
// spelling check: a thin client for LanguageTool-compatible HTTP APIs.
package grammar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the public LanguageTool API. Production deployments
// should point at a self-hosted instance instead.
const DefaultEndpoint = "https://api.languagetool.org"

// defaultTimeout bounds a single check call.
const defaultTimeout = 30 * time.Second

// LanguageTool checks text against a LanguageTool-compatible HTTP API.
type LanguageTool struct {
	endpoint   string
	language   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a LanguageTool client.
type Option func(*LanguageTool)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(lt *LanguageTool) { lt.httpClient = c }
}

// WithRateLimit caps API calls per minute. Zero means unlimited.
func WithRateLimit(perMinute int) Option {
	return func(lt *LanguageTool) {
		if perMinute <= 0 {
			lt.limiter = nil
			return
		}
		burst := perMinute / 4
		if burst < 1 {
			burst = 1
		}
		if burst > 5 {
			burst = 5
		}
		lt.limiter = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), burst)
	}
}

// NewLanguageTool creates a client for the given endpoint and language code.
// An empty endpoint selects DefaultEndpoint.
func NewLanguageTool(endpoint, language string, opts ...Option) *LanguageTool {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	lt := &LanguageTool{
		endpoint:   strings.TrimRight(endpoint, "/"),
		language:   language,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(lt)
	}
	return lt
}

// checkResponse mirrors the subset of the LanguageTool response we consume.
type checkResponse struct {
	Matches []struct {
		Message string `json:"message"`
		Offset  int    `json:"offset"`
		Length  int    `json:"length"`
		Rule    struct {
			ID string `json:"id"`
		} `json:"rule"`
	} `json:"matches"`
}

// Check analyzes text and returns one message per detected issue.
func (lt *LanguageTool) Check(ctx context.Context, text string) ([]string, error) {
	if lt.limiter != nil {
		if err := lt.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}
	}

	form := url.Values{}
	form.Set("text", text)
	form.Set("language", lt.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		lt.endpoint+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("building check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := lt.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending check request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading check response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("check request returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed checkResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing check response: %w", err)
	}

	messages := make([]string, 0, len(parsed.Matches))
	for _, m := range parsed.Matches {
		messages = append(messages, m.Message)
	}
	return messages, nil
}

// Close releases idle connections held by the underlying HTTP client.
func (lt *LanguageTool) Close() error {
	lt.httpClient.CloseIdleConnections()
	return nil
}
