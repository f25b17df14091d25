package perception

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"astra/internal/logging"
)

// HTTPConfig holds settings for a JSON sentiment endpoint.
type HTTPConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// HTTPPolarity POSTs {"text": ...} and reads {"polarity": x}.
type HTTPPolarity struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPPolarity creates a provider for a generic sentiment service.
func NewHTTPPolarity(cfg HTTPConfig) (*HTTPPolarity, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("http sentiment: URL is required: %w", ErrUnavailable)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	return &HTTPPolarity{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Polarity implements emotion.PolarityProvider.
func (h *HTTPPolarity) Polarity(ctx context.Context, text string) (float64, error) {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		logging.APIWarn("sentiment request failed: %v", err)
		return 0, fmt.Errorf("sentiment request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return 0, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return 0, fmt.Errorf("sentiment service returned 429: %w", ErrRateLimited)
	case resp.StatusCode != http.StatusOK:
		return 0, fmt.Errorf("sentiment service returned %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(respBody)), ErrUnavailable)
	}

	p, err := parsePolarity(string(respBody))
	if err != nil {
		return 0, err
	}
	logging.APIDebug("http polarity=%.3f", p)
	return p, nil
}
