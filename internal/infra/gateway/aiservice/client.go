package aiservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/saverfox/saverfox/internal/shared/apperr"
	"github.com/saverfox/saverfox/pkg/logger"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = time.Second
)

// Config configures the AI service client.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Client is an HTTP client for the adventure AI service. Transient
// failures (network errors, 5xx, 429) are retried with exponential
// backoff; exhaustion surfaces as ServiceUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	retryDelay time.Duration
	logger     *logger.Logger
}

// NewClient creates a new AI service client.
func NewClient(cfg Config, log *logger.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     log.WithField("component", "aiservice"),
	}
}

// GenerateAdventure requests a new scenario.
func (c *Client) GenerateAdventure(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	var resp GenerateResponse
	if err := c.post(ctx, "/api/adventure/generate", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Choices) < 2 {
		return nil, fmt.Errorf("AI service returned %d choices, need at least 2", len(resp.Choices))
	}
	return &resp, nil
}

// EvaluateChoice requests feedback and scores for a selected choice.
func (c *Client) EvaluateChoice(ctx context.Context, req *EvaluateRequest) (*EvaluateResponse, error) {
	var resp EvaluateResponse
	if err := c.post(ctx, "/api/adventure/evaluate", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// post sends a JSON request with retry on transient failures.
// maxRetries bounds the total number of HTTP attempts; backoff doubles
// between them: retryDelay, 2x, 4x.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	reqURL := c.baseURL + path

	backoff := c.retryDelay
	var lastErr error

	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		if attempt > 1 {
			c.logger.Warn("retrying AI request", "path", path, "attempt", attempt, "backoff_ms", backoff.Milliseconds())
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}

		attemptStart := time.Now()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", readErr)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			c.logger.Debug("AI response", "path", path, "duration_ms", time.Since(attemptStart).Milliseconds())
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("failed to decode AI response: %w", err)
			}
			return nil
		}

		if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("AI service error: status %d", resp.StatusCode)
			continue
		}

		// Client errors are not retryable
		c.logger.Error("AI request rejected", "path", path, "status_code", resp.StatusCode)
		return fmt.Errorf("AI service rejected request: status %d, body: %s", resp.StatusCode, string(body))
	}

	c.logger.Error("AI service unavailable", "path", path, "attempts", c.maxRetries, "error", lastErr)
	return apperr.ServiceUnavailable("AI service is unavailable", lastErr)
}
