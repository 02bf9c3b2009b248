// pkg/client/client.go
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/pfman/portfolio-import/pkg/model"
)

// ErrSubmissionInFlight is returned when a submission is attempted while a
// previous one has not finished. One submission per wizard instance at a
// time; there is no queue.
var ErrSubmissionInFlight = errors.New("a submission is already in progress")

// PortfolioAPI defines the interface to the portfolio backend
type PortfolioAPI interface {
	// CreatePortfolio submits the assembled payload
	CreatePortfolio(ctx context.Context, payload *model.CreatePortfolioPayload) error
}

// Client submits portfolio payloads over HTTP. A non-2xx response surfaces
// the server's message verbatim when the body carries one.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	inFlight   atomic.Bool
}

// NewClient creates a new Client for the given API base URL
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("API base URL cannot be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid API base URL: %w", err)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// serverError is the shape of an error body the backend may return.
type serverError struct {
	Message string `json:"message"`
}

// CreatePortfolio performs the single POST to the portfolio-creation
// endpoint. No retries; a failure leaves the caller free to resubmit.
func (c *Client) CreatePortfolio(ctx context.Context, payload *model.CreatePortfolioPayload) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrSubmissionInFlight
	}
	defer c.inFlight.Store(false)

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	endpoint := c.baseURL + "/api/portfolio/"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	c.logger.Info("Submitting portfolio",
		zap.String("endpoint", endpoint),
		zap.Int("properties", len(payload.Properties)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Portfolio submission failed", zap.Error(err))
		return fmt.Errorf("failed to submit portfolio: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.New(errorMessage(resp.StatusCode, respBody))
	}

	// Success needs a JSON body; its content is not used beyond that.
	var ack json.RawMessage
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	c.logger.Info("Portfolio submitted",
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	return nil
}

// errorMessage extracts the server-provided message from an error response,
// falling back to a generic "HTTP <status>" form when the body is not JSON or
// carries no message.
func errorMessage(status int, body []byte) string {
	var se serverError
	if err := json.Unmarshal(body, &se); err == nil && se.Message != "" {
		return se.Message
	}
	return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
}
