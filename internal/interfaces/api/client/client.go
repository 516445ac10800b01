package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hydration/internal/application/dto"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the hydration settings REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client for the server at baseURL, e.g. http://localhost:8080.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Settings fetches the current preference and scheduled notifications.
func (c *Client) Settings(ctx context.Context) (*dto.PreferenceResponse, error) {
	return c.do(ctx, http.MethodGet, "/api/hydration", nil)
}

// SetEnabled turns reminders on or off.
func (c *Client) SetEnabled(ctx context.Context, enabled bool) (*dto.PreferenceResponse, error) {
	return c.do(ctx, http.MethodPut, "/api/hydration/enabled", dto.SetEnabledRequest{Enabled: &enabled})
}

// SetInterval changes the reminder interval.
func (c *Client) SetInterval(ctx context.Context, intervalSeconds int) (*dto.PreferenceResponse, error) {
	return c.do(ctx, http.MethodPut, "/api/hydration/interval", dto.SetIntervalRequest{IntervalSeconds: intervalSeconds})
}

// SendTest asks the server to fire a notification now.
func (c *Client) SendTest(ctx context.Context) (*dto.PreferenceResponse, error) {
	return c.do(ctx, http.MethodPost, "/api/hydration/test", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*dto.PreferenceResponse, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr dto.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			return nil, fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
		}
		return nil, fmt.Errorf("%s %s: %s (status %d)", method, path, apiErr.Error, resp.StatusCode)
	}

	var out dto.PreferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
