package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HealthStatus is the server's health envelope.
type HealthStatus struct {
	Status    string         `json:"status"`
	Timestamp time.Time      `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Healthy reports whether the probe came back healthy.
func (s *HealthStatus) Healthy() bool {
	return s.Status == "healthy"
}

// Health returns the liveness status of the server.
func (c *Client) Health() (*HealthStatus, error) {
	return c.health("/health")
}

// Ready returns the readiness status of the server. An unhealthy
// readiness probe is a decoded status, not an error; the caller decides
// what to do with it.
func (c *Client) Ready() (*HealthStatus, error) {
	return c.health("/health/ready")
}

// health fetches a probe endpoint. Health endpoints answer 503 with the
// same envelope as 200, so both decode instead of going through the
// error path.
func (c *Client) health(path string) (*HealthStatus, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusServiceUnavailable {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}

	var status HealthStatus
	if err := json.Unmarshal(respBody, &status); err != nil {
		return nil, fmt.Errorf("failed to decode health response: %w", err)
	}
	return &status, nil
}
