// Package apiclient provides a REST API client for chirpctl.
package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// requestTimeout bounds every call, including media transfers.
const requestTimeout = 30 * time.Second

// Client is the chirpd API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
}

// New creates a client for the chirpd REST API at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// WithKey returns a new client with the given api-key.
func (c *Client) WithKey(apiKey string) *Client {
	return &Client{
		baseURL:    c.baseURL,
		httpClient: c.httpClient,
		apiKey:     apiKey,
	}
}

// SetKey sets the api-key used on subsequent requests.
func (c *Client) SetKey(apiKey string) {
	c.apiKey = apiKey
}

// do runs one request against the server and decodes the JSON answer.
func (c *Client) do(method, path string, body, result any) error {
	req, err := c.newRequest(method, path, body)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	return parseResponse(resp, result)
}

// newRequest builds a JSON request with the client's api key attached.
func (c *Client) newRequest(method, path string, body any) (*http.Request, error) {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}
	return req, nil
}

// parseResponse drains a response, mapping error envelopes onto *APIError
// and decoding success payloads into result.
func parseResponse(resp *http.Response, result any) error {
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		return errorFromBody(resp.StatusCode, respBody)
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// errorFromBody prefers the server's structured error envelope and falls
// back to the raw body for proxies that answer in plain text.
func errorFromBody(status int, body []byte) error {
	var apiErr APIError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		apiErr.StatusCode = status
		return &apiErr
	}
	return &APIError{StatusCode: status, Message: string(body)}
}

// get issues a GET and decodes the answer into result.
func (c *Client) get(path string, result any) error {
	return c.do(http.MethodGet, path, nil, result)
}

// post issues a POST with a JSON body.
func (c *Client) post(path string, body, result any) error {
	return c.do(http.MethodPost, path, body, result)
}

// delete issues a DELETE.
func (c *Client) delete(path string, result any) error {
	return c.do(http.MethodDelete, path, nil, result)
}
