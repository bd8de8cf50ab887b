// Package bungie implements the game vendor API client: account resolution,
// raw store records, manifest definitions and the optional review feed.
package bungie

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client is a thin HTTP client for the vendor's platform API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// ClientConfig holds vendor API settings.
type ClientConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a vendor API client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// envelope is the wrapper every platform API response carries.
type envelope struct {
	Response  json.RawMessage `json:"Response"`
	ErrorCode int             `json:"ErrorCode"`
	Message   string          `json:"Message"`
}

const errorCodeSuccess = 1

// get performs an authenticated GET against the platform API and decodes the
// response payload into result.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vendor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vendor API returned status %d for %s", resp.StatusCode, path)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("failed to decode vendor response: %w", err)
	}
	if env.ErrorCode != errorCodeSuccess {
		return fmt.Errorf("vendor API error %d: %s", env.ErrorCode, env.Message)
	}

	if result == nil {
		return nil
	}
	if err := json.Unmarshal(env.Response, result); err != nil {
		return fmt.Errorf("failed to parse vendor payload: %w", err)
	}
	return nil
}

// post performs an authenticated POST with a JSON body. The response payload
// is discarded.
func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("vendor request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("vendor API returned status %d for %s", resp.StatusCode, path)
	}
	return nil
}
