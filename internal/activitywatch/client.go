package activitywatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient is the thin injectable wrapper the provider issues requests
// through. Production code uses NewHTTPClient; tests inject a fake.
type HTTPClient interface {
	Get(ctx context.Context, url string) ([]byte, int, error)
	PostJSON(ctx context.Context, url string, body any) ([]byte, int, error)
}

// httpClient is the production HTTPClient, backed by net/http with a
// per-call timeout. Modeled on the direct net/http usage in
// claudewatch/internal/fixer/ai.go's callClaudeAPI.
type httpClient struct {
	client *http.Client
}

// NewHTTPClient builds a production HTTPClient with the given per-call
// timeout.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) Get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	return c.do(req)
}

func (c *httpClient) PostJSON(ctx context.Context, url string, body any) ([]byte, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *httpClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return data, resp.StatusCode, nil
}
