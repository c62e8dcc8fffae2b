package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

// HTTPClient is the thin transport interface the chat package depends
// on; production code uses httpClient, tests inject a fake.
type HTTPClient interface {
	PostJSON(ctx context.Context, url string, body any) ([]byte, int, error)
	PostForm(ctx context.Context, url string, values url.Values, bearerToken string) ([]byte, int, error)
	PostFileBytes(ctx context.Context, url string, fieldName, filename string, data []byte) ([]byte, int, error)
}

type httpClient struct {
	client *http.Client
}

// NewHTTPClient builds a production HTTPClient with the given per-call
// timeout.
func NewHTTPClient(timeout time.Duration) HTTPClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

func (c *httpClient) PostJSON(ctx context.Context, rawURL string, body any) ([]byte, int, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(data))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("content-type", "application/json")
	return c.do(req)
}

func (c *httpClient) PostForm(ctx context.Context, rawURL string, values url.Values, bearerToken string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader([]byte(values.Encode())))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("content-type", "application/x-www-form-urlencoded")
	if bearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+bearerToken)
	}
	return c.do(req)
}

func (c *httpClient) PostFileBytes(ctx context.Context, rawURL string, fieldName, filename string, data []byte) ([]byte, int, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		return nil, 0, err
	}
	if _, err := part.Write(data); err != nil {
		return nil, 0, err
	}
	if err := writer.Close(); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, &buf)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("content-type", writer.FormDataContentType())
	// No auth header: the upload URL leg is pre-authorized.
	return c.do(req)
}

func (c *httpClient) do(req *http.Request) ([]byte, int, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("reading response body: %w", err)
	}
	return body, resp.StatusCode, nil
}
