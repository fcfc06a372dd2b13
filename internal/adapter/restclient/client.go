package restclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "user-console/pkg/errors"
)

const (
	jsonContentType = "application/json"
	// maxErrorBody caps how much of an error body ends up in an error message
	maxErrorBody = 512
)

// Config holds the settings of a backend client
type Config struct {
	BaseURL        string
	ServiceName    string
	ServiceVersion string
}

// Client performs JSON requests against the users backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for cfg. base is the underlying round tripper; nil uses a pooled transport.
func New(cfg Config, base http.RoundTripper, log *zap.Logger) *Client {
	transport := NewTransport(base,
		UserAgent(cfg.ServiceName, cfg.ServiceVersion),
		RequestID(),
		Logging(log),
	)
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: transport},
	}
}

// do sends a request with an optional JSON body and decodes a 2xx response into out.
// A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", jsonContentType)
	if body != nil {
		req.Header.Set("Content-Type", jsonContentType+"; charset=utf-8")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperrors.NewHTTPError(method, url, resp.StatusCode, errorMessage(raw))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} or {"detail": "..."} from an error body,
// falling back to the raw text.
func errorMessage(raw []byte) string {
	var body struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Detail != "" {
			return body.Detail
		}
	}
	return strings.TrimSpace(string(raw))
}
