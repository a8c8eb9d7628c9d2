// Package notion is a small REST client for the Notion API.
//
// It covers the calls the document tools need: pages, block children,
// databases and their data sources, search, users and comments. Responses are
// decoded into thin structs; property and block payloads stay loosely typed so
// the codecs in sibling packages can interpret them.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vthunder/notion-docs-mcp/config"
)

// ErrMissingToken is returned by NewClient when no integration token is configured.
var ErrMissingToken = errors.New("notion: integration token not set (export NOTION_API_KEY or set notion.token)")

// Client handles Notion API operations.
type Client struct {
	token       string
	baseURL     string
	version     string
	httpClient  *http.Client
	logger      *slog.Logger
	appendPause time.Duration
}

// NewClient creates a client from the remote API configuration.
func NewClient(cfg config.NotionConfig, logger *slog.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, ErrMissingToken
	}
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		token:   cfg.Token,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		version: cfg.Version,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:      logger.With(slog.String("component", "notion")),
		appendPause: 100 * time.Millisecond,
	}, nil
}

// do makes an authenticated request and decodes the JSON response into out
// (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var bodyReader io.Reader
	var bodyLen int
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal body: %w", err)
		}
		bodyLen = len(data)
		bodyReader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.version)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	c.logger.Debug("request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("body_bytes", bodyLen),
		slog.Int("status", resp.StatusCode),
		slog.Int("response_bytes", len(respBody)),
		slog.Duration("elapsed", time.Since(start)))

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp.StatusCode, respBody)
	}
	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func pageQuery(cursor string, size int) url.Values {
	q := url.Values{}
	q.Set("page_size", fmt.Sprint(size))
	if cursor != "" {
		q.Set("start_cursor", cursor)
	}
	return q
}
