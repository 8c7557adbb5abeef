// Package stats reads the BizFindr counters endpoint, keeps the navbar stat
// current on a fixed period, and triggers server-side refreshes.
package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	statsPath   = "/api/stats"
	refreshPath = "/api/refresh"
	userAgent   = "bizfindr-client"
)

// ErrMissingTotal is returned when the stats payload has no usable
// total_registrations field.
var ErrMissingTotal = errors.New("missing total_registrations")

// Stats is the decoded /api/stats payload. Fields keeps every key the server
// sent, including ones this client does not interpret.
type Stats struct {
	TotalRegistrations int64                      `json:"total_registrations"`
	LastUpdated        string                     `json:"last_updated,omitempty"`
	Fields             map[string]json.RawMessage `json:"-"`
}

// RefreshResult is the decoded /api/refresh payload.
type RefreshResult struct {
	Success bool   `json:"success"`
	Count   int64  `json:"count,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Source provides stats snapshots to an Updater.
type Source interface {
	Stats(ctx context.Context) (Stats, error)
}

// Client talks to a BizFindr server.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ Source = (*Client)(nil)

// NewClient creates a client for baseURL. A zero timeout means no timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the server root without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Stats fetches the current counters.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	body, err := c.do(ctx, http.MethodGet, statsPath, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("fetch stats: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w", err)
	}

	raw, ok := fields["total_registrations"]
	if !ok {
		return Stats{}, fmt.Errorf("decode stats: %w", ErrMissingTotal)
	}

	var total int64
	if err := json.Unmarshal(raw, &total); err != nil {
		return Stats{}, fmt.Errorf("decode stats: %w: %w", ErrMissingTotal, err)
	}

	st := Stats{TotalRegistrations: total, Fields: fields}
	if raw, ok := fields["last_updated"]; ok {
		// null and non-string values leave LastUpdated empty.
		_ = json.Unmarshal(raw, &st.LastUpdated)
	}

	return st, nil
}

// Refresh asks the server to reload its data. A decoded result with
// Success=false is not an error; callers inspect it.
func (c *Client) Refresh(ctx context.Context) (RefreshResult, error) {
	body, err := c.do(ctx, http.MethodPost, refreshPath, func(req *http.Request) {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
	})
	if err != nil {
		return RefreshResult{}, fmt.Errorf("refresh: %w", err)
	}

	var result RefreshResult
	if err := json.Unmarshal(body, &result); err != nil {
		return RefreshResult{}, fmt.Errorf("decode refresh: %w", err)
	}

	return result, nil
}

func (c *Client) do(ctx context.Context, method, path string, prepare func(*http.Request)) ([]byte, error) {
	var reqBody io.Reader
	if method == http.MethodPost {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if prepare != nil {
		prepare(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Str("path", path).Msg("close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The refresh endpoint reports failures as JSON with a non-2xx status.
		if path == refreshPath && json.Valid(body) {
			return body, nil
		}
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	return body, nil
}
