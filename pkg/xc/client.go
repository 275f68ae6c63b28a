// Package xc talks to the F5 Distributed Cloud (Volterra) management API.
// It lists namespaces and the namespace-scoped resource collections under them.
package xc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// HeaderAuthorization carries the API token.
const HeaderAuthorization = "Authorization"

// maxErrorBody caps how much of a failed response body is kept for diagnostics.
const maxErrorBody = 4096

// Client issues authenticated GET requests against a tenant API root.
// It is not safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewClient validates the configuration and creates a Client.
// A nil logger disables logging.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Client{
		cfg:     cfg,
		http:    cfg.HTTPClient,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
	}, nil
}

// Tenant returns the tenant the client is bound to.
func (c *Client) Tenant() string {
	return c.cfg.TenantName
}

// APIRoot returns the resolved API root.
func (c *Client) APIRoot() string {
	return c.cfg.APIRoot
}

// Request performs one GET of path under the API root and decodes the JSON object body.
func (c *Client) Request(ctx context.Context, path string) (map[string]any, error) {
	url := c.cfg.APIRoot + path

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(HeaderAuthorization, "APIToken "+c.cfg.Credential)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("GET", zap.String("url", url))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{URL: url, StatusCode: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}

	var parsed map[string]any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &MalformedResponse{URL: url, Err: err}
	}
	if parsed == nil {
		// "null" decodes without error
		parsed = map[string]any{}
	}

	return parsed, nil
}
