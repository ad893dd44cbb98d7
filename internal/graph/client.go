// Package graph is a minimal client for the Meta Graph API shared by the
// Facebook, Instagram, and WhatsApp adapters. It owns authentication, JSON
// codecs, and normalization of non-2xx responses into BridgeErrors.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kart-io/metahub/core"
	"github.com/kart-io/metahub/core/errors"
)

// DefaultBaseURL is the Graph API host; the API version is appended per
// client
const DefaultBaseURL = "https://graph.facebook.com"

// DefaultTimeout bounds a single upstream exchange
const DefaultTimeout = 30 * time.Second

// Client performs authenticated Graph API calls for one platform
type Client struct {
	platform    core.Platform
	baseURL     string
	apiVersion  string
	accessToken string
	httpClient  *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL overrides the Graph API host, used by tests to point at a
// local double
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout overrides the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a Graph API client for one platform
func NewClient(platform core.Platform, accessToken, apiVersion string, opts ...Option) *Client {
	c := &Client{
		platform:    platform,
		baseURL:     DefaultBaseURL,
		apiVersion:  apiVersion,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET against path (relative to the versioned base URL) and
// decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return errors.NewNetwork(c.platform.String(), err)
	}
	return c.do(req, out)
}

// Post sends payload as JSON to path and decodes the response into out
func (c *Client) Post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.NewNetwork(c.platform.String(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(body))
	if err != nil {
		return errors.NewNetwork(c.platform.String(), err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NewNetwork(c.platform.String(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.NewNetwork(c.platform.String(), err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.FromResponse(c.platform.String(), resp, body)
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return errors.NewNetwork(c.platform.String(), fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

// endpoint builds <base>/<version>/<path> with the access token appended as
// a query parameter, the authentication scheme the Graph API documents.
func (c *Client) endpoint(path string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	query.Set("access_token", c.accessToken)
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, c.apiVersion, strings.TrimLeft(path, "/"), query.Encode())
}
