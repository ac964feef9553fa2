// Package client is a typed Go client for the Trackr API. GET responses are
// cached per URL until a mutation touching the same resource group clears
// them, so dashboards can poll cheaply and still see their own writes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Group names a family of cached queries.
type Group string

const (
	GroupUser     Group = "User"
	GroupProject  Group = "Project"
	GroupResource Group = "Resource"
	GroupCustomer Group = "Customer"
)

// APIError is returned for every non-2xx response.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trackr: %d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
	cache *queryCache
}

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 30s.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithToken starts the client with a bearer token from an earlier login.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// New returns a client for the API rooted at baseURL, e.g.
// "http://localhost:8080".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   newQueryCache(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken swaps the bearer token and drops every cached response, since
// they were fetched as another principal.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.cache.clear()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// get fetches path into out, serving from the cache when possible.
func (c *Client) get(ctx context.Context, group Group, path string, q url.Values, out any) error {
	key := path
	if len(q) > 0 {
		key += "?" + q.Encode()
	}
	if body, ok := c.cache.get(key); ok {
		return json.Unmarshal(body, out)
	}
	since := c.cache.stamp(group)
	body, err := c.do(ctx, http.MethodGet, key, nil)
	if err != nil {
		return err
	}
	c.cache.put(group, key, body, since)
	return json.Unmarshal(body, out)
}

// mutate sends a write and invalidates the given groups once it succeeded.
func (c *Client) mutate(ctx context.Context, method, path string, q url.Values, in, out any, invalidate ...Group) error {
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	body, err := c.do(ctx, method, path, in)
	if err != nil {
		return err
	}
	c.cache.invalidate(invalidate...)
	if out == nil || len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) do(ctx context.Context, method, path string, in any) ([]byte, error) {
	var reqBody io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api"+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}
	return nil, decodeError(resp.StatusCode, body)
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Code: "unknown", Message: http.StatusText(status)}
	var envelope struct {
		Error *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error != nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		apiErr.Details = envelope.Error.Details
	}
	return apiErr
}
