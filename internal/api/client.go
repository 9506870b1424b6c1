package api

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/reviewdeck/reviewdeck/internal/errors"
)

// TokenSource supplies the bearer token for outbound requests. The persisted
// session store implements it; requests issued without a session carry no
// Authorization header.
type TokenSource interface {
	Token() string
}

// Client is the ReviewDeck API client. It is the single point of egress:
// every request goes through doRequest, which attaches credentials and
// handles the global 401 contract.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	tokens         TokenSource
	onUnauthorized func()
}

// Option configures a Client
type Option func(*Client)

// WithTokenSource injects the session token source
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithUnauthorizedHook registers the callback invoked whenever any endpoint
// answers 401. The hook tears down the persisted session; it runs at most
// once per response, from whatever call stack triggered it.
func WithUnauthorizedHook(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying http.Client (tests)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// NewClient creates a new API client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest performs an HTTP request with authentication. The token is read
// from the source at send time, so a request already in flight keeps the
// header it was built with even if the session is cleared mid-flight.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAPIRequest, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, errors.NewAPIUnreachableError(c.BaseURL, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, errors.NewAuthRequiredError()
	}

	return resp, nil
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// parseResponse parses the response body into the target struct
func parseResponse(resp *http.Response, target interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)

		// Prefer the structured error message when the server sends one
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			if errResp.Error != "" {
				return errors.New(errors.ErrCodeAPIStatus, errResp.Error)
			}
			if errResp.Message != "" {
				return errors.New(errors.ErrCodeAPIStatus, errResp.Message)
			}
		}

		return errors.New(errors.ErrCodeAPIStatus,
			fmt.Sprintf("request failed with status %d: %s", resp.StatusCode, string(body)))
	}

	if target != nil {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			return errors.Wrap(errors.ErrCodeAPIDecode, "failed to decode response", err)
		}
	}

	return nil
}

// IsUnauthorized reports whether err is the 401 session-teardown error
func IsUnauthorized(err error) bool {
	var deckErr *errors.DeckError
	if stderrors.As(err, &deckErr) {
		return deckErr.Code == errors.ErrCodeAuthRequired
	}
	return false
}
