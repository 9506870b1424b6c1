package api

import (
	"context"
	"net/http"
	"time"
)

// Repository is a GitHub repository connected to the organization
type Repository struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Private     bool      `json:"private"`
	SyncEnabled bool      `json:"sync_enabled"`
	ConnectedAt time.Time `json:"connected_at"`
}

// ListRepositories retrieves the repositories visible to the GitHub installation
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/github/repositories", nil, nil)
	if err != nil {
		return nil, err
	}

	var repos []Repository
	if err := parseResponse(resp, &repos); err != nil {
		return nil, err
	}

	return repos, nil
}

type redirectURLResponse struct {
	URL string `json:"url"`
}

// GitHubInstallationURL returns the URL to install the GitHub app
func (c *Client) GitHubInstallationURL(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/github/installation-url", nil, nil)
	if err != nil {
		return "", err
	}

	var out redirectURLResponse
	if err := parseResponse(resp, &out); err != nil {
		return "", err
	}

	return out.URL, nil
}

// SlackAuthURL returns the URL that starts the Slack OAuth flow
func (c *Client) SlackAuthURL(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/slack/auth-url", nil, nil)
	if err != nil {
		return "", err
	}

	var out redirectURLResponse
	if err := parseResponse(resp, &out); err != nil {
		return "", err
	}

	return out.URL, nil
}
