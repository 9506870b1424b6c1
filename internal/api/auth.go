package api

import (
	"context"
	"net/http"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse represents a login response
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// User represents a ReviewDeck user
type User struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	GitHubLogin    string `json:"github_login"`
	Role           string `json:"role"`
}

// Login authenticates with the platform and returns the bearer token
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", nil, req)
	if err != nil {
		return nil, err
	}

	var loginResp LoginResponse
	if err := parseResponse(resp, &loginResp); err != nil {
		return nil, err
	}

	return &loginResp, nil
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Name             string `json:"name"`
	OrganizationName string `json:"organization_name,omitempty"`
}

// Register creates a new account and organization, then logs in
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*LoginResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", nil, req)
	if err != nil {
		return nil, err
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}

	return c.Login(ctx, req.Email, req.Password)
}

// CurrentUser retrieves the currently authenticated user
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := parseResponse(resp, &user); err != nil {
		return nil, err
	}

	return &user, nil
}
