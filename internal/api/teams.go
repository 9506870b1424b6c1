package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// TeamMember maps one GitHub login to its Slack identity within a team
type TeamMember struct {
	GitHubLogin string `json:"github_login"`
	SlackUserID string `json:"slack_user_id"`
	IsAdmin     bool   `json:"is_admin"`
}

// Team represents a ReviewDeck team
type Team struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Members   []TeamMember `json:"members"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// TeamRequest carries a team create or update
type TeamRequest struct {
	Name    string       `json:"name"`
	Members []TeamMember `json:"members,omitempty"`
}

// ListTeams retrieves all teams in the organization
func (c *Client) ListTeams(ctx context.Context) ([]Team, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/dashboard/teams", nil, nil)
	if err != nil {
		return nil, err
	}

	var teams []Team
	if err := parseResponse(resp, &teams); err != nil {
		return nil, err
	}

	return teams, nil
}

// CreateTeam creates a new team
func (c *Client) CreateTeam(ctx context.Context, req TeamRequest) (*Team, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/dashboard/teams", nil, req)
	if err != nil {
		return nil, err
	}

	var team Team
	if err := parseResponse(resp, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

// UpdateTeam updates an existing team
func (c *Client) UpdateTeam(ctx context.Context, teamID string, req TeamRequest) (*Team, error) {
	path := fmt.Sprintf("/dashboard/teams/%s", teamID)
	resp, err := c.doRequest(ctx, http.MethodPut, path, nil, req)
	if err != nil {
		return nil, err
	}

	var team Team
	if err := parseResponse(resp, &team); err != nil {
		return nil, err
	}

	return &team, nil
}

// DeleteTeam deletes a team
func (c *Client) DeleteTeam(ctx context.Context, teamID string) error {
	path := fmt.Sprintf("/dashboard/teams/%s", teamID)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
