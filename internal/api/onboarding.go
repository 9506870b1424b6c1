package api

import (
	"context"
	"net/http"
)

// UserMapping links a GitHub login to a Slack user during onboarding
type UserMapping struct {
	GitHubLogin string `json:"github_login"`
	SlackUserID string `json:"slack_user_id"`
	IsAdmin     bool   `json:"is_admin"`
}

// SyncConfig holds the notification settings chosen during onboarding
type SyncConfig struct {
	StandupTime   string `json:"standup_time"`
	Timezone      string `json:"timezone"`
	SlackChannel  string `json:"slack_channel"`
	NotifyOnOpen  bool   `json:"notify_on_open"`
	NotifyOnMerge bool   `json:"notify_on_merge"`
}

// OnboardingStatus is the server-side onboarding progress snapshot. The
// client mirrors it wholesale on every fetch; the current step is derived
// from these flags, not from client navigation history.
type OnboardingStatus struct {
	CurrentStep          string        `json:"current_step"`
	GitHubConnected      bool          `json:"github_connected"`
	SlackConnected       bool          `json:"slack_connected"`
	SelectedRepositories []string      `json:"selected_repositories"`
	UserMappings         []UserMapping `json:"user_mappings"`
	Config               *SyncConfig   `json:"config,omitempty"`
	Completed            bool          `json:"completed"`
}

// GetOnboardingStatus fetches the onboarding progress snapshot
func (c *Client) GetOnboardingStatus(ctx context.Context) (*OnboardingStatus, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/onboarding/status", nil, nil)
	if err != nil {
		return nil, err
	}

	var status OnboardingStatus
	if err := parseResponse(resp, &status); err != nil {
		return nil, err
	}

	return &status, nil
}

// SaveUserMappings persists the GitHub↔Slack user mappings
func (c *Client) SaveUserMappings(ctx context.Context, mappings []UserMapping) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/onboarding/user-mappings", nil, mappings)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}

// CompleteOnboarding persists the sync settings and marks onboarding done
func (c *Client) CompleteOnboarding(ctx context.Context, cfg SyncConfig) error {
	resp, err := c.doRequest(ctx, http.MethodPost, "/onboarding/complete", nil, cfg)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
