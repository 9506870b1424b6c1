package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// OverviewMetrics is the general dashboard payload
type OverviewMetrics struct {
	OpenPRs         int            `json:"open_prs"`
	MergedPRs       int            `json:"merged_prs"`
	ActiveReviewers int            `json:"active_reviewers"`
	SlackThreads    int            `json:"slack_threads"`
	AvgReviewHours  float64        `json:"avg_review_hours"`
	StatusCounts    map[string]int `json:"status_counts"`
}

// StandupItem is one pull request line in the standup report
type StandupItem struct {
	Author         string    `json:"author"`
	Title          string    `json:"title"`
	Repository     string    `json:"repository"`
	Status         string    `json:"status"`
	SlackThreadURL string    `json:"slack_thread_url,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DiscussionPoint is a team-raised note attached to a standup
type DiscussionPoint struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

// StandupReport is the standup dashboard payload
type StandupReport struct {
	Period           Period            `json:"period"`
	GeneratedAt      time.Time         `json:"generated_at"`
	Items            []StandupItem     `json:"items"`
	DiscussionPoints []DiscussionPoint `json:"discussion_points"`
}

// TimeBucket is one point in the analytics time series
type TimeBucket struct {
	Start            time.Time `json:"start"`
	Opened           int       `json:"opened"`
	Merged           int       `json:"merged"`
	Reviewed         int       `json:"reviewed"`
	AvgMergeHours    float64   `json:"avg_merge_hours"`
	AvgFirstReviewHr float64   `json:"avg_first_review_hours"`
}

// Contributor summarizes one author's activity in the window
type Contributor struct {
	Name        string `json:"name"`
	Commits     int    `json:"commits"`
	CreatedPRs  int    `json:"created_prs"`
	ReviewedPRs int    `json:"reviewed_prs"`
}

// AnalyticsReport is the analytics dashboard payload
type AnalyticsReport struct {
	Period          Period        `json:"period"`
	Buckets         []TimeBucket  `json:"buckets"`
	TopContributors []Contributor `json:"top_contributors"`
}

// ReviewEdge is one reviewer→author edge in the collaboration graph
type ReviewEdge struct {
	Reviewer string `json:"reviewer"`
	Author   string `json:"author"`
	Reviews  int    `json:"reviews"`
}

// ReviewerLoad summarizes one reviewer's queue
type ReviewerLoad struct {
	Login              string  `json:"login"`
	Assigned           int     `json:"assigned"`
	Completed          int     `json:"completed"`
	AvgTurnaroundHours float64 `json:"avg_turnaround_hours"`
}

// CollaborationReport is the collaboration dashboard payload
type CollaborationReport struct {
	Period    Period         `json:"period"`
	Edges     []ReviewEdge   `json:"edges"`
	Reviewers []ReviewerLoad `json:"reviewers"`
}

// Overview retrieves the general dashboard payload
func (c *Client) Overview(ctx context.Context) (*OverviewMetrics, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/dashboard/metrics", nil, nil)
	if err != nil {
		return nil, err
	}

	var metrics OverviewMetrics
	if err := parseResponse(resp, &metrics); err != nil {
		return nil, err
	}

	return &metrics, nil
}

// Standup retrieves the standup payload for the given filters
func (c *Client) Standup(ctx context.Context, f Filters) (*StandupReport, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/dashboard/standup", f.Query(), nil)
	if err != nil {
		return nil, err
	}

	var report StandupReport
	if err := parseResponse(resp, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// Analytics retrieves the analytics payload for the given filters
func (c *Client) Analytics(ctx context.Context, f Filters) (*AnalyticsReport, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/dashboard/analytics", f.Query(), nil)
	if err != nil {
		return nil, err
	}

	var report AnalyticsReport
	if err := parseResponse(resp, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// Collaboration retrieves the collaboration payload for the given filters
func (c *Client) Collaboration(ctx context.Context, f Filters) (*CollaborationReport, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/dashboard/collaboration", f.Query(), nil)
	if err != nil {
		return nil, err
	}

	var report CollaborationReport
	if err := parseResponse(resp, &report); err != nil {
		return nil, err
	}

	return &report, nil
}

// CreateDiscussionPointRequest carries a new standup discussion point
type CreateDiscussionPointRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// CreateDiscussionPoint persists a discussion point on the standup board
func (c *Client) CreateDiscussionPoint(ctx context.Context, text, pointType string) (*DiscussionPoint, error) {
	req := CreateDiscussionPointRequest{
		Text: text,
		Type: pointType,
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/dashboard/standup/discussion-points", nil, req)
	if err != nil {
		return nil, err
	}

	var point DiscussionPoint
	if err := parseResponse(resp, &point); err != nil {
		return nil, err
	}

	return &point, nil
}

// DeleteDiscussionPoint removes a discussion point by id
func (c *Client) DeleteDiscussionPoint(ctx context.Context, id string) error {
	path := fmt.Sprintf("/dashboard/standup/discussion-points/%s", id)
	resp, err := c.doRequest(ctx, http.MethodDelete, path, nil, nil)
	if err != nil {
		return err
	}

	return parseResponse(resp, nil)
}
