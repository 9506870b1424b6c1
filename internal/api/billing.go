package api

import (
	"context"
	"net/http"
	"time"
)

// BillingInfo is the server's usage snapshot for the organization
type BillingInfo struct {
	PRCount          int       `json:"pr_count"`
	SubscriptionTier string    `json:"subscription_tier"`
	Limit            int       `json:"limit"`
	ResetDate        time.Time `json:"reset_date"`
	UserCount        int       `json:"user_count"`
}

// GetBillingInfo fetches the current usage snapshot
func (c *Client) GetBillingInfo(ctx context.Context) (*BillingInfo, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/billing/info", nil, nil)
	if err != nil {
		return nil, err
	}

	var info BillingInfo
	if err := parseResponse(resp, &info); err != nil {
		return nil, err
	}

	return &info, nil
}

// CreateCheckout asks the server for an upgrade checkout URL
func (c *Client) CreateCheckout(ctx context.Context) (string, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/billing/checkout", nil, nil)
	if err != nil {
		return "", err
	}

	var out redirectURLResponse
	if err := parseResponse(resp, &out); err != nil {
		return "", err
	}

	return out.URL, nil
}
