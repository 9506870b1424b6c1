// Package apitest builds deterministic fixture payloads and a fake API
// server for tests. It is test tooling only: production metrics are computed
// server-side and never pass through this package.
package apitest

import (
	"time"

	"github.com/google/uuid"

	"github.com/reviewdeck/reviewdeck/internal/api"
)

// fixedNow keeps generated timestamps stable across test runs
var fixedNow = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

// Builder produces fixture payloads. Counts are derived from the seed so
// tests can assert on concrete values.
type Builder struct {
	seed int
}

// NewBuilder creates a Builder with the given seed
func NewBuilder(seed int) *Builder {
	return &Builder{seed: seed}
}

// Overview builds an overview metrics payload
func (b *Builder) Overview() *api.OverviewMetrics {
	return &api.OverviewMetrics{
		OpenPRs:         b.seed + 3,
		MergedPRs:       b.seed * 2,
		ActiveReviewers: b.seed,
		SlackThreads:    b.seed + 1,
		AvgReviewHours:  float64(b.seed) * 1.5,
		StatusCounts: map[string]int{
			"open":      b.seed + 3,
			"in_review": b.seed,
			"merged":    b.seed * 2,
		},
	}
}

// Standup builds a standup report with n items
func (b *Builder) Standup(period api.Period, n int) *api.StandupReport {
	report := &api.StandupReport{
		Period:      period,
		GeneratedAt: fixedNow,
	}
	authors := []string{"ana", "bo", "chris", "devon"}
	for i := 0; i < n; i++ {
		report.Items = append(report.Items, api.StandupItem{
			Author:     authors[i%len(authors)],
			Title:      "Update dependency pins",
			Repository: "org/service",
			Status:     "in_review",
			UpdatedAt:  fixedNow.Add(-time.Duration(i) * time.Hour),
		})
	}
	return report
}

// DiscussionPoint builds one discussion point with a fresh id
func (b *Builder) DiscussionPoint(text, pointType string) api.DiscussionPoint {
	return api.DiscussionPoint{
		ID:        uuid.New().String(),
		Text:      text,
		Type:      pointType,
		Author:    "ana",
		CreatedAt: fixedNow,
	}
}

// Analytics builds an analytics report with n buckets
func (b *Builder) Analytics(period api.Period, n int) *api.AnalyticsReport {
	report := &api.AnalyticsReport{Period: period}
	for i := 0; i < n; i++ {
		report.Buckets = append(report.Buckets, api.TimeBucket{
			Start:         fixedNow.AddDate(0, 0, -i),
			Opened:        b.seed + i,
			Merged:        b.seed,
			Reviewed:      b.seed + 2,
			AvgMergeHours: float64(b.seed+i) * 0.5,
		})
	}
	report.TopContributors = []api.Contributor{
		{Name: "ana", Commits: b.seed * 4, CreatedPRs: b.seed, ReviewedPRs: b.seed + 1},
		{Name: "bo", Commits: b.seed * 2, CreatedPRs: b.seed - 1, ReviewedPRs: b.seed},
	}
	return report
}

// Collaboration builds a collaboration report
func (b *Builder) Collaboration(period api.Period) *api.CollaborationReport {
	return &api.CollaborationReport{
		Period: period,
		Edges: []api.ReviewEdge{
			{Reviewer: "ana", Author: "bo", Reviews: b.seed + 2},
			{Reviewer: "bo", Author: "ana", Reviews: b.seed},
		},
		Reviewers: []api.ReviewerLoad{
			{Login: "ana", Assigned: b.seed + 4, Completed: b.seed + 2, AvgTurnaroundHours: 4.2},
			{Login: "bo", Assigned: b.seed, Completed: b.seed, AvgTurnaroundHours: 2.1},
		},
	}
}

// Teams builds n teams with stable ids
func (b *Builder) Teams(n int) []api.Team {
	teams := make([]api.Team, 0, n)
	names := []string{"backend", "frontend", "platform", "mobile"}
	for i := 0; i < n; i++ {
		teams = append(teams, api.Team{
			ID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(names[i%len(names)])).String(),
			Name: names[i%len(names)],
			Members: []api.TeamMember{
				{GitHubLogin: "ana", SlackUserID: "U001", IsAdmin: true},
				{GitHubLogin: "bo", SlackUserID: "U002"},
			},
			CreatedAt: fixedNow,
			UpdatedAt: fixedNow,
		})
	}
	return teams
}

// Repositories builds n connected repositories
func (b *Builder) Repositories(n int) []api.Repository {
	repos := make([]api.Repository, 0, n)
	for i := 0; i < n; i++ {
		repos = append(repos, api.Repository{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(i)}).String(),
			FullName:    "org/service",
			SyncEnabled: true,
			ConnectedAt: fixedNow,
		})
	}
	return repos
}

// Billing builds a usage snapshot
func (b *Builder) Billing(tier string, prCount, limit, users int) *api.BillingInfo {
	return &api.BillingInfo{
		PRCount:          prCount,
		SubscriptionTier: tier,
		Limit:            limit,
		UserCount:        users,
		ResetDate:        fixedNow.AddDate(0, 1, 0),
	}
}
