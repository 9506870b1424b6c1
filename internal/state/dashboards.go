package state

import (
	"context"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/log"
)

// Dashboards bundles one container per dashboard. Filters are not shared:
// changing the standup period does not touch the analytics selection.
type Dashboards struct {
	Overview      *Container[*api.OverviewMetrics]
	Standup       *Container[*api.StandupReport]
	Analytics     *Container[*api.AnalyticsReport]
	Collaboration *Container[*api.CollaborationReport]
	Teams         *Container[[]api.Team]
	Repositories  *Container[[]api.Repository]
}

// NewDashboards wires each container to its gateway call
func NewDashboards(client *api.Client, logger *log.Logger) *Dashboards {
	return &Dashboards{
		Overview: NewContainer("overview", func(ctx context.Context, _ api.Filters) (*api.OverviewMetrics, error) {
			return client.Overview(ctx)
		}, logger),
		Standup: NewContainer("standup", func(ctx context.Context, f api.Filters) (*api.StandupReport, error) {
			return client.Standup(ctx, f)
		}, logger),
		Analytics: NewContainer("analytics", func(ctx context.Context, f api.Filters) (*api.AnalyticsReport, error) {
			return client.Analytics(ctx, f)
		}, logger),
		Collaboration: NewContainer("collaboration", func(ctx context.Context, f api.Filters) (*api.CollaborationReport, error) {
			return client.Collaboration(ctx, f)
		}, logger),
		Teams: NewContainer("teams", func(ctx context.Context, _ api.Filters) ([]api.Team, error) {
			return client.ListTeams(ctx)
		}, logger),
		Repositories: NewContainer("repositories", func(ctx context.Context, _ api.Filters) ([]api.Repository, error) {
			return client.ListRepositories(ctx)
		}, logger),
	}
}
