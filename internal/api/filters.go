package api

import "net/url"

// Period selects the aggregation window for dashboard metrics
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// Valid reports whether p is one of the supported periods
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return true
	}
	return false
}

// Filters is the (time period, repository, team) tuple controlling which
// slice of metrics a dashboard request asks for.
type Filters struct {
	Period Period
	RepoID string
	TeamID string
}

// Query encodes the filters as query parameters. Empty values are omitted
// entirely rather than sent as empty strings; the server interprets an
// absent parameter as "all".
func (f Filters) Query() url.Values {
	q := url.Values{}
	if f.Period != "" {
		q.Set("period", string(f.Period))
	}
	if f.RepoID != "" {
		q.Set("repoId", f.RepoID)
	}
	if f.TeamID != "" {
		q.Set("teamId", f.TeamID)
	}
	return q
}
