package api

import (
	"testing"
)

func TestFiltersQueryOmitsEmptyValues(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{
			name:    "all filters set",
			filters: Filters{Period: PeriodWeekly, RepoID: "repo-1", TeamID: "team-9"},
			want:    "period=weekly&repoId=repo-1&teamId=team-9",
		},
		{
			name:    "repo and team absent mean all",
			filters: Filters{Period: PeriodDaily},
			want:    "period=daily",
		},
		{
			name:    "zero filters produce empty query",
			filters: Filters{},
			want:    "",
		},
		{
			name:    "team only",
			filters: Filters{TeamID: "team-2"},
			want:    "teamId=team-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filters.Query().Encode()
			if got != tt.want {
				t.Errorf("Query() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPeriodValid(t *testing.T) {
	for _, p := range []Period{PeriodDaily, PeriodWeekly, PeriodMonthly} {
		if !p.Valid() {
			t.Errorf("%s should be valid", p)
		}
	}
	if Period("hourly").Valid() {
		t.Error("hourly should not be valid")
	}
	if Period("").Valid() {
		t.Error("empty period should not be valid")
	}
}
