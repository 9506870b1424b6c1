package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/billing"
	"github.com/reviewdeck/reviewdeck/internal/state"
)

func testDashboards() *state.Dashboards {
	return &state.Dashboards{
		Overview: state.NewContainer("overview", func(ctx context.Context, _ api.Filters) (*api.OverviewMetrics, error) {
			return &api.OverviewMetrics{OpenPRs: 7, MergedPRs: 3, ActiveReviewers: 4}, nil
		}, nil),
		Standup: state.NewContainer("standup", func(ctx context.Context, f api.Filters) (*api.StandupReport, error) {
			return &api.StandupReport{
				Period: f.Period,
				Items: []api.StandupItem{
					{Author: "octocat", Title: "Fix flaky sync job", Repository: "acme/sync", Status: "open"},
				},
			}, nil
		}, nil),
		Analytics: state.NewContainer("analytics", func(ctx context.Context, _ api.Filters) (*api.AnalyticsReport, error) {
			return nil, errors.New("timeout talking to api")
		}, nil),
		Collaboration: state.NewContainer("collaboration", func(ctx context.Context, _ api.Filters) (*api.CollaborationReport, error) {
			return &api.CollaborationReport{}, nil
		}, nil),
	}
}

func proAccess() billing.Access {
	return billing.Access{
		Tier:                   billing.TierProfessional,
		CanCreatePR:            true,
		CanAccessAnalytics:     true,
		CanAccessCollaboration: true,
	}
}

func readyModel(m DashboardModel) DashboardModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(DashboardModel)
}

func TestDashboardRendersOverviewMetrics(t *testing.T) {
	dashboards := testDashboards()
	dashboards.Overview.Fetch(context.Background())

	m := readyModel(NewDashboardModel(dashboards, proAccess()))

	view := m.View()
	assert.Contains(t, view, "Team Overview")
	assert.Contains(t, view, "Open PRs:          7")
	assert.Contains(t, view, "Active reviewers:  4")
}

func TestDashboardRendersStandupTable(t *testing.T) {
	dashboards := testDashboards()
	dashboards.Standup.SetFilters(api.Filters{Period: api.PeriodWeekly})
	dashboards.Standup.Fetch(context.Background())

	m := readyModel(NewDashboardModel(dashboards, proAccess()))
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	m = updated.(DashboardModel)

	view := m.View()
	assert.Contains(t, view, "Standup")
	assert.Contains(t, view, "weekly")
	assert.Contains(t, view, "octocat")
}

func TestDashboardShowsInlineError(t *testing.T) {
	dashboards := testDashboards()
	dashboards.Analytics.Fetch(context.Background())

	m := readyModel(NewDashboardModel(dashboards, proAccess()))
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	m = updated.(DashboardModel)

	assert.Contains(t, m.View(), "timeout talking to api")
}

func TestDashboardLocksPremiumTabsOnFreeTier(t *testing.T) {
	dashboards := testDashboards()

	access := billing.Access{Tier: billing.TierFree, CanCreatePR: true}
	m := readyModel(NewDashboardModel(dashboards, access))

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	m = updated.(DashboardModel)

	// Locked tabs never trigger a fetch
	assert.Nil(t, cmd)
	assert.Equal(t, state.PhaseIdle, dashboards.Analytics.Snapshot().Phase)

	view := m.View()
	assert.Contains(t, view, "Professional plan")
	assert.Contains(t, view, "reviewdeck upgrade")
}

func TestDashboardQuitKeys(t *testing.T) {
	m := readyModel(NewDashboardModel(testDashboards(), proAccess()))

	for _, key := range []string{"q", "ctrl+c"} {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		if key == "ctrl+c" {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		require.NotNil(t, cmd, "key %s should quit", key)
	}
}

func TestDashboardTabCycling(t *testing.T) {
	m := readyModel(NewDashboardModel(testDashboards(), proAccess()))

	for i := 0; i < 4; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(DashboardModel)
	}
	// Four tab presses wrap back around to the first view
	assert.True(t, strings.Contains(m.renderTabs(), "Overview"))
	assert.Equal(t, ViewOverview, m.view)
}
