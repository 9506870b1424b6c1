package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"

	"github.com/reviewdeck/reviewdeck/internal/state"
)

func (m DashboardModel) renderOverview() string {
	snap := m.dashboards.Overview.Snapshot()
	switch snap.Phase {
	case state.PhaseLoading:
		return m.loadingLine()
	case state.PhaseError:
		return m.styles.Error.Render("✗ " + snap.Err)
	case state.PhaseIdle:
		return m.styles.Muted.Render("press r to load")
	}

	metrics := snap.Payload
	out := m.styles.Title.Render("Team Overview") + "\n\n"
	out += fmt.Sprintf("  Open PRs:          %d\n", metrics.OpenPRs)
	out += fmt.Sprintf("  Merged PRs:        %d\n", metrics.MergedPRs)
	out += fmt.Sprintf("  Active reviewers:  %d\n", metrics.ActiveReviewers)
	out += fmt.Sprintf("  Slack threads:     %d\n", metrics.SlackThreads)
	out += fmt.Sprintf("  Avg review time:   %.1fh\n", metrics.AvgReviewHours)
	return out
}

func (m DashboardModel) renderStandup() string {
	snap := m.dashboards.Standup.Snapshot()
	switch snap.Phase {
	case state.PhaseLoading:
		return m.loadingLine()
	case state.PhaseError:
		return m.styles.Error.Render("✗ " + snap.Err)
	case state.PhaseIdle:
		return m.styles.Muted.Render("press r to load")
	}

	report := snap.Payload
	out := m.styles.Title.Render("Standup") + " " + m.styles.Muted.Render(string(report.Period)) + "\n\n"

	if len(report.Items) == 0 {
		out += m.styles.Muted.Render("No pull request activity in this window.") + "\n"
	} else {
		rows := make([]table.Row, 0, len(report.Items))
		for _, item := range report.Items {
			rows = append(rows, table.Row{item.Author, item.Title, item.Repository, item.Status})
		}
		t := newTable([]table.Column{
			{Title: "Author", Width: 14},
			{Title: "Title", Width: 38},
			{Title: "Repository", Width: 20},
			{Title: "Status", Width: 10},
		}, rows, min(len(rows)+1, 12))
		out += t.View() + "\n"
	}

	if len(report.DiscussionPoints) > 0 {
		out += "\n" + m.styles.Subtitle.Render("Discussion points") + "\n"
		for _, dp := range report.DiscussionPoints {
			out += fmt.Sprintf("  • [%s] %s (%s)\n", dp.Type, dp.Text, dp.Author)
		}
	}
	return out
}

func (m DashboardModel) renderAnalytics() string {
	snap := m.dashboards.Analytics.Snapshot()
	switch snap.Phase {
	case state.PhaseLoading:
		return m.loadingLine()
	case state.PhaseError:
		return m.styles.Error.Render("✗ " + snap.Err)
	case state.PhaseIdle:
		return m.styles.Muted.Render("press r to load")
	}

	report := snap.Payload
	out := m.styles.Title.Render("Analytics") + " " + m.styles.Muted.Render(string(report.Period)) + "\n\n"

	if len(report.Buckets) > 0 {
		rows := make([]table.Row, 0, len(report.Buckets))
		for _, b := range report.Buckets {
			rows = append(rows, table.Row{
				b.Start.Format("Jan 02"),
				fmt.Sprintf("%d", b.Opened),
				fmt.Sprintf("%d", b.Merged),
				fmt.Sprintf("%d", b.Reviewed),
				fmt.Sprintf("%.1fh", b.AvgMergeHours),
			})
		}
		t := newTable([]table.Column{
			{Title: "Window", Width: 10},
			{Title: "Opened", Width: 8},
			{Title: "Merged", Width: 8},
			{Title: "Reviewed", Width: 9},
			{Title: "Merge time", Width: 11},
		}, rows, min(len(rows)+1, 12))
		out += t.View() + "\n"
	}

	if len(report.TopContributors) > 0 {
		out += "\n" + m.styles.Subtitle.Render("Top contributors") + "\n"
		for i, c := range report.TopContributors {
			out += fmt.Sprintf("  %d. %-16s %d PRs, %d reviews\n", i+1, c.Name, c.CreatedPRs, c.ReviewedPRs)
		}
	}
	return out
}

func (m DashboardModel) renderCollaboration() string {
	snap := m.dashboards.Collaboration.Snapshot()
	switch snap.Phase {
	case state.PhaseLoading:
		return m.loadingLine()
	case state.PhaseError:
		return m.styles.Error.Render("✗ " + snap.Err)
	case state.PhaseIdle:
		return m.styles.Muted.Render("press r to load")
	}

	report := snap.Payload
	out := m.styles.Title.Render("Collaboration") + " " + m.styles.Muted.Render(string(report.Period)) + "\n\n"

	if len(report.Reviewers) > 0 {
		rows := make([]table.Row, 0, len(report.Reviewers))
		for _, r := range report.Reviewers {
			rows = append(rows, table.Row{
				r.Login,
				fmt.Sprintf("%d", r.Assigned),
				fmt.Sprintf("%d", r.Completed),
				fmt.Sprintf("%.1fh", r.AvgTurnaroundHours),
			})
		}
		t := newTable([]table.Column{
			{Title: "Reviewer", Width: 16},
			{Title: "Assigned", Width: 9},
			{Title: "Done", Width: 6},
			{Title: "Turnaround", Width: 11},
		}, rows, min(len(rows)+1, 12))
		out += t.View() + "\n"
	}

	if len(report.Edges) > 0 {
		out += "\n" + m.styles.Subtitle.Render("Review pairs") + "\n"
		for _, e := range report.Edges {
			out += fmt.Sprintf("  %s → %s  ×%d\n", e.Reviewer, e.Author, e.Reviews)
		}
	}
	return out
}
