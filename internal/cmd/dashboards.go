package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/errors"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show team-wide pull request metrics",
	RunE:  runOverview,
}

var standupCmd = &cobra.Command{
	Use:   "standup",
	Short: "Show the standup report",
	Long: `Show the standup report: recent pull request activity with linked
Slack threads, plus any discussion points the team has raised.

Examples:
  reviewdeck standup
  reviewdeck standup --period weekly --team t-42
  reviewdeck standup --format json`,
	RunE: runStandup,
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Show merge and review-time analytics (Professional)",
	RunE:  runAnalytics,
}

var collaborationCmd = &cobra.Command{
	Use:   "collaboration",
	Short: "Show the review collaboration graph (Professional)",
	RunE:  runCollaboration,
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("period", "", "Reporting period (daily, weekly, monthly)")
	cmd.Flags().String("repo", "", "Limit to one repository ID")
	cmd.Flags().String("team", "", "Limit to one team ID")
}

// filtersFromFlags reads the shared filter flags. Empty values stay empty
// and are omitted from the request, which the server reads as "all".
func filtersFromFlags(cmd *cobra.Command) (api.Filters, error) {
	period, _ := cmd.Flags().GetString("period")
	repo, _ := cmd.Flags().GetString("repo")
	team, _ := cmd.Flags().GetString("team")

	f := api.Filters{Period: api.Period(period), RepoID: repo, TeamID: team}
	if f.Period != "" && !f.Period.Valid() {
		return api.Filters{}, fmt.Errorf("invalid flag --period: %q (valid: daily, weekly, monthly)", period)
	}
	return f, nil
}

// requireFeature consults the cached usage snapshot before a premium call
// so a gated command fails locally instead of with a server round trip.
func requireFeature(cmd *cobra.Command, d *deps, feature string) error {
	access, err := d.usage.Access(cmd.Context())
	if err != nil {
		return err
	}

	allowed := false
	switch feature {
	case "analytics":
		allowed = access.CanAccessAnalytics
	case "collaboration":
		allowed = access.CanAccessCollaboration
	}
	if !allowed {
		return errors.NewFeatureGatedError(feature, string(access.Tier))
	}
	return nil
}

func runOverview(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	metrics, err := d.client.Overview(cmd.Context())
	if err != nil {
		return err
	}

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(metrics)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Open PRs:          %d\n", metrics.OpenPRs)
	fmt.Fprintf(out, "Merged PRs:        %d\n", metrics.MergedPRs)
	fmt.Fprintf(out, "Active reviewers:  %d\n", metrics.ActiveReviewers)
	fmt.Fprintf(out, "Slack threads:     %d\n", metrics.SlackThreads)
	fmt.Fprintf(out, "Avg review time:   %.1fh\n", metrics.AvgReviewHours)
	for status, count := range metrics.StatusCounts {
		fmt.Fprintf(out, "  %-12s %d\n", status+":", count)
	}
	return nil
}

func runStandup(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	filters, err := filtersFromFlags(cmd)
	if err != nil {
		return err
	}

	report, err := d.client.Standup(cmd.Context(), filters)
	if err != nil {
		return err
	}

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Standup (%s)\n\n", report.Period)

	if len(report.Items) == 0 {
		fmt.Fprintln(out, "No pull request activity in this window.")
	}
	for _, item := range report.Items {
		fmt.Fprintf(out, "  %-14s %s [%s] (%s)\n", item.Author, item.Title, item.Status, item.Repository)
		if item.SlackThreadURL != "" {
			fmt.Fprintf(out, "  %-14s %s\n", "", item.SlackThreadURL)
		}
	}

	if len(report.DiscussionPoints) > 0 {
		fmt.Fprintln(out, "\nDiscussion points:")
		for _, dp := range report.DiscussionPoints {
			fmt.Fprintf(out, "  %s  [%s] %s (%s)\n", dp.ID, dp.Type, dp.Text, dp.Author)
		}
	}
	return nil
}

func runAnalytics(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}
	if err := requireFeature(cmd, d, "analytics"); err != nil {
		return err
	}

	filters, err := filtersFromFlags(cmd)
	if err != nil {
		return err
	}

	report, err := d.client.Analytics(cmd.Context(), filters)
	if err != nil {
		return err
	}

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analytics (%s)\n\n", report.Period)
	fmt.Fprintf(out, "  %-10s %7s %7s %9s %11s\n", "Window", "Opened", "Merged", "Reviewed", "Merge time")
	for _, b := range report.Buckets {
		fmt.Fprintf(out, "  %-10s %7d %7d %9d %10.1fh\n",
			b.Start.Format("Jan 02"), b.Opened, b.Merged, b.Reviewed, b.AvgMergeHours)
	}

	if len(report.TopContributors) > 0 {
		fmt.Fprintln(out, "\nTop contributors:")
		for i, c := range report.TopContributors {
			fmt.Fprintf(out, "  %d. %-16s %d PRs, %d reviews\n", i+1, c.Name, c.CreatedPRs, c.ReviewedPRs)
		}
	}
	return nil
}

func runCollaboration(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}
	if err := requireFeature(cmd, d, "collaboration"); err != nil {
		return err
	}

	filters, err := filtersFromFlags(cmd)
	if err != nil {
		return err
	}

	report, err := d.client.Collaboration(cmd.Context(), filters)
	if err != nil {
		return err
	}

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(report)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Collaboration (%s)\n\n", report.Period)
	fmt.Fprintf(out, "  %-16s %9s %6s %11s\n", "Reviewer", "Assigned", "Done", "Turnaround")
	for _, r := range report.Reviewers {
		fmt.Fprintf(out, "  %-16s %9d %6d %10.1fh\n", r.Login, r.Assigned, r.Completed, r.AvgTurnaroundHours)
	}

	if len(report.Edges) > 0 {
		fmt.Fprintln(out, "\nReview pairs:")
		for _, e := range report.Edges {
			fmt.Fprintf(out, "  %s reviewed %s %d time(s)\n", e.Reviewer, e.Author, e.Reviews)
		}
	}
	return nil
}

func init() {
	addFilterFlags(standupCmd)
	addFilterFlags(analyticsCmd)
	addFilterFlags(collaborationCmd)

	rootCmd.AddCommand(overviewCmd)
	rootCmd.AddCommand(standupCmd)
	rootCmd.AddCommand(analyticsCmd)
	rootCmd.AddCommand(collaborationCmd)
}
