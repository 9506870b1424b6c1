package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/billing"
	"github.com/reviewdeck/reviewdeck/internal/onboarding"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workspace and account status",
	Long: `Display an overview of the ReviewDeck workspace state.

Status information includes:
  • Authentication (who is logged in)
  • Integrations (GitHub app, Slack workspace)
  • Onboarding progress
  • Plan usage

Examples:
  # Display status in default text format
  reviewdeck status

  # Output as JSON for scripting
  reviewdeck status --format json`,
	RunE: runStatus,
}

// StatusReport represents the complete workspace status
type StatusReport struct {
	Timestamp  string             `json:"timestamp"`
	Account    AccountStatus      `json:"account"`
	Onboarding *OnboardingSummary `json:"onboarding,omitempty"`
	Plan       *PlanSummary       `json:"plan,omitempty"`
	Issues     []string           `json:"issues,omitempty"`
	NextSteps  []string           `json:"next_steps,omitempty"`
	Healthy    bool               `json:"healthy"`
}

// AccountStatus describes the local session
type AccountStatus struct {
	LoggedIn bool   `json:"logged_in"`
	Email    string `json:"email,omitempty"`
	UserID   string `json:"user_id,omitempty"`
}

// OnboardingSummary describes workspace setup progress
type OnboardingSummary struct {
	CurrentStep     string `json:"current_step"`
	GitHubConnected bool   `json:"github_connected"`
	SlackConnected  bool   `json:"slack_connected"`
	Repositories    int    `json:"repositories"`
	UserMappings    int    `json:"user_mappings"`
	Completed       bool   `json:"completed"`
}

// PlanSummary describes plan usage
type PlanSummary struct {
	Tier     string `json:"tier"`
	PRCount  int    `json:"pr_count"`
	Limit    int    `json:"limit"`
	Warnings int    `json:"warnings"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	report := buildStatusReport(cmd, d)

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(report)
	}

	return printStatus(cmd, d, report)
}

func buildStatusReport(cmd *cobra.Command, d *deps) *StatusReport {
	report := &StatusReport{
		Timestamp: time.Now().Format(time.RFC3339),
		Healthy:   true,
	}

	sess := d.store.Current()
	report.Account = AccountStatus{
		LoggedIn: sess.IsAuthenticated,
		Email:    sess.Email,
		UserID:   sess.UserID,
	}
	if !sess.IsAuthenticated {
		report.Healthy = false
		report.NextSteps = append(report.NextSteps, "Run 'reviewdeck login' to sign in")
		return report
	}

	ctx := cmd.Context()

	if status, err := d.client.GetOnboardingStatus(ctx); err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("onboarding status unavailable: %v", err))
		report.Healthy = false
	} else {
		step := onboarding.DeriveStep(*status)
		report.Onboarding = &OnboardingSummary{
			CurrentStep:     string(step),
			GitHubConnected: status.GitHubConnected,
			SlackConnected:  status.SlackConnected,
			Repositories:    len(status.SelectedRepositories),
			UserMappings:    len(status.UserMappings),
			Completed:       status.Completed,
		}
		if !status.Completed {
			report.Healthy = false
			report.NextSteps = append(report.NextSteps, "Run 'reviewdeck onboard' to finish setup")
		}
	}

	if info, err := d.usage.Get(ctx); err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("plan usage unavailable: %v", err))
	} else {
		access := billing.Derive(*info)
		report.Plan = &PlanSummary{
			Tier:     string(access.Tier),
			PRCount:  info.PRCount,
			Limit:    effectiveLimit(info),
			Warnings: len(access.Warnings),
		}
		for _, w := range access.Warnings {
			if w.Severity == billing.SeverityCritical {
				report.Healthy = false
				report.Issues = append(report.Issues, w.Message)
			}
		}
	}

	return report
}

func effectiveLimit(info *api.BillingInfo) int {
	if info.Limit > 0 {
		return info.Limit
	}
	return billing.DefaultPRLimit
}

func printStatus(cmd *cobra.Command, d *deps, report *StatusReport) error {
	out := cmd.OutOrStdout()

	if report.Account.LoggedIn {
		d.notifier.Success("Logged in as %s", report.Account.Email)
	} else {
		d.notifier.Warn("Not logged in")
	}

	if ob := report.Onboarding; ob != nil {
		mark := func(ok bool) string {
			if ok {
				return "connected"
			}
			return "not connected"
		}
		fmt.Fprintf(out, "\nGitHub:      %s\n", mark(ob.GitHubConnected))
		fmt.Fprintf(out, "Slack:       %s\n", mark(ob.SlackConnected))
		fmt.Fprintf(out, "Repos:       %d\n", ob.Repositories)
		fmt.Fprintf(out, "Mappings:    %d\n", ob.UserMappings)
		if ob.Completed {
			fmt.Fprintf(out, "Onboarding:  complete\n")
		} else {
			fmt.Fprintf(out, "Onboarding:  at step %q\n", ob.CurrentStep)
		}
	}

	if plan := report.Plan; plan != nil {
		fmt.Fprintf(out, "\nPlan:        %s (%d/%d PRs)\n", plan.Tier, plan.PRCount, plan.Limit)
	}

	for _, issue := range report.Issues {
		d.notifier.Error("%s", issue)
	}
	for _, step := range report.NextSteps {
		d.notifier.Info("%s", step)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
