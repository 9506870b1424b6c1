package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/billing"
	"github.com/reviewdeck/reviewdeck/internal/state"
	"github.com/reviewdeck/reviewdeck/internal/tui"
)

var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Open the interactive dashboard",
	Long: `Open the interactive terminal dashboard with live overview, standup,
analytics, and collaboration views.

Keys:
  tab, 1-4   switch view
  p          cycle reporting period
  r          refresh the current view
  q          quit`,
	RunE: runDash,
}

func runDash(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	access, err := d.usage.Access(cmd.Context())
	if err != nil {
		// The dashboard is still useful without the plan snapshot; fall
		// back to free-tier gating rather than refusing to start.
		d.logger.WithError(err).Warn("plan snapshot unavailable, premium views locked")
		access = billing.Access{Tier: billing.TierFree, CanCreatePR: true}
	}

	dashboards := state.NewDashboards(d.client, d.logger)
	model := tui.NewDashboardModel(dashboards, access)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	_, err = program.Run()
	return err
}

func init() {
	rootCmd.AddCommand(dashCmd)
}
