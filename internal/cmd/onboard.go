package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/onboarding"
	"github.com/reviewdeck/reviewdeck/internal/tui"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Set up the workspace step by step",
	Long: `Walk through workspace setup: connect GitHub, connect Slack, map your
team members, and choose notification settings.

The wizard resumes where you left off. Progress lives server-side, so it
survives reinstalls and works across machines.

Examples:
  reviewdeck onboard`,
	RunE: runOnboard,
}

func runOnboard(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	if !tui.ShouldPrompt() {
		return fmt.Errorf("onboarding is interactive; run it from a terminal")
	}

	flow := onboarding.NewFlow(d.client, d.logger)
	wizard := tui.NewWizard(flow, cmd.OutOrStdout())
	return wizard.Run(cmd.Context())
}

func init() {
	rootCmd.AddCommand(onboardCmd)
}
