package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reviewdeck",
	Short: "Pull request activity, synced with Slack",
	Long: `reviewdeck is the command-line client for the ReviewDeck platform.
It keeps your team's GitHub pull request activity and Slack conversations
in sync and turns them into standup reports, analytics, and collaboration
insights.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().String("format", "text", "Output format (text, json, yaml)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().String("api-url", "", "ReviewDeck API base URL (defaults to $REVIEWDECK_API_URL)")
}
