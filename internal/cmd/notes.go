package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage standup discussion points",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var noteAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Raise a discussion point for the next standup",
	Long: `Raise a discussion point for the next standup.

Examples:
  reviewdeck standup note add "Flaky CI on the sync job"
  reviewdeck standup note add --type blocker "Waiting on infra review"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNoteAdd,
}

var noteRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Remove a discussion point",
	Args:    cobra.ExactArgs(1),
	RunE:    runNoteRemove,
}

func runNoteAdd(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	pointType, _ := cmd.Flags().GetString("type")
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return fmt.Errorf("missing argument: note text")
	}

	point, err := d.client.CreateDiscussionPoint(cmd.Context(), text, pointType)
	if err != nil {
		return err
	}

	d.notifier.Success("Added discussion point %s", point.ID)
	return nil
}

func runNoteRemove(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	if err := d.client.DeleteDiscussionPoint(cmd.Context(), args[0]); err != nil {
		return err
	}

	d.notifier.Success("Removed discussion point %s", args[0])
	return nil
}

func init() {
	noteAddCmd.Flags().String("type", "discussion", "Point type (discussion, blocker, kudos)")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteRemoveCmd)
	standupCmd.AddCommand(noteCmd)
}
