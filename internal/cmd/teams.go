package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/api"
)

var teamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Manage teams",
	RunE:  runTeamsList,
}

var teamsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List teams",
	RunE:  runTeamsList,
}

var teamsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsCreate,
}

var teamsRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a team",
	Args:  cobra.ExactArgs(2),
	RunE:  runTeamsRename,
}

var teamsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeamsDelete,
}

func runTeamsList(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	teams, err := d.client.ListTeams(cmd.Context())
	if err != nil {
		return err
	}

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(teams)
	}

	out := cmd.OutOrStdout()
	if len(teams) == 0 {
		fmt.Fprintln(out, "No teams yet. Create one with 'reviewdeck teams create <name>'.")
		return nil
	}
	for _, team := range teams {
		fmt.Fprintf(out, "%s  %-20s %d member(s)\n", team.ID, team.Name, len(team.Members))
	}
	return nil
}

func runTeamsCreate(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	team, err := d.client.CreateTeam(cmd.Context(), api.TeamRequest{Name: args[0]})
	if err != nil {
		return err
	}

	d.notifier.Success("Created team %s (%s)", team.Name, team.ID)
	return nil
}

func runTeamsRename(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	team, err := d.client.UpdateTeam(cmd.Context(), args[0], api.TeamRequest{Name: args[1]})
	if err != nil {
		return err
	}

	d.notifier.Success("Renamed team %s to %s", team.ID, team.Name)
	return nil
}

func runTeamsDelete(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		return fmt.Errorf("refusing to delete team %s without --yes", args[0])
	}

	if err := d.client.DeleteTeam(cmd.Context(), args[0]); err != nil {
		return err
	}

	d.notifier.Success("Deleted team %s", args[0])
	return nil
}

func init() {
	teamsDeleteCmd.Flags().Bool("yes", false, "Confirm deletion")

	teamsCmd.AddCommand(teamsListCmd)
	teamsCmd.AddCommand(teamsCreateCmd)
	teamsCmd.AddCommand(teamsRenameCmd)
	teamsCmd.AddCommand(teamsDeleteCmd)
	rootCmd.AddCommand(teamsCmd)
}
