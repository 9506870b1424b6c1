package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var reposCmd = &cobra.Command{
	Use:   "repos",
	Short: "List connected GitHub repositories",
	RunE:  runRepos,
}

func runRepos(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	repos, err := d.client.ListRepositories(cmd.Context())
	if err != nil {
		return err
	}

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(repos)
	}

	out := cmd.OutOrStdout()
	if len(repos) == 0 {
		fmt.Fprintln(out, "No repositories connected. Run 'reviewdeck onboard' to install the GitHub app.")
		return nil
	}
	for _, repo := range repos {
		visibility := "public"
		if repo.Private {
			visibility = "private"
		}
		sync := "sync off"
		if repo.SyncEnabled {
			sync = "syncing"
		}
		fmt.Fprintf(out, "%s  %-32s %-8s %s\n", repo.ID, repo.FullName, visibility, sync)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(reposCmd)
}
