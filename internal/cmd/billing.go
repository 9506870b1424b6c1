package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/billing"
)

var billingCmd = &cobra.Command{
	Use:   "billing",
	Short: "Show plan usage and warnings",
	Long: `Show the current subscription plan, tracked pull request usage, and
any plan warnings. Usage is cached for five minutes; pass --fresh to
bypass the cache.

Examples:
  reviewdeck billing
  reviewdeck billing --fresh --format json`,
	RunE: runBilling,
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Get a checkout link to upgrade the plan",
	RunE:  runUpgrade,
}

// billingReport is the formatted billing output
type billingReport struct {
	Info   *api.BillingInfo `json:"usage"`
	Access billing.Access   `json:"access"`
}

func runBilling(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	fresh, _ := cmd.Flags().GetBool("fresh")
	if fresh {
		d.usage.Invalidate()
	}

	info, err := d.usage.Get(cmd.Context())
	if err != nil {
		return err
	}
	access := billing.Derive(*info)

	if d.cmdCtx.Format != "text" {
		formatter, err := d.formatter(cmd)
		if err != nil {
			return err
		}
		return formatter.Format(billingReport{Info: info, Access: access})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Plan:        %s\n", access.Tier)
	fmt.Fprintf(out, "PRs tracked: %d / %d\n", info.PRCount, info.Limit)
	fmt.Fprintf(out, "Users:       %d\n", info.UserCount)
	if !info.ResetDate.IsZero() {
		fmt.Fprintf(out, "Resets:      %s\n", info.ResetDate.Format("2006-01-02"))
	}

	for _, w := range access.Warnings {
		switch w.Severity {
		case billing.SeverityCritical:
			d.notifier.Error("%s", w.Message)
		case billing.SeverityWarning:
			d.notifier.Warn("%s", w.Message)
		default:
			d.notifier.Info("%s", w.Message)
		}
	}
	return nil
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	url, err := d.client.CreateCheckout(cmd.Context())
	if err != nil {
		return err
	}

	// The plan changes as soon as checkout completes, so the cached
	// snapshot can no longer be trusted.
	d.usage.Invalidate()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Open this URL in your browser to complete the upgrade:")
	fmt.Fprintf(out, "\n  %s\n", url)
	return nil
}

func init() {
	billingCmd.Flags().Bool("fresh", false, "Bypass the cached usage snapshot")

	rootCmd.AddCommand(billingCmd)
	rootCmd.AddCommand(upgradeCmd)
}
