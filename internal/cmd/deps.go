package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/billing"
	"github.com/reviewdeck/reviewdeck/internal/errors"
	"github.com/reviewdeck/reviewdeck/internal/log"
	"github.com/reviewdeck/reviewdeck/internal/session"
	"github.com/reviewdeck/reviewdeck/internal/ux"
)

const defaultAPIURL = "http://localhost:8000"

// deps bundles everything a command needs: the resolved flags, the API
// client wired to the session store, and the output helpers. Built per
// invocation so tests never share state through package globals.
type deps struct {
	cmdCtx   *CommandContext
	store    *session.Store
	client   *api.Client
	usage    *billing.UsageCache
	notifier *ux.Notifier
	logger   *log.Logger
}

func resolveAPIURL(cmdCtx *CommandContext) string {
	if cmdCtx.APIURL != "" {
		return cmdCtx.APIURL
	}
	if url := os.Getenv("REVIEWDECK_API_URL"); url != "" {
		return url
	}
	return defaultAPIURL
}

func newLogger(cmdCtx *CommandContext) *log.Logger {
	cfg := log.DefaultConfig()
	if cmdCtx.Verbose {
		cfg = log.VerboseConfig()
	}
	if cmdCtx.Quiet {
		cfg.Level = log.LevelWarn
	}
	return log.New(cfg)
}

// newDeps wires the command dependencies. The API client reads its bearer
// token from the session store on every request, and a 401 from any
// endpoint clears the stored session before the error reaches the caller.
func newDeps(cmd *cobra.Command) (*deps, error) {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create command context: %w", err)
	}

	logger := newLogger(cmdCtx)
	notifier := ux.NewNotifier(cmd.OutOrStdout(), cmdCtx.NoColor)

	store := session.NewStore(session.DefaultDir())
	if err := store.Hydrate(); err != nil {
		// A corrupt session file should not brick the CLI
		logger.WithError(err).Warn("discarding unreadable session")
		_ = store.Clear()
	}

	client := api.NewClient(resolveAPIURL(cmdCtx),
		api.WithTokenSource(store),
		api.WithUnauthorizedHook(func() {
			// A failed login has no session to tear down
			if store.Token() == "" {
				return
			}
			if err := store.Clear(); err != nil {
				logger.WithError(err).Warn("failed to clear session")
			}
			notifier.Warn("Session expired. Run 'reviewdeck login' to sign in again.")
		}),
	)

	usage := billing.NewUsageCache(func(ctx context.Context) (*api.BillingInfo, error) {
		return client.GetBillingInfo(ctx)
	})

	return &deps{
		cmdCtx:   cmdCtx,
		store:    store,
		client:   client,
		usage:    usage,
		notifier: notifier,
		logger:   logger,
	}, nil
}

// formatter builds the output formatter for the resolved --format flag
func (d *deps) formatter(cmd *cobra.Command) (ux.Formatter, error) {
	return ux.NewFormatter(d.cmdCtx.Format, &ux.FormatterOptions{
		Writer:  cmd.OutOrStdout(),
		NoColor: d.cmdCtx.NoColor,
	})
}

// requireSession fails fast when no one is logged in
func (d *deps) requireSession() error {
	if d.store.Token() == "" {
		return errors.NewAuthRequiredError()
	}
	return nil
}
