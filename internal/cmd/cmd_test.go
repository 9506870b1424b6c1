package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewdeck/reviewdeck/internal/apitest"
	deckerrors "github.com/reviewdeck/reviewdeck/internal/errors"
	"github.com/reviewdeck/reviewdeck/internal/session"
)

// resetFlags restores every flag on the command tree to its default so that
// values set by one test's Execute call do not leak into the next; a real CLI
// invocation parses flags exactly once per process.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI against a fake API with an isolated home directory
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// testEnv points the CLI at a fake API and a throwaway home directory
func testEnv(t *testing.T) *apitest.Server {
	t.Helper()

	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("REVIEWDECK_API_URL", srv.URL)
	t.Setenv("CI", "1") // never block on a prompt
	return srv
}

func seedSession(t *testing.T, token string) {
	t.Helper()
	store := session.NewStore(session.DefaultDir())
	require.NoError(t, store.Save(session.Session{
		UserID:         "u-1",
		OrganizationID: "org-1",
		Email:          "dev@example.com",
		BearerToken:    token,
	}))
}

func TestLoginSavesSession(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "login", "--email", "dev@example.com", "--password", "s3cret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as dev@example.com")

	store := session.NewStore(session.DefaultDir())
	require.NoError(t, store.Hydrate())
	assert.Equal(t, "test-token", store.Token())
	assert.True(t, store.Current().IsAuthenticated)
	assert.FileExists(t, filepath.Join(session.DefaultDir(), "session.json"))
}

func TestLoginRejectedPassword(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "login", "--email", "dev@example.com", "--password", "wrong")
	require.Error(t, err)

	store := session.NewStore(session.DefaultDir())
	require.NoError(t, store.Hydrate())
	assert.Empty(t, store.Token())
}

func TestLoginWithoutPasswordOutsideTerminal(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "login", "--email", "dev@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password is required")
}

func TestRegisterAutoLogin(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "register",
		"--email", "new@example.com", "--password", "s3cret",
		"--name", "Ada Lovelace", "--org", "Acme")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created for new@example.com")
	assert.Contains(t, out, "reviewdeck onboard")

	store := session.NewStore(session.DefaultDir())
	require.NoError(t, store.Hydrate())
	assert.Equal(t, "test-token", store.Token())
}

func TestWhoamiRequiresSession(t *testing.T) {
	testEnv(t)

	_, err := execute(t, "whoami")
	require.Error(t, err)

	var deckErr *deckerrors.DeckError
	require.ErrorAs(t, err, &deckErr)
	assert.Equal(t, deckerrors.ErrCodeAuthRequired, deckErr.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	testEnv(t)
	seedSession(t, "test-token")

	out, err := execute(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out dev@example.com")

	store := session.NewStore(session.DefaultDir())
	require.NoError(t, store.Hydrate())
	assert.Empty(t, store.Token())
}

func TestExpiredSessionIsClearedOn401(t *testing.T) {
	srv := testEnv(t)
	srv.RequireToken = "test-token"
	seedSession(t, "stale-token")

	out, err := execute(t, "overview")
	require.Error(t, err)
	assert.Contains(t, out, "Session expired")

	store := session.NewStore(session.DefaultDir())
	require.NoError(t, store.Hydrate())
	assert.Empty(t, store.Token())
}

func TestStandupTextOutput(t *testing.T) {
	testEnv(t)
	seedSession(t, "test-token")

	out, err := execute(t, "standup", "--period", "weekly")
	require.NoError(t, err)
	assert.Contains(t, out, "Standup (weekly)")
	assert.Contains(t, out, "ana")
	assert.Contains(t, out, "org/service")
}

func TestStandupRejectsBadPeriod(t *testing.T) {
	testEnv(t)
	seedSession(t, "test-token")

	_, err := execute(t, "standup", "--period", "hourly")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid flag --period")
}

func TestStandupNoteLifecycle(t *testing.T) {
	srv := testEnv(t)
	seedSession(t, "test-token")

	out, err := execute(t, "standup", "note", "add", "Flaky CI on the sync job", "--type", "blocker")
	require.NoError(t, err)
	assert.Contains(t, out, "Added discussion point")
	require.Len(t, srv.DiscussionPoints, 1)
	assert.Equal(t, "blocker", srv.DiscussionPoints[0].Type)

	out, err = execute(t, "standup")
	require.NoError(t, err)
	assert.Contains(t, out, "Flaky CI on the sync job")

	_, err = execute(t, "standup", "note", "rm", srv.DiscussionPoints[0].ID)
	require.NoError(t, err)
	assert.Empty(t, srv.DiscussionPoints)
}

func TestAnalyticsGatedOnFreeTier(t *testing.T) {
	testEnv(t)
	seedSession(t, "test-token")

	_, err := execute(t, "analytics")
	require.Error(t, err)

	var deckErr *deckerrors.DeckError
	require.ErrorAs(t, err, &deckErr)
	assert.Equal(t, deckerrors.ErrCodeBillingGated, deckErr.Code)
}

func TestAnalyticsOnProfessionalPlan(t *testing.T) {
	srv := testEnv(t)
	srv.Billing = *srv.Builder.Billing("professional", 120, 0, 9)
	seedSession(t, "test-token")

	out, err := execute(t, "analytics", "--period", "monthly")
	require.NoError(t, err)
	assert.Contains(t, out, "Analytics (monthly)")
	assert.Contains(t, out, "Top contributors")
}

func TestCollaborationGatedOnFreeTier(t *testing.T) {
	testEnv(t)
	seedSession(t, "test-token")

	_, err := execute(t, "collaboration")
	require.Error(t, err)

	var deckErr *deckerrors.DeckError
	require.ErrorAs(t, err, &deckErr)
	assert.Equal(t, deckerrors.ErrCodeBillingGated, deckErr.Code)
}

func TestTeamsLifecycle(t *testing.T) {
	srv := testEnv(t)
	seedSession(t, "test-token")

	out, err := execute(t, "teams", "create", "growth")
	require.NoError(t, err)
	assert.Contains(t, out, "Created team growth")
	require.Len(t, srv.Teams, 3)

	id := srv.Teams[2].ID
	out, err = execute(t, "teams", "rename", id, "growth-emea")
	require.NoError(t, err)
	assert.Contains(t, out, "growth-emea")

	out, err = execute(t, "teams", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "growth-emea")

	_, err = execute(t, "teams", "delete", id)
	require.Error(t, err, "delete without --yes must refuse")

	_, err = execute(t, "teams", "delete", id, "--yes")
	require.NoError(t, err)
	assert.Len(t, srv.Teams, 2)
}

func TestReposList(t *testing.T) {
	testEnv(t)
	seedSession(t, "test-token")

	out, err := execute(t, "repos")
	require.NoError(t, err)
	assert.Contains(t, out, "org/service")
	assert.Contains(t, out, "syncing")
}

func TestBillingShowsCriticalWarning(t *testing.T) {
	srv := testEnv(t)
	srv.Billing = *srv.Builder.Billing("free", 50, 50, 2)
	seedSession(t, "test-token")

	out, err := execute(t, "billing")
	require.NoError(t, err)
	assert.Contains(t, out, "Plan:        free")
	assert.Contains(t, out, "50 / 50")
	assert.Contains(t, out, "limit")
}

func TestBillingFreshBypassesCache(t *testing.T) {
	srv := testEnv(t)
	seedSession(t, "test-token")

	_, err := execute(t, "billing", "--fresh")
	require.NoError(t, err)
	assert.Equal(t, 1, srv.BillingCalls)
}

func TestUpgradePrintsCheckoutURL(t *testing.T) {
	testEnv(t)
	seedSession(t, "test-token")

	out, err := execute(t, "upgrade")
	require.NoError(t, err)
	assert.Contains(t, out, "https://billing.reviewdeck.io/checkout/sess-1")
}

func TestStatusWhenLoggedOut(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in")
	assert.Contains(t, out, "reviewdeck login")
}

func TestStatusJSONReport(t *testing.T) {
	srv := testEnv(t)
	srv.Onboarding.GitHubConnected = true
	seedSession(t, "test-token")

	out, err := execute(t, "status", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"logged_in": true`)
	assert.Contains(t, out, `"github_connected": true`)
	assert.Contains(t, out, `"healthy": false`)
	assert.Contains(t, out, "reviewdeck onboard")

	// reset the sticky persistent flag for later tests
	_, err = execute(t, "status", "--format", "text")
	require.NoError(t, err)
}

func TestVersionCommand(t *testing.T) {
	testEnv(t)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "reviewdeck dev")
}
