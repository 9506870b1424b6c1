package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/session"
	"github.com/reviewdeck/reviewdeck/internal/tui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to ReviewDeck",
	Long: `Log in to the ReviewDeck platform with your email and password.

After logging in, your access token is saved in ~/.reviewdeck/session.json
and used by every other command. Omit --password to be prompted securely.

Examples:
  reviewdeck login --email user@example.com
  reviewdeck login --email user@example.com --password mypass`,
	RunE: runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new ReviewDeck account",
	Long: `Create a new ReviewDeck account and organization.

After registration you are logged in automatically. Run 'reviewdeck onboard'
next to connect GitHub and Slack.

Examples:
  reviewdeck register --email user@example.com --name "Ada Lovelace" --org "Acme"`,
	RunE: runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the currently logged-in user",
	RunE:  runWhoami,
}

func runLogin(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if password == "" {
		if !tui.ShouldPrompt() {
			return fmt.Errorf("--password is required")
		}
		password, err = tui.PromptForSecret("Password")
		if err != nil {
			return err
		}
	}

	resp, err := d.client.Login(cmd.Context(), email, password)
	if err != nil {
		return err
	}

	if err := saveLogin(d.store, resp); err != nil {
		return err
	}

	d.notifier.Success("Logged in as %s", resp.User.Email)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	name, _ := cmd.Flags().GetString("name")
	org, _ := cmd.Flags().GetString("org")

	if email == "" {
		return fmt.Errorf("--email is required")
	}
	if password == "" {
		if !tui.ShouldPrompt() {
			return fmt.Errorf("--password is required")
		}
		password, err = tui.PromptForSecret("Choose a password")
		if err != nil {
			return err
		}
	}

	resp, err := d.client.Register(cmd.Context(), api.RegisterRequest{
		Email:            email,
		Password:         password,
		Name:             name,
		OrganizationName: org,
	})
	if err != nil {
		return err
	}

	if err := saveLogin(d.store, resp); err != nil {
		return err
	}

	d.notifier.Success("Account created for %s", resp.User.Email)
	d.notifier.Info("Run 'reviewdeck onboard' to connect GitHub and Slack.")
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}

	if d.store.Token() == "" {
		d.notifier.Info("Not logged in.")
		return nil
	}

	email := d.store.Current().Email
	if err := d.store.Clear(); err != nil {
		return err
	}

	d.notifier.Success("Logged out %s", email)
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	d, err := newDeps(cmd)
	if err != nil {
		return err
	}
	if err := d.requireSession(); err != nil {
		return err
	}

	user, err := d.client.CurrentUser(cmd.Context())
	if err != nil {
		return err
	}

	formatter, err := d.formatter(cmd)
	if err != nil {
		return err
	}
	if d.cmdCtx.Format != "text" {
		return formatter.Format(user)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "User ID:       %s\n", user.ID)
	fmt.Fprintf(out, "Email:         %s\n", user.Email)
	fmt.Fprintf(out, "Name:          %s\n", user.Name)
	fmt.Fprintf(out, "GitHub:        %s\n", user.GitHubLogin)
	fmt.Fprintf(out, "Organization:  %s\n", user.OrganizationID)
	fmt.Fprintf(out, "Role:          %s\n", user.Role)
	return nil
}

func saveLogin(store *session.Store, resp *api.LoginResponse) error {
	return store.Save(session.Session{
		UserID:         resp.User.ID,
		OrganizationID: resp.User.OrganizationID,
		Email:          resp.User.Email,
		BearerToken:    resp.AccessToken,
	})
}

func init() {
	loginCmd.Flags().String("email", "", "Email address (required)")
	loginCmd.Flags().String("password", "", "Password (prompted if omitted)")

	registerCmd.Flags().String("email", "", "Email address (required)")
	registerCmd.Flags().String("password", "", "Password (prompted if omitted)")
	registerCmd.Flags().String("name", "", "Full name")
	registerCmd.Flags().String("org", "", "Organization name")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}
