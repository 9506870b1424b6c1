package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/onboarding"
)

// Wizard walks the onboarding flow step by step with interactive forms.
// Each step persists through the flow before moving on, so quitting midway
// never loses progress; rerunning resumes at the server-derived step.
type Wizard struct {
	flow   *onboarding.Flow
	out    io.Writer
	styles Styles
}

// NewWizard creates an onboarding wizard over a prepared flow
func NewWizard(flow *onboarding.Flow, out io.Writer) *Wizard {
	return &Wizard{
		flow:   flow,
		out:    out,
		styles: DefaultStyles(),
	}
}

// Run resumes the flow at its current step and walks it to completion
func (w *Wizard) Run(ctx context.Context) error {
	if err := w.flow.Refresh(ctx); err != nil {
		return err
	}

	for {
		step := w.flow.Current()
		w.printHeader(step)

		var err error
		switch step {
		case onboarding.StepWelcome:
			err = w.runWelcome()
		case onboarding.StepGitHub:
			err = w.runGitHub(ctx)
		case onboarding.StepSlack:
			err = w.runSlack(ctx)
		case onboarding.StepUserMapping:
			err = w.runUserMapping(ctx)
		case onboarding.StepConfiguration:
			err = w.runConfiguration(ctx)
		case onboarding.StepCompleted:
			fmt.Fprintln(w.out, w.styles.Success.Render("✓ Onboarding complete. Run 'reviewdeck standup' to see your first report."))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (w *Wizard) printHeader(step onboarding.Step) {
	idx := onboarding.Index(step)
	total := len(onboarding.Sequence) - 1
	fmt.Fprintln(w.out)
	if step == onboarding.StepCompleted {
		return
	}
	fmt.Fprintf(w.out, "%s %s\n",
		w.styles.Title.Render(stepTitle(step)),
		w.styles.Muted.Render(fmt.Sprintf("(step %d of %d)", idx+1, total)))
}

func stepTitle(step onboarding.Step) string {
	switch step {
	case onboarding.StepWelcome:
		return "Welcome to ReviewDeck"
	case onboarding.StepGitHub:
		return "Connect GitHub"
	case onboarding.StepSlack:
		return "Connect Slack"
	case onboarding.StepUserMapping:
		return "Map your team"
	case onboarding.StepConfiguration:
		return "Notification settings"
	}
	return string(step)
}

func (w *Wizard) runWelcome() error {
	fmt.Fprintln(w.out, "ReviewDeck keeps your pull request reviews and Slack in sync.")
	fmt.Fprintln(w.out, "This wizard connects your tools in a few minutes.")

	proceed, err := PromptForConfirmation("Ready to set up your workspace?", true)
	if err != nil {
		return err
	}
	if !proceed {
		return fmt.Errorf("setup cancelled")
	}
	return w.flow.Advance()
}

func (w *Wizard) runGitHub(ctx context.Context) error {
	return w.runConnect(ctx, "GitHub", func() (string, error) {
		return w.flow.GitHubInstallURL(ctx)
	})
}

func (w *Wizard) runSlack(ctx context.Context) error {
	return w.runConnect(ctx, "Slack", func() (string, error) {
		return w.flow.SlackAuthURL(ctx)
	})
}

// runConnect handles both OAuth-style steps: show the URL, wait for the
// user to finish in the browser, then re-check the server-side flags.
func (w *Wizard) runConnect(ctx context.Context, service string, urlFn func() (string, error)) error {
	url, err := urlFn()
	if err != nil {
		return err
	}

	fmt.Fprintf(w.out, "Open this URL in your browser to connect %s:\n\n  %s\n\n", service, w.styles.Key.Render(url))

	done, err := PromptForConfirmation(fmt.Sprintf("Finished connecting %s?", service), true)
	if err != nil {
		return err
	}
	if !done {
		return fmt.Errorf("setup cancelled")
	}

	if err := w.flow.Refresh(ctx); err != nil {
		return err
	}
	if err := w.flow.Advance(); err != nil {
		fmt.Fprintln(w.out, w.styles.Warning.Render("! "+err.Error()))
		return nil
	}
	return nil
}

func (w *Wizard) runUserMapping(ctx context.Context) error {
	status := w.flow.Status()
	mappings := append([]api.UserMapping(nil), status.UserMappings...)

	if repos, err := w.flow.Repositories(ctx); err == nil && len(repos) > 0 {
		fmt.Fprintf(w.out, "Syncing %d repositories from your GitHub installation.\n", len(repos))
	}

	if len(mappings) > 0 {
		fmt.Fprintf(w.out, "%d mapping(s) already saved.\n", len(mappings))
	} else {
		fmt.Fprintln(w.out, "Link each GitHub account to its Slack user so notifications reach the right person.")
	}

	for {
		add, err := PromptForConfirmation("Add a user mapping?", len(mappings) == 0)
		if err != nil {
			return err
		}
		if !add {
			break
		}

		login, err := PromptForString(Prompt{Message: "GitHub login", Placeholder: "octocat", Required: true})
		if err != nil {
			return err
		}
		slackID, err := PromptForString(Prompt{Message: "Slack user ID", Placeholder: "U0123ABCD", Required: true})
		if err != nil {
			return err
		}
		isAdmin, err := PromptForConfirmation("Is this person a workspace admin?", len(mappings) == 0)
		if err != nil {
			return err
		}

		mappings = append(mappings, api.UserMapping{
			GitHubLogin: login,
			SlackUserID: slackID,
			IsAdmin:     isAdmin,
		})
	}

	if len(mappings) > 0 {
		if err := w.flow.SetMappings(ctx, mappings); err != nil {
			return err
		}
	}

	if err := w.flow.Advance(); err != nil {
		fmt.Fprintln(w.out, w.styles.Warning.Render("! "+err.Error()))
		return nil
	}
	return nil
}

func (w *Wizard) runConfiguration(ctx context.Context) error {
	standupTime, err := PromptForString(Prompt{
		Message:     "Daily standup time (24h)",
		Default:     "09:30",
		Placeholder: "09:30",
		Required:    true,
	})
	if err != nil {
		return err
	}

	timezone, err := PromptForString(Prompt{
		Message:     "Timezone",
		Default:     "UTC",
		Placeholder: "Europe/Berlin",
		Required:    true,
	})
	if err != nil {
		return err
	}

	channel, err := PromptForString(Prompt{
		Message:  "Slack channel for reports",
		Default:  "#engineering",
		Required: true,
	})
	if err != nil {
		return err
	}

	notifyOpen, err := PromptForConfirmation("Notify when a PR opens?", true)
	if err != nil {
		return err
	}
	notifyMerge, err := PromptForConfirmation("Notify when a PR merges?", true)
	if err != nil {
		return err
	}

	return w.flow.Complete(ctx, api.SyncConfig{
		StandupTime:   standupTime,
		Timezone:      timezone,
		SlackChannel:  channel,
		NotifyOnOpen:  notifyOpen,
		NotifyOnMerge: notifyMerge,
	})
}
