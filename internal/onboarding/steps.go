// Package onboarding sequences the fixed setup flow that connects an
// organization's GitHub and Slack accounts and maps users between them.
package onboarding

import (
	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/errors"
)

// Step is one stage in the fixed onboarding sequence
type Step string

const (
	StepWelcome       Step = "welcome"
	StepGitHub        Step = "github"
	StepSlack         Step = "slack"
	StepUserMapping   Step = "user-mapping"
	StepConfiguration Step = "configuration"
	StepCompleted     Step = "completed"
)

// Sequence is the fixed linear step order
var Sequence = []Step{
	StepWelcome,
	StepGitHub,
	StepSlack,
	StepUserMapping,
	StepConfiguration,
	StepCompleted,
}

// Index returns the step's position in the sequence, or -1
func Index(s Step) int {
	for i, step := range Sequence {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the step after s; completed is terminal
func Next(s Step) Step {
	i := Index(s)
	if i < 0 || i >= len(Sequence)-1 {
		return StepCompleted
	}
	return Sequence[i+1]
}

// Prev returns the step before s; welcome is the floor. Going back never
// discards data already collected for later steps.
func Prev(s Step) Step {
	i := Index(s)
	if i <= 0 {
		return StepWelcome
	}
	return Sequence[i-1]
}

// hasAdminMapping reports whether at least one mapping is flagged admin
func hasAdminMapping(mappings []api.UserMapping) bool {
	for _, m := range mappings {
		if m.IsAdmin {
			return true
		}
	}
	return false
}

// CanProceed is the single authoritative gate for leaving a step. Both the
// wizard's navigation and its button-disable state consult it, so the two
// can never disagree.
//
// Leaving user-mapping requires at least one mapping AND at least one admin
// mapping: without an admin the organization would have nobody able to
// manage settings after setup.
func CanProceed(step Step, st api.OnboardingStatus) error {
	switch step {
	case StepWelcome:
		return nil

	case StepGitHub:
		if !st.GitHubConnected {
			return errors.NewOnboardStepGateError(string(step), "GitHub app is not installed")
		}
		if len(st.SelectedRepositories) == 0 {
			return errors.NewOnboardStepGateError(string(step), "select at least one repository to sync")
		}
		return nil

	case StepSlack:
		if !st.SlackConnected {
			return errors.NewOnboardStepGateError(string(step), "Slack workspace is not connected")
		}
		return nil

	case StepUserMapping:
		if len(st.UserMappings) == 0 {
			return errors.NewOnboardStepGateError(string(step), "map at least one GitHub user to Slack")
		}
		if !hasAdminMapping(st.UserMappings) {
			return errors.NewOnboardStepGateError(string(step), "flag at least one mapped user as admin")
		}
		return nil

	case StepConfiguration:
		if st.Config == nil {
			return errors.NewOnboardStepGateError(string(step), "sync settings are not configured")
		}
		return nil

	case StepCompleted:
		return nil
	}

	return errors.New(errors.ErrCodeOnboardStatus, "unknown onboarding step: "+string(step))
}

// DeriveStep computes the current step from server-reported completion
// flags, not from client navigation history. A user can land on an earlier
// step than they left off if a prerequisite disappeared server-side
// (e.g. the GitHub app was uninstalled).
func DeriveStep(st api.OnboardingStatus) Step {
	if st.Completed {
		return StepCompleted
	}

	// Fresh organization: nothing done yet
	if !st.GitHubConnected && !st.SlackConnected &&
		len(st.SelectedRepositories) == 0 && len(st.UserMappings) == 0 {
		return StepWelcome
	}

	for _, step := range []Step{StepGitHub, StepSlack, StepUserMapping, StepConfiguration} {
		if CanProceed(step, st) != nil {
			return step
		}
	}

	// Every prerequisite holds but the server has not flagged completion;
	// the configuration step owns the final confirmation.
	return StepConfiguration
}
