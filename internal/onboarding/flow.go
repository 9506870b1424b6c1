package onboarding

import (
	"context"
	"sync"

	"github.com/reviewdeck/reviewdeck/internal/api"
	"github.com/reviewdeck/reviewdeck/internal/log"
)

// Client is the subset of the API surface the flow needs
type Client interface {
	GetOnboardingStatus(ctx context.Context) (*api.OnboardingStatus, error)
	SaveUserMappings(ctx context.Context, mappings []api.UserMapping) error
	CompleteOnboarding(ctx context.Context, cfg api.SyncConfig) error
	GitHubInstallationURL(ctx context.Context) (string, error)
	SlackAuthURL(ctx context.Context) (string, error)
	ListRepositories(ctx context.Context) ([]api.Repository, error)
}

// Flow mirrors the server's onboarding progress into client state. Each
// Refresh replaces the mirrored snapshot wholesale and re-derives the
// current step; data collected locally for later steps survives a Refresh
// that lands on an earlier step.
type Flow struct {
	client Client
	logger *log.Logger

	mu      sync.Mutex
	status  api.OnboardingStatus
	current Step

	// Collected locally, merged into the snapshot rather than replaced, so
	// stepping backwards never loses what the user already entered.
	pendingMappings []api.UserMapping
	pendingConfig   *api.SyncConfig
}

// NewFlow creates a Flow over the given client
func NewFlow(client Client, logger *log.Logger) *Flow {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	return &Flow{
		client:  client,
		logger:  logger.With("component", "onboarding"),
		current: StepWelcome,
	}
}

// Refresh fetches the server snapshot and re-derives the current step
func (f *Flow) Refresh(ctx context.Context) error {
	status, err := f.client.GetOnboardingStatus(ctx)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = *status
	if len(f.pendingMappings) > 0 && len(f.status.UserMappings) == 0 {
		f.status.UserMappings = f.pendingMappings
	}
	if f.pendingConfig != nil && f.status.Config == nil {
		f.status.Config = f.pendingConfig
	}

	prev := f.current
	f.current = DeriveStep(f.status)
	if f.current != prev {
		f.logger.Debug("onboarding step derived", "from", string(prev), "to", string(f.current))
	}
	return nil
}

// Current returns the derived step
func (f *Flow) Current() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

// Status returns a copy of the mirrored snapshot
func (f *Flow) Status() api.OnboardingStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Advance moves to the next step if the authoritative gate allows it
func (f *Flow) Advance() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := CanProceed(f.current, f.status); err != nil {
		return err
	}
	f.current = Next(f.current)
	return nil
}

// Back returns to the previous step. Collected data for later steps is kept.
func (f *Flow) Back() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = Prev(f.current)
}

// GitHubInstallURL returns the browser URL for installing the GitHub app
func (f *Flow) GitHubInstallURL(ctx context.Context) (string, error) {
	return f.client.GitHubInstallationURL(ctx)
}

// SlackAuthURL returns the browser URL for the Slack OAuth grant
func (f *Flow) SlackAuthURL(ctx context.Context) (string, error) {
	return f.client.SlackAuthURL(ctx)
}

// Repositories lists the repositories the GitHub installation covers
func (f *Flow) Repositories(ctx context.Context) ([]api.Repository, error) {
	return f.client.ListRepositories(ctx)
}

// SetMappings stages user mappings locally and persists them server-side
func (f *Flow) SetMappings(ctx context.Context, mappings []api.UserMapping) error {
	if err := f.client.SaveUserMappings(ctx, mappings); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingMappings = mappings
	f.status.UserMappings = mappings
	return nil
}

// Complete persists the sync settings and finishes onboarding
func (f *Flow) Complete(ctx context.Context, cfg api.SyncConfig) error {
	if err := f.client.CompleteOnboarding(ctx, cfg); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pendingConfig = &cfg
	f.status.Config = &cfg
	f.status.Completed = true
	f.current = StepCompleted
	return nil
}
