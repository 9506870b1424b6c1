package onboarding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewdeck/reviewdeck/internal/api"
)

func TestSequenceOrder(t *testing.T) {
	want := []Step{StepWelcome, StepGitHub, StepSlack, StepUserMapping, StepConfiguration, StepCompleted}
	assert.Equal(t, want, Sequence)

	assert.Equal(t, StepGitHub, Next(StepWelcome))
	assert.Equal(t, StepCompleted, Next(StepConfiguration))
	assert.Equal(t, StepCompleted, Next(StepCompleted), "completed is terminal")
	assert.Equal(t, StepWelcome, Prev(StepGitHub))
	assert.Equal(t, StepWelcome, Prev(StepWelcome), "welcome is the floor")
}

func TestCanProceedGitHubStep(t *testing.T) {
	tests := []struct {
		name    string
		status  api.OnboardingStatus
		allowed bool
	}{
		{
			name:    "not connected",
			status:  api.OnboardingStatus{SelectedRepositories: []string{"org/repo"}},
			allowed: false,
		},
		{
			name:    "connected but no repositories",
			status:  api.OnboardingStatus{GitHubConnected: true},
			allowed: false,
		},
		{
			name: "connected with repository",
			status: api.OnboardingStatus{
				GitHubConnected:      true,
				SelectedRepositories: []string{"org/repo"},
			},
			allowed: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanProceed(StepGitHub, tt.status)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestCanProceedUserMappingRequiresAdmin(t *testing.T) {
	// Empty mappings block the step
	err := CanProceed(StepUserMapping, api.OnboardingStatus{})
	require.Error(t, err)

	// Mappings without an admin still block it
	noAdmin := api.OnboardingStatus{
		UserMappings: []api.UserMapping{
			{GitHubLogin: "ana", SlackUserID: "U1"},
			{GitHubLogin: "bo", SlackUserID: "U2"},
		},
	}
	err = CanProceed(StepUserMapping, noAdmin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin")

	// One admin mapping unlocks it
	withAdmin := api.OnboardingStatus{
		UserMappings: []api.UserMapping{
			{GitHubLogin: "ana", SlackUserID: "U1", IsAdmin: true},
		},
	}
	assert.NoError(t, CanProceed(StepUserMapping, withAdmin))
}

func TestCanProceedOtherSteps(t *testing.T) {
	assert.NoError(t, CanProceed(StepWelcome, api.OnboardingStatus{}))
	assert.Error(t, CanProceed(StepSlack, api.OnboardingStatus{}))
	assert.NoError(t, CanProceed(StepSlack, api.OnboardingStatus{SlackConnected: true}))
	assert.Error(t, CanProceed(StepConfiguration, api.OnboardingStatus{}))
	assert.NoError(t, CanProceed(StepConfiguration, api.OnboardingStatus{Config: &api.SyncConfig{}}))
	assert.NoError(t, CanProceed(StepCompleted, api.OnboardingStatus{}))
}

func TestDeriveStep(t *testing.T) {
	admin := []api.UserMapping{{GitHubLogin: "ana", SlackUserID: "U1", IsAdmin: true}}

	tests := []struct {
		name   string
		status api.OnboardingStatus
		want   Step
	}{
		{
			name:   "fresh organization starts at welcome",
			status: api.OnboardingStatus{},
			want:   StepWelcome,
		},
		{
			name: "github incomplete",
			status: api.OnboardingStatus{
				GitHubConnected: true, // connected but no repos selected
			},
			want: StepGitHub,
		},
		{
			name: "slack pending",
			status: api.OnboardingStatus{
				GitHubConnected:      true,
				SelectedRepositories: []string{"org/repo"},
			},
			want: StepSlack,
		},
		{
			name: "mappings pending",
			status: api.OnboardingStatus{
				GitHubConnected:      true,
				SelectedRepositories: []string{"org/repo"},
				SlackConnected:       true,
			},
			want: StepUserMapping,
		},
		{
			name: "configuration pending",
			status: api.OnboardingStatus{
				GitHubConnected:      true,
				SelectedRepositories: []string{"org/repo"},
				SlackConnected:       true,
				UserMappings:         admin,
			},
			want: StepConfiguration,
		},
		{
			name: "everything done",
			status: api.OnboardingStatus{
				GitHubConnected:      true,
				SelectedRepositories: []string{"org/repo"},
				SlackConnected:       true,
				UserMappings:         admin,
				Config:               &api.SyncConfig{},
				Completed:            true,
			},
			want: StepCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStep(tt.status))
		})
	}
}

func TestDeriveStepMovesBackwardWhenPrerequisiteDisappears(t *testing.T) {
	// The user had reached configuration, then the GitHub app was
	// uninstalled server-side.
	status := api.OnboardingStatus{
		GitHubConnected:      false,
		SelectedRepositories: []string{"org/repo"},
		SlackConnected:       true,
		UserMappings:         []api.UserMapping{{GitHubLogin: "ana", SlackUserID: "U1", IsAdmin: true}},
	}
	assert.Equal(t, StepGitHub, DeriveStep(status))
}
