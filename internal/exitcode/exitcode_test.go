package exitcode

import (
	stderrors "errors"
	"testing"

	"github.com/reviewdeck/reviewdeck/internal/errors"
)

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		expected int
	}{
		{"Success", Success, 0},
		{"GeneralError", GeneralError, 1},
		{"UsageError", UsageError, 2},
		{"FeatureGated", FeatureGated, 3},
		{"OnboardingIncomplete", OnboardingIncomplete, 4},
		{"AuthError", AuthError, 5},
		{"NetworkError", NetworkError, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.code != tt.expected {
				t.Errorf("Exit code %s = %d, want %d", tt.name, tt.code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode_CodedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "auth required",
			err:      errors.NewAuthRequiredError(),
			expected: AuthError,
		},
		{
			name:     "auth failed",
			err:      errors.NewAuthFailedError(stderrors.New("bad credentials")),
			expected: AuthError,
		},
		{
			name:     "api unreachable",
			err:      errors.NewAPIUnreachableError("http://localhost:8080", stderrors.New("dial tcp: refused")),
			expected: NetworkError,
		},
		{
			name:     "feature gated",
			err:      errors.NewFeatureGatedError("analytics", "free"),
			expected: FeatureGated,
		},
		{
			name:     "onboarding step gate",
			err:      errors.NewOnboardStepGateError("github", "GitHub app is not installed"),
			expected: OnboardingIncomplete,
		},
		{
			name:     "other coded error stays general",
			err:      errors.New(errors.ErrCodeFileNotFound, "no session file"),
			expected: GeneralError,
		},
		{
			name:     "wrapped coded error unwraps",
			err:      errors.Wrap(errors.ErrCodeAuthRequired, "session expired", stderrors.New("401")),
			expected: AuthError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := DetermineExitCode(tt.err)
			if code != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}

func TestDetermineExitCode_Heuristics(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "nil error returns success",
			err:      nil,
			expected: Success,
		},
		{
			name:     "authentication error",
			err:      stderrors.New("authentication failed: invalid token"),
			expected: AuthError,
		},
		{
			name:     "unauthorized error",
			err:      stderrors.New("unauthorized access"),
			expected: AuthError,
		},
		{
			name:     "network error",
			err:      stderrors.New("network error: connection timeout"),
			expected: NetworkError,
		},
		{
			name:     "connection error",
			err:      stderrors.New("connection refused"),
			expected: NetworkError,
		},
		{
			name:     "timeout error",
			err:      stderrors.New("request timeout"),
			expected: NetworkError,
		},
		{
			name:     "unreachable host",
			err:      stderrors.New("host unreachable"),
			expected: NetworkError,
		},
		{
			name:     "usage error - invalid flag",
			err:      stderrors.New("invalid flag: --foo"),
			expected: UsageError,
		},
		{
			name:     "usage error - required flag",
			err:      stderrors.New("required flag --period not set"),
			expected: UsageError,
		},
		{
			name:     "unknown command",
			err:      stderrors.New("unknown command: foo"),
			expected: UsageError,
		},
		{
			name:     "generic error",
			err:      stderrors.New("something went wrong"),
			expected: GeneralError,
		},
		{
			name:     "mixed case Network",
			err:      stderrors.New("NeTwOrK error"),
			expected: NetworkError,
		},
		{
			name:     "uppercase UNAUTHORIZED",
			err:      stderrors.New("UNAUTHORIZED access"),
			expected: AuthError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := DetermineExitCode(tt.err)
			if code != tt.expected {
				t.Errorf("DetermineExitCode(%v) = %d, want %d", tt.err, code, tt.expected)
			}
		})
	}
}

func TestGetExitCodeDescription(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{Success, "Success"},
		{GeneralError, "General error"},
		{UsageError, "Usage error (invalid flags or arguments)"},
		{FeatureGated, "Feature not included in current plan"},
		{OnboardingIncomplete, "Onboarding incomplete"},
		{AuthError, "Authentication error"},
		{NetworkError, "Network error"},
		{99, "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := GetExitCodeDescription(tt.code)
			if result != tt.expected {
				t.Errorf("GetExitCodeDescription(%d) = %s, want %s", tt.code, result, tt.expected)
			}
		})
	}
}
