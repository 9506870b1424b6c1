package exitcode

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/reviewdeck/reviewdeck/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// FeatureGated indicates the current plan does not include the feature
	FeatureGated = 3

	// OnboardingIncomplete indicates the workspace setup is not finished
	OnboardingIncomplete = 4

	// AuthError indicates an authentication or authorization failure
	AuthError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	code := DetermineExitCode(err)
	Exit(code)
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Coded errors map directly; anything else falls back to message heuristics.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	var deckErr *errors.DeckError
	if stderrors.As(err, &deckErr) {
		switch {
		case strings.HasPrefix(string(deckErr.Code), "AUTH-"):
			return AuthError
		case deckErr.Code == errors.ErrCodeAPIUnreachable:
			return NetworkError
		case deckErr.Code == errors.ErrCodeBillingGated:
			return FeatureGated
		case strings.HasPrefix(string(deckErr.Code), "ONBOARD-"):
			return OnboardingIncomplete
		}
		return GeneralError
	}

	errMsg := strings.ToLower(err.Error())

	// Authentication errors
	if strings.Contains(errMsg, "authentication") || strings.Contains(errMsg, "unauthorized") {
		return AuthError
	}
	if strings.Contains(errMsg, "token") || strings.Contains(errMsg, "login") {
		return AuthError
	}

	// Network errors
	if strings.Contains(errMsg, "network") || strings.Contains(errMsg, "connection") {
		return NetworkError
	}
	if strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}

	// Usage errors
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") {
		return UsageError
	}
	if strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case FeatureGated:
		return "Feature not included in current plan"
	case OnboardingIncomplete:
		return "Onboarding incomplete"
	case AuthError:
		return "Authentication error"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
