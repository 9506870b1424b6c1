package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Auth errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired     ErrorCode = "AUTH-001"
	ErrCodeAuthFailed       ErrorCode = "AUTH-002"
	ErrCodeAuthTokenExpired ErrorCode = "AUTH-003"
	ErrCodeAuthRegister     ErrorCode = "AUTH-004"

	// API errors (API-001 to API-099)
	ErrCodeAPIRequest     ErrorCode = "API-001"
	ErrCodeAPIStatus      ErrorCode = "API-002"
	ErrCodeAPIDecode      ErrorCode = "API-003"
	ErrCodeAPIUnreachable ErrorCode = "API-004"

	// Session errors (SESSION-001 to SESSION-099)
	ErrCodeSessionRead    ErrorCode = "SESSION-001"
	ErrCodeSessionWrite   ErrorCode = "SESSION-002"
	ErrCodeSessionInvalid ErrorCode = "SESSION-003"

	// Billing errors (BILLING-001 to BILLING-099)
	ErrCodeBillingFetch    ErrorCode = "BILLING-001"
	ErrCodeBillingGated    ErrorCode = "BILLING-002"
	ErrCodeBillingCheckout ErrorCode = "BILLING-003"

	// Onboarding errors (ONBOARD-001 to ONBOARD-099)
	ErrCodeOnboardStatus     ErrorCode = "ONBOARD-001"
	ErrCodeOnboardStepGate   ErrorCode = "ONBOARD-002"
	ErrCodeOnboardIncomplete ErrorCode = "ONBOARD-003"
	ErrCodeOnboardMapping    ErrorCode = "ONBOARD-004"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
	ErrCodeFileUnmarshal   ErrorCode = "IO-004"
	ErrCodeFileMarshal     ErrorCode = "IO-005"
)

// DeckError represents an enhanced error with code, suggestions, and documentation
type DeckError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	DocsURL     string
	Cause       error
}

// Error implements the error interface
func (e *DeckError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	if e.DocsURL != "" {
		b.WriteString(fmt.Sprintf("\n\nDocumentation: %s", e.DocsURL))
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *DeckError) Unwrap() error {
	return e.Cause
}

// New creates a new DeckError
func New(code ErrorCode, message string) *DeckError {
	return &DeckError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new DeckError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *DeckError {
	return &DeckError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *DeckError) WithSuggestion(suggestion string) *DeckError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *DeckError) WithSuggestions(suggestions ...string) *DeckError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// WithDocs adds a documentation URL to the error
func (e *DeckError) WithDocs(url string) *DeckError {
	e.DocsURL = url
	return e
}

// Common error constructors for frequently used errors

// NewAuthRequiredError is returned when a command needs a session and none
// exists, or the server rejected the token with a 401.
func NewAuthRequiredError() *DeckError {
	return New(ErrCodeAuthRequired, "not logged in or session expired").
		WithSuggestion("Run 'reviewdeck login' to authenticate").
		WithSuggestion("Run 'reviewdeck whoami' to check your session")
}

// NewAuthFailedError creates a login failure error
func NewAuthFailedError(cause error) *DeckError {
	return Wrap(ErrCodeAuthFailed, "authentication failed", cause).
		WithSuggestion("Check your email and password").
		WithSuggestion("Use 'reviewdeck register' if you don't have an account yet")
}

// NewAPIUnreachableError creates a transport failure error
func NewAPIUnreachableError(baseURL string, cause error) *DeckError {
	return Wrap(ErrCodeAPIUnreachable, fmt.Sprintf("cannot reach the ReviewDeck API at %s", baseURL), cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Set REVIEWDECK_API_URL if your organization uses a custom endpoint")
}

// NewFeatureGatedError is returned when a premium dashboard is requested on a
// tier that does not include it.
func NewFeatureGatedError(feature string, tier string) *DeckError {
	return New(ErrCodeBillingGated, fmt.Sprintf("'%s' requires the Professional plan (current: %s)", feature, tier)).
		WithSuggestion("Run 'reviewdeck upgrade' to get a checkout link").
		WithSuggestion("Run 'reviewdeck billing' to review your current usage")
}

// NewOnboardStepGateError is returned when a wizard step's requirements are not met
func NewOnboardStepGateError(step string, reason string) *DeckError {
	return New(ErrCodeOnboardStepGate, fmt.Sprintf("cannot leave onboarding step '%s': %s", step, reason))
}

// NewFileNotFoundError creates a file not found error
func NewFileNotFoundError(path string) *DeckError {
	return New(ErrCodeFileNotFound, fmt.Sprintf("file not found: %s", path)).
		WithSuggestion("Check if the file path is correct").
		WithSuggestion("Verify the file exists and you have read permissions")
}

// NewFileUnmarshalError creates an unmarshal error
func NewFileUnmarshalError(path string, format string, cause error) *DeckError {
	return Wrap(ErrCodeFileUnmarshal, fmt.Sprintf("failed to parse %s file: %s", format, path), cause).
		WithSuggestion("Check the file syntax and format").
		WithSuggestion(fmt.Sprintf("Ensure the file is valid %s", format))
}
