package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestDeckError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *DeckError
		contains []string
	}{
		{
			name:     "code and message",
			err:      New(ErrCodeAPIStatus, "request failed"),
			contains: []string{"[API-002]", "request failed"},
		},
		{
			name:     "with cause",
			err:      Wrap(ErrCodeSessionRead, "cannot load session", fmt.Errorf("permission denied")),
			contains: []string{"[SESSION-001]", "cannot load session", "permission denied"},
		},
		{
			name: "with suggestions",
			err: New(ErrCodeAuthRequired, "not logged in").
				WithSuggestion("Run 'reviewdeck login'"),
			contains: []string{"Suggestions:", "reviewdeck login"},
		},
		{
			name: "with docs url",
			err: New(ErrCodeBillingGated, "gated").
				WithDocs("https://reviewdeck.io/docs/plans"),
			contains: []string{"Documentation: https://reviewdeck.io/docs/plans"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("Error() = %q, want it to contain %q", msg, want)
				}
			}
		})
	}
}

func TestDeckError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(ErrCodeAPIRequest, "wrapped", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}

	var deckErr *DeckError
	if !errors.As(error(err), &deckErr) {
		t.Error("errors.As should extract *DeckError")
	}
	if deckErr.Code != ErrCodeAPIRequest {
		t.Errorf("Code = %v, want %v", deckErr.Code, ErrCodeAPIRequest)
	}
}

func TestNewAuthRequiredError(t *testing.T) {
	err := NewAuthRequiredError()
	if err.Code != ErrCodeAuthRequired {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeAuthRequired)
	}
	if len(err.Suggestions) == 0 {
		t.Error("auth required error should carry login suggestions")
	}
}

func TestNewFeatureGatedError(t *testing.T) {
	err := NewFeatureGatedError("analytics", "free")
	msg := err.Error()
	if !strings.Contains(msg, "analytics") || !strings.Contains(msg, "free") {
		t.Errorf("Error() = %q, want feature and tier named", msg)
	}
}
