// Package billing derives feature access and usage warnings from the
// server's usage snapshot, and bounds how often the snapshot is refetched.
package billing

import (
	"fmt"
	"strings"

	"github.com/reviewdeck/reviewdeck/internal/api"
)

// Tier represents the subscription level
type Tier string

const (
	// TierFree is the free plan
	TierFree Tier = "free"
	// TierStarter is the paid starter plan
	TierStarter Tier = "starter"
	// TierProfessional is the full plan with analytics and collaboration
	TierProfessional Tier = "professional"
)

// ParseTier normalizes a server-reported tier string
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "professional", "pro":
		return TierProfessional
	case "starter":
		return TierStarter
	default:
		return TierFree
	}
}

// DefaultPRLimit applies when the server reports no explicit limit
const DefaultPRLimit = 50

// nearLimitRatio is the usage fraction at which the near-limit warning fires
const nearLimitRatio = 0.8

// freeUserLimit is the member ceiling on the free tier
const freeUserLimit = 5

// WarningType identifies the dimension a warning belongs to
type WarningType string

const (
	// WarningPRLimit concerns the monthly synced-PR quota
	WarningPRLimit WarningType = "pr_limit"
	// WarningUserLimit concerns the free-tier member ceiling
	WarningUserLimit WarningType = "user_limit"
	// WarningUpgrade is the general upsell shown when nothing specific applies
	WarningUpgrade WarningType = "upgrade"
)

// Severity orders warnings; critical outranks warning outranks info
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Warning is one user-facing usage notice
type Warning struct {
	Type        WarningType `json:"type"`
	Severity    Severity    `json:"severity"`
	Message     string      `json:"message"`
	Dismissible bool        `json:"dismissible"`
}

// Access is the stateless derivation over a usage snapshot
type Access struct {
	Tier                   Tier      `json:"tier"`
	CanCreatePR            bool      `json:"can_create_pr"`
	CanAccessAnalytics     bool      `json:"can_access_analytics"`
	CanAccessCollaboration bool      `json:"can_access_collaboration"`
	Warnings               []Warning `json:"warnings,omitempty"`
}

// Derive computes capability flags and warnings from a usage snapshot.
//
// At most one warning is produced per dimension, the most severe applicable
// one; the general upsell is suppressed whenever any specific warning is
// present.
func Derive(info api.BillingInfo) Access {
	tier := ParseTier(info.SubscriptionTier)
	limit := info.Limit
	if limit <= 0 {
		limit = DefaultPRLimit
	}

	access := Access{
		Tier:                   tier,
		CanAccessAnalytics:     tier == TierProfessional,
		CanAccessCollaboration: tier == TierProfessional,
	}

	if tier == TierProfessional {
		access.CanCreatePR = true
		return access
	}
	access.CanCreatePR = info.PRCount < limit

	// PR dimension: limit reached outranks near-limit.
	switch {
	case info.PRCount >= limit:
		access.Warnings = append(access.Warnings, Warning{
			Type:     WarningPRLimit,
			Severity: SeverityCritical,
			Message: fmt.Sprintf("You've reached your limit of %d synced pull requests this month. "+
				"New pull requests will not sync until %s.", limit, info.ResetDate.Format("Jan 2")),
			Dismissible: false,
		})
	case float64(info.PRCount)/float64(limit) >= nearLimitRatio:
		access.Warnings = append(access.Warnings, Warning{
			Type:     WarningPRLimit,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("You've used %d of %d synced pull requests this month.",
				info.PRCount, limit),
			Dismissible: true,
		})
	}

	// User dimension: free tier member ceiling.
	if tier == TierFree && info.UserCount > freeUserLimit {
		access.Warnings = append(access.Warnings, Warning{
			Type:     WarningUserLimit,
			Severity: SeverityWarning,
			Message: fmt.Sprintf("Your team has %d members; the free plan covers %d.",
				info.UserCount, freeUserLimit),
			Dismissible: true,
		})
	}

	// General upsell only when nothing specific applies.
	if len(access.Warnings) == 0 {
		access.Warnings = append(access.Warnings, Warning{
			Type:        WarningUpgrade,
			Severity:    SeverityInfo,
			Message:     "Upgrade to Professional for analytics and collaboration dashboards.",
			Dismissible: true,
		})
	}

	return access
}
