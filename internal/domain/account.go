package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanTier identifies a subscription plan.
type PlanTier string

const (
	PlanNone     PlanTier = "none"
	PlanBasic    PlanTier = "basic"
	PlanStandard PlanTier = "standard"
	PlanPro      PlanTier = "pro"
	PlanMax      PlanTier = "max"
)

// planGrants maps each tier to the tokens granted on activation.
var planGrants = map[PlanTier]int64{
	PlanNone:     0,
	PlanBasic:    7000,
	PlanStandard: 14000,
	PlanPro:      21000,
	PlanMax:      30000,
}

// PlanGrant returns the token grant for a tier; unknown tiers grant nothing.
func PlanGrant(tier PlanTier) int64 {
	return planGrants[tier]
}

// ValidPlanTier reports whether tier is one of the known plans.
func ValidPlanTier(tier PlanTier) bool {
	_, ok := planGrants[tier]
	return ok
}

// TokenCounters are the monotonic token counters. They only ever grow; the
// spendable balance is derived, never stored.
type TokenCounters struct {
	PlanTokens      int64 `json:"plan_tokens"`
	EarnedTokens    int64 `json:"earned_tokens"`
	PurchasedTokens int64 `json:"purchased_tokens"`
	SpentTokens     int64 `json:"spent_tokens"`
}

// CreditCounters are the monotonic cashback credit counters.
type CreditCounters struct {
	AccruedCredits   int64 `json:"accrued_credits"`
	WithdrawnCredits int64 `json:"withdrawn_credits"`
}

// AccountSnapshot is the full counter state of one account as read from the
// accounts row. All balance arithmetic happens on this value in memory.
type AccountSnapshot struct {
	ID uuid.UUID `json:"id"`
	TokenCounters
	CreditCounters
	Plan          PlanTier   `json:"plan"`
	PlanStartedAt *time.Time `json:"plan_started_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TotalTokens is the lifetime token inflow across all three sources.
func (s AccountSnapshot) TotalTokens() int64 {
	return s.PlanTokens + s.EarnedTokens + s.PurchasedTokens
}

// AvailableTokens is the spendable token balance.
func (s AccountSnapshot) AvailableTokens() int64 {
	return s.TotalTokens() - s.SpentTokens
}

// AvailableCredits is the withdrawable cashback balance.
func (s AccountSnapshot) AvailableCredits() int64 {
	return s.AccruedCredits - s.WithdrawnCredits
}

// AccountProfile holds the identity attributes of an account: credentials,
// role and the document-verification flag the eligibility gate reads.
type AccountProfile struct {
	AccountID         uuid.UUID `json:"account_id"`
	Email             string    `json:"email"`
	PasswordHash      string    `json:"-"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	DocumentsVerified bool      `json:"documents_verified"`
	CreatedAt         time.Time `json:"created_at"`
}
