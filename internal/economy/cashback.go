package economy

import (
	"time"

	"github.com/prohub/platform/internal/domain"
)

// Cashback rates, expressed in thousandths so the whole computation stays in
// integer arithmetic and is rounded exactly once at the end.
const (
	monthlyRateMilli  = 87  // 8.7% monthly rate
	bonusRateMilli    = 20  // 2% activity bonus
	ceilingRateMilli  = 600 // hard ceiling at 60% of plan tokens
	fixedPeriodMonths = 6   // flat six-month equivalent applied once eligible
	minTenureMonths   = 6   // no accrual before six months of active plan
)

// ComputeCashback derives the accumulated cashback entitlement from plan
// tenure and plan tokens. Accounts under the six-month grace period accrue
// nothing. Past it, the entitlement is a flat six-month equivalent of the
// monthly rate plus a bounded activity bonus, capped at 60% of plan tokens.
//
// The bonus term min(rate×tokens×months, rate×tokens) collapses to the cap
// for any qualifying tenure; the formula is kept in full so a future change
// to the eligibility threshold keeps the intended bound.
func ComputeCashback(snap domain.AccountSnapshot, now time.Time) int64 {
	if MonthsActive(snap.PlanStartedAt, now) < minTenureMonths {
		return 0
	}

	months := int64(MonthsActive(snap.PlanStartedAt, now))
	fixed := monthlyRateMilli * snap.PlanTokens * fixedPeriodMonths
	bonus := min(bonusRateMilli*snap.PlanTokens*months, bonusRateMilli*snap.PlanTokens)
	ceiling := ceilingRateMilli * snap.PlanTokens

	return roundDiv(min(fixed+bonus, ceiling), 1000)
}

// MonthlyWithdrawalLimit is the per-call withdrawal ceiling: 8.7% of the
// lifetime accrued-credit balance. This is deliberately not a consumable
// monthly quota — there is no withdrawn-this-month counter in the model, so
// the ceiling resets on every call. External rate limiting is the only thing
// standing between a caller and repeated same-month withdrawals at the
// ceiling; see the guard package.
func MonthlyWithdrawalLimit(snap domain.AccountSnapshot) int64 {
	return roundDiv(monthlyRateMilli*snap.AccruedCredits, 1000)
}
