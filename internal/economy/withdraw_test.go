package economy

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prohub/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withdrawalSnapshot(start *time.Time, accrued, withdrawn int64) domain.AccountSnapshot {
	return domain.AccountSnapshot{
		ID:             uuid.New(),
		Plan:           domain.PlanStandard,
		PlanStartedAt:  start,
		TokenCounters:  domain.TokenCounters{PlanTokens: 14000},
		CreditCounters: domain.CreditCounters{AccruedCredits: accrued, WithdrawnCredits: withdrawn},
	}
}

func TestValidateWithdrawal_TenureGate(t *testing.T) {
	now := date(2025, time.September, 15)
	snap := withdrawalSnapshot(datePtr(2025, time.June, 15), 1000, 0)

	// Three months active: denied regardless of amount.
	for _, amount := range []int64{1, 50, 1000} {
		d := ValidateWithdrawal(snap, amount, now)
		assert.False(t, d.Allowed)
		assert.Contains(t, d.Message, "six months")
		assert.Nil(t, d.NewBalance)
	}
}

func TestValidateWithdrawal_NoPlan(t *testing.T) {
	now := date(2025, time.September, 15)
	d := ValidateWithdrawal(withdrawalSnapshot(nil, 1000, 0), 1, now)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Message, "six months")
}

func TestValidateWithdrawal_WithinLimits(t *testing.T) {
	now := date(2025, time.September, 15)
	snap := withdrawalSnapshot(datePtr(2025, time.March, 15), 1000, 0)

	d := ValidateWithdrawal(snap, 80, now)
	assert.True(t, d.Allowed)
	assert.Contains(t, d.Message, "80")
	require.NotNil(t, d.NewBalance)
	assert.Equal(t, int64(920), *d.NewBalance)
}

func TestValidateWithdrawal_MonthlyLimitExceeded(t *testing.T) {
	now := date(2025, time.September, 15)
	snap := withdrawalSnapshot(datePtr(2025, time.March, 15), 1000, 0)

	// monthlyLimit = round(1000 × 0.087) = 87
	d := ValidateWithdrawal(snap, 90, now)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Message, "87")
	assert.Equal(t, int64(87), d.Limit)
	assert.Nil(t, d.NewBalance)
}

func TestValidateWithdrawal_InsufficientAvailableBalance(t *testing.T) {
	now := date(2025, time.September, 15)
	// Nearly everything already withdrawn: available = 10, limit = 87.
	snap := withdrawalSnapshot(datePtr(2025, time.March, 15), 1000, 990)

	d := ValidateWithdrawal(snap, 50, now)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Message, "10")
	assert.Equal(t, int64(10), d.Limit)
}

func TestValidateWithdrawal_LimitCheckPrecedesBalanceCheck(t *testing.T) {
	now := date(2025, time.September, 15)
	// Both checks would fail; the monthly limit message wins.
	snap := withdrawalSnapshot(datePtr(2025, time.March, 15), 1000, 990)

	d := ValidateWithdrawal(snap, 500, now)
	assert.False(t, d.Allowed)
	assert.Contains(t, d.Message, "monthly withdrawal limit")
}

func TestValidateWithdrawal_NeverAllowsAboveEitherCeiling(t *testing.T) {
	now := date(2025, time.September, 15)
	snap := withdrawalSnapshot(datePtr(2025, time.January, 1), 2000, 1900)

	limit := MonthlyWithdrawalLimit(snap)
	available := snap.AvailableCredits()

	for amount := int64(1); amount <= 300; amount += 7 {
		d := ValidateWithdrawal(snap, amount, now)
		if d.Allowed {
			assert.LessOrEqual(t, amount, limit)
			assert.LessOrEqual(t, amount, available)
		}
	}
}

func TestValidateWithdrawal_Idempotent(t *testing.T) {
	now := date(2025, time.September, 15)
	snap := withdrawalSnapshot(datePtr(2025, time.March, 15), 1000, 0)

	first := ValidateWithdrawal(snap, 80, now)
	second := ValidateWithdrawal(snap, 80, now)
	assert.Equal(t, first.Allowed, second.Allowed)
	assert.Equal(t, first.Message, second.Message)
	assert.Equal(t, *first.NewBalance, *second.NewBalance)
}
