package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Validator Tests ---

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
		errMsg  string
	}{
		{"valid email", "user@example.com", false, ""},
		{"valid email with dots", "first.last@example.co.uk", false, ""},
		{"valid email with plus", "user+tag@example.com", false, ""},
		{"empty string", "", true, "email is required"},
		{"no at sign", "userexample.com", true, "invalid email format"},
		{"no domain", "user@", true, "invalid email format"},
		{"no tld", "user@example", true, "invalid email format"},
		{"spaces", "user @example.com", true, "invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePositiveAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		wantErr bool
	}{
		{"positive", 100, false},
		{"one token", 1, false},
		{"large amount", 999_999_999, false},
		{"zero", 0, true},
		{"negative", -100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePositiveAmount(tt.amount)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "amount must be positive")
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePlanTier(t *testing.T) {
	for _, tier := range []PlanTier{PlanNone, PlanBasic, PlanStandard, PlanPro, PlanMax} {
		assert.NoError(t, ValidatePlanTier(tier))
	}
	assert.Error(t, ValidatePlanTier(PlanTier("platinum")))
	assert.Error(t, ValidatePlanTier(PlanTier("")))
}

// --- Plan Grant Tests ---

func TestPlanGrant(t *testing.T) {
	tests := []struct {
		tier  PlanTier
		grant int64
	}{
		{PlanNone, 0},
		{PlanBasic, 7000},
		{PlanStandard, 14000},
		{PlanPro, 21000},
		{PlanMax, 30000},
		{PlanTier("unknown"), 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.grant, PlanGrant(tt.tier), "tier=%s", tt.tier)
	}
}

// --- Snapshot Tests ---

func TestAccountSnapshotBalances(t *testing.T) {
	snap := AccountSnapshot{
		ID: uuid.New(),
		TokenCounters: TokenCounters{
			PlanTokens:      14000,
			EarnedTokens:    500,
			PurchasedTokens: 1500,
			SpentTokens:     4000,
		},
		CreditCounters: CreditCounters{AccruedCredits: 1000, WithdrawnCredits: 300},
	}

	assert.Equal(t, int64(16000), snap.TotalTokens())
	assert.Equal(t, int64(12000), snap.AvailableTokens())
	assert.Equal(t, int64(700), snap.AvailableCredits())
}

func TestValidateSnapshot(t *testing.T) {
	now := time.Now()
	valid := AccountSnapshot{
		ID:            uuid.New(),
		Plan:          PlanBasic,
		PlanStartedAt: &now,
		TokenCounters: TokenCounters{PlanTokens: 7000, SpentTokens: 100},
	}
	require.NoError(t, ValidateSnapshot(valid))

	t.Run("negative counter", func(t *testing.T) {
		s := valid
		s.EarnedTokens = -1
		assert.Error(t, ValidateSnapshot(s))
	})

	t.Run("overspent", func(t *testing.T) {
		s := valid
		s.SpentTokens = 7001
		assert.Error(t, ValidateSnapshot(s))
	})

	t.Run("overwithdrawn", func(t *testing.T) {
		s := valid
		s.AccruedCredits = 10
		s.WithdrawnCredits = 11
		assert.Error(t, ValidateSnapshot(s))
	})
}
