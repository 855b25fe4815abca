package projection

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prohub/platform/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectWallet(t *testing.T) {
	start := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)

	snap := domain.AccountSnapshot{
		ID:            uuid.New(),
		Plan:          domain.PlanStandard,
		PlanStartedAt: &start,
		TokenCounters: domain.TokenCounters{
			PlanTokens:      14000,
			EarnedTokens:    300,
			PurchasedTokens: 700,
			SpentTokens:     5000,
		},
		CreditCounters: domain.CreditCounters{
			AccruedCredits:   1000,
			WithdrawnCredits: 200,
		},
	}

	v := ProjectWallet(snap, now)

	assert.Equal(t, snap.ID.String(), v.AccountID)
	assert.Equal(t, domain.PlanStandard, v.Plan)
	assert.Equal(t, int64(10000), v.TotalBalance)
	assert.Equal(t, int64(800), v.AvailableWithdrawal)
	assert.Equal(t, int64(87), v.MonthlyWithdrawalLimit)
	assert.Equal(t, 6, v.MonthsActive)
}

func TestProjectWallet_EmptyAccount(t *testing.T) {
	now := time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC)
	v := ProjectWallet(domain.AccountSnapshot{ID: uuid.New(), Plan: domain.PlanNone}, now)

	assert.Equal(t, int64(0), v.TotalBalance)
	assert.Equal(t, int64(0), v.MonthlyWithdrawalLimit)
	assert.Equal(t, 0, v.MonthsActive)
}

func TestInMemoryStore_SetAndGet(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "k1", []byte("hello"), 0)
	require.NoError(t, err)

	val, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), val)
}

func TestInMemoryStore_KeyNotFound(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.Error(t, err)
}

func TestInMemoryStore_TTLExpiry(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "k1", []byte("data"), 1*time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, err := store.Get(ctx, "k1")
	assert.Error(t, err)
}

func TestWalletCacheRoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()
	accountID := uuid.New().String()

	v := WalletView{AccountID: accountID, TotalBalance: 4200, MonthsActive: 7}
	require.NoError(t, UpdateWallet(ctx, store, v))

	got, err := GetWallet(ctx, store, accountID)
	require.NoError(t, err)
	assert.Equal(t, int64(4200), got.TotalBalance)
	assert.NotEmpty(t, got.UpdatedAt)

	require.NoError(t, InvalidateWallet(ctx, store, accountID))
	_, err = GetWallet(ctx, store, accountID)
	assert.Error(t, err)
}
