// Package projection builds read models over account snapshots. Projections
// never validate and never mutate; they may run with unlimited concurrency.
package projection

import (
	"time"

	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/economy"
)

// WalletView is the presentation-ready wallet summary.
type WalletView struct {
	AccountID              string          `json:"account_id"`
	Plan                   domain.PlanTier `json:"plan"`
	PlanTokens             int64           `json:"plan_tokens"`
	EarnedTokens           int64           `json:"earned_tokens"`
	PurchasedTokens        int64           `json:"purchased_tokens"`
	SpentTokens            int64           `json:"spent_tokens"`
	TotalBalance           int64           `json:"total_balance"`
	AccruedCredits         int64           `json:"accrued_credits"`
	WithdrawnCredits       int64           `json:"withdrawn_credits"`
	AvailableWithdrawal    int64           `json:"available_withdrawal"`
	MonthlyWithdrawalLimit int64           `json:"monthly_withdrawal_limit"`
	MonthsActive           int             `json:"months_active"`
	UpdatedAt              string          `json:"updated_at,omitempty"`
}

// ProjectWallet aggregates an account snapshot into a WalletView.
func ProjectWallet(snap domain.AccountSnapshot, now time.Time) WalletView {
	return WalletView{
		AccountID:              snap.ID.String(),
		Plan:                   snap.Plan,
		PlanTokens:             snap.PlanTokens,
		EarnedTokens:           snap.EarnedTokens,
		PurchasedTokens:        snap.PurchasedTokens,
		SpentTokens:            snap.SpentTokens,
		TotalBalance:           snap.AvailableTokens(),
		AccruedCredits:         snap.AccruedCredits,
		WithdrawnCredits:       snap.WithdrawnCredits,
		AvailableWithdrawal:    snap.AvailableCredits(),
		MonthlyWithdrawalLimit: economy.MonthlyWithdrawalLimit(snap),
		MonthsActive:           economy.MonthsActive(snap.PlanStartedAt, now),
	}
}
