package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionType enumerates all token-economy transaction types.
type TransactionType string

const (
	TxTokenPurchase      TransactionType = "token_purchase"
	TxTokenSpend         TransactionType = "token_spend"
	TxEarningsCredit     TransactionType = "earnings_credit"
	TxPlanActivation     TransactionType = "plan_activation"
	TxCashbackAccrual    TransactionType = "cashback_accrual"
	TxCashbackWithdrawal TransactionType = "cashback_withdrawal"
)

// Transaction represents a token_transactions row (append-only ledger entry).
// The *After columns snapshot the account counters post-update.
type Transaction struct {
	ID                    uuid.UUID       `json:"id"`
	AccountID             uuid.UUID       `json:"account_id"`
	Type                  TransactionType `json:"type"`
	Amount                int64           `json:"amount"`
	PlanTokensAfter       int64           `json:"plan_tokens_after"`
	EarnedTokensAfter     int64           `json:"earned_tokens_after"`
	PurchasedTokensAfter  int64           `json:"purchased_tokens_after"`
	SpentTokensAfter      int64           `json:"spent_tokens_after"`
	AccruedCreditsAfter   int64           `json:"accrued_credits_after"`
	WithdrawnCreditsAfter int64           `json:"withdrawn_credits_after"`
	ExternalTransactionID *string         `json:"external_transaction_id,omitempty"`
	Metadata              json.RawMessage `json:"metadata"`
	CreatedAt             time.Time       `json:"created_at"`
}

// IdempotencyKey is the composite key used for deduplication.
type IdempotencyKey struct {
	AccountID             uuid.UUID
	ExternalTransactionID string
}
