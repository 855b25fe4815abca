package domain

import (
	"encoding/json"

	"github.com/google/uuid"
)

// CounterUpdate describes which account counters to update and by how much.
// Used by PostLedgerEntry to build the dynamic UPDATE statement.
type CounterUpdate struct {
	PlanTokens       int64 // delta for plan_tokens column
	EarnedTokens     int64 // delta for earned_tokens column
	PurchasedTokens  int64 // delta for purchased_tokens column
	SpentTokens      int64 // delta for spent_tokens column
	AccruedCredits   int64 // delta for accrued_credits column
	WithdrawnCredits int64 // delta for withdrawn_credits column
}

// IsZero returns true if no counter changes.
func (u CounterUpdate) IsZero() bool {
	return u == CounterUpdate{}
}

// PostLedgerEntryParams is the input to the atomic PostLedgerEntry operation.
type PostLedgerEntryParams struct {
	AccountID             uuid.UUID
	Type                  TransactionType
	Amount                int64
	CounterUpdate         CounterUpdate
	PlanTier              *PlanTier // set only for plan activation
	ExternalTransactionID *string
	Metadata              json.RawMessage
}

// CommandResult is the return value from all ledger commands.
type CommandResult struct {
	Transaction *Transaction
	Account     *AccountSnapshot
	Idempotent  bool // true if this was a duplicate that returned existing tx
}

// PurchaseTokensParams holds the input for ExecutePurchaseTokens.
type PurchaseTokensParams struct {
	AccountID             uuid.UUID
	Amount                int64
	ExternalTransactionID string
	Metadata              json.RawMessage
}

// SpendTokensParams holds the input for ExecuteSpendTokens.
type SpendTokensParams struct {
	AccountID             uuid.UUID
	Amount                int64
	ExternalTransactionID string
	Metadata              json.RawMessage
}

// CreditEarningsParams holds the input for ExecuteCreditEarnings.
type CreditEarningsParams struct {
	AccountID             uuid.UUID
	Amount                int64
	ExternalTransactionID string
	Metadata              json.RawMessage
}

// ActivatePlanParams holds the input for ExecuteActivatePlan.
type ActivatePlanParams struct {
	AccountID             uuid.UUID
	Tier                  PlanTier
	ExternalTransactionID string
	Metadata              json.RawMessage
}

// WithdrawCashbackParams holds the input for ExecuteWithdrawCashback.
type WithdrawCashbackParams struct {
	AccountID             uuid.UUID
	Amount                int64
	ExternalTransactionID string
	Metadata              json.RawMessage
}

// SyncCashbackParams holds the input for ExecuteSyncCashback.
type SyncCashbackParams struct {
	AccountID uuid.UUID
	Metadata  json.RawMessage
}
