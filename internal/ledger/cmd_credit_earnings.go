package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
)

// ExecuteCreditEarnings credits tokens earned by a professional for completed
// work. Eligibility (role and documents) is the action gate's responsibility
// at the transport layer.
func (e *Engine) ExecuteCreditEarnings(ctx context.Context, tx pgx.Tx, params domain.CreditEarningsParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	account, err := e.LockAccountForUpdate(ctx, tx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("credit earnings: %w", err)
	}

	if dup, err := e.checkIdempotency(ctx, tx, account, params.ExternalTransactionID); err != nil || dup != nil {
		return dup, err
	}

	entry, updated, err := e.PostLedgerEntry(ctx, tx, domain.PostLedgerEntryParams{
		AccountID:             params.AccountID,
		Type:                  domain.TxEarningsCredit,
		Amount:                params.Amount,
		CounterUpdate:         domain.CounterUpdate{EarnedTokens: params.Amount},
		ExternalTransactionID: strPtr(params.ExternalTransactionID),
		Metadata:              ensureJSON(params.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("earnings post: %w", err)
	}

	return &domain.CommandResult{Transaction: entry, Account: updated}, nil
}
