package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
)

// ExecutePurchaseTokens credits purchased tokens to the account. Buying
// tokens has no numeric precondition; the gate allows it for every role.
func (e *Engine) ExecutePurchaseTokens(ctx context.Context, tx pgx.Tx, params domain.PurchaseTokensParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	account, err := e.LockAccountForUpdate(ctx, tx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("purchase tokens: %w", err)
	}

	if dup, err := e.checkIdempotency(ctx, tx, account, params.ExternalTransactionID); err != nil || dup != nil {
		return dup, err
	}

	entry, updated, err := e.PostLedgerEntry(ctx, tx, domain.PostLedgerEntryParams{
		AccountID:             params.AccountID,
		Type:                  domain.TxTokenPurchase,
		Amount:                params.Amount,
		CounterUpdate:         domain.CounterUpdate{PurchasedTokens: params.Amount},
		ExternalTransactionID: strPtr(params.ExternalTransactionID),
		Metadata:              ensureJSON(params.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("purchase post: %w", err)
	}

	return &domain.CommandResult{Transaction: entry, Account: updated}, nil
}
