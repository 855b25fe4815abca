package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/economy"
)

// ExecuteSpendTokens deducts tokens for a service hire. The consumption
// authorizer runs against the locked snapshot, so its decision holds for the
// lifetime of this transaction.
func (e *Engine) ExecuteSpendTokens(ctx context.Context, tx pgx.Tx, params domain.SpendTokensParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	account, err := e.LockAccountForUpdate(ctx, tx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("spend tokens: %w", err)
	}

	if dup, err := e.checkIdempotency(ctx, tx, account, params.ExternalTransactionID); err != nil || dup != nil {
		return dup, err
	}

	if d := economy.ValidateConsumption(*account, params.Amount); !d.Allowed {
		return nil, domain.ErrDenied(d.Message)
	}

	entry, updated, err := e.PostLedgerEntry(ctx, tx, domain.PostLedgerEntryParams{
		AccountID:             params.AccountID,
		Type:                  domain.TxTokenSpend,
		Amount:                params.Amount,
		CounterUpdate:         domain.CounterUpdate{SpentTokens: params.Amount},
		ExternalTransactionID: strPtr(params.ExternalTransactionID),
		Metadata:              ensureJSON(params.Metadata),
	})
	if err != nil {
		return nil, fmt.Errorf("spend post: %w", err)
	}

	return &domain.CommandResult{Transaction: entry, Account: updated}, nil
}
