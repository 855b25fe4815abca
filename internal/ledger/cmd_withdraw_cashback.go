package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/economy"
)

// ExecuteWithdrawCashback moves credits from available to withdrawn after the
// withdrawal authorizer approves the amount against the locked snapshot.
func (e *Engine) ExecuteWithdrawCashback(ctx context.Context, tx pgx.Tx, params domain.WithdrawCashbackParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}

	account, err := e.LockAccountForUpdate(ctx, tx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("withdraw cashback: %w", err)
	}

	if dup, err := e.checkIdempotency(ctx, tx, account, params.ExternalTransactionID); err != nil || dup != nil {
		return dup, err
	}

	d := economy.ValidateWithdrawal(*account, params.Amount, time.Now().UTC())
	if !d.Allowed {
		return nil, domain.ErrDenied(d.Message)
	}

	entry, updated, err := e.PostLedgerEntry(ctx, tx, domain.PostLedgerEntryParams{
		AccountID:             params.AccountID,
		Type:                  domain.TxCashbackWithdrawal,
		Amount:                params.Amount,
		CounterUpdate:         domain.CounterUpdate{WithdrawnCredits: params.Amount},
		ExternalTransactionID: strPtr(params.ExternalTransactionID),
		Metadata: mergeMeta(params.Metadata, map[string]interface{}{
			"monthly_limit": economy.MonthlyWithdrawalLimit(*account),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("withdrawal post: %w", err)
	}

	return &domain.CommandResult{Transaction: entry, Account: updated}, nil
}
