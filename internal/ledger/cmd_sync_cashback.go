package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/economy"
)

// ExecuteSyncCashback recomputes the cashback entitlement and raises
// accrued_credits to it. The entitlement formula is monotonic for a fixed
// plan, so a sync never lowers the counter; when the entitlement has not
// moved since the last sync the command is a no-op and posts nothing.
func (e *Engine) ExecuteSyncCashback(ctx context.Context, tx pgx.Tx, params domain.SyncCashbackParams) (*domain.CommandResult, error) {
	account, err := e.LockAccountForUpdate(ctx, tx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("sync cashback: %w", err)
	}

	entitlement := economy.ComputeCashback(*account, time.Now().UTC())
	delta := entitlement - account.AccruedCredits
	if delta <= 0 {
		return &domain.CommandResult{Account: account, Idempotent: true}, nil
	}

	entry, updated, err := e.PostLedgerEntry(ctx, tx, domain.PostLedgerEntryParams{
		AccountID:     params.AccountID,
		Type:          domain.TxCashbackAccrual,
		Amount:        delta,
		CounterUpdate: domain.CounterUpdate{AccruedCredits: delta},
		Metadata: mergeMeta(params.Metadata, map[string]interface{}{
			"entitlement": entitlement,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("cashback post: %w", err)
	}

	return &domain.CommandResult{Transaction: entry, Account: updated}, nil
}
