package ledger

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
)

// ExecuteActivatePlan switches the account to the given tier and applies the
// tier's token grant. Plan tokens are additive: an upgrade grants the new
// tier's tokens on top of remaining ones, and plan_started_at resets, which
// restarts the cashback tenure clock.
func (e *Engine) ExecuteActivatePlan(ctx context.Context, tx pgx.Tx, params domain.ActivatePlanParams) (*domain.CommandResult, error) {
	if err := domain.ValidatePlanTier(params.Tier); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if params.Tier == domain.PlanNone {
		return nil, domain.ErrValidation("cannot activate the none tier")
	}

	account, err := e.LockAccountForUpdate(ctx, tx, params.AccountID)
	if err != nil {
		return nil, fmt.Errorf("activate plan: %w", err)
	}

	if dup, err := e.checkIdempotency(ctx, tx, account, params.ExternalTransactionID); err != nil || dup != nil {
		return dup, err
	}

	grant := domain.PlanGrant(params.Tier)
	tier := params.Tier
	entry, updated, err := e.PostLedgerEntry(ctx, tx, domain.PostLedgerEntryParams{
		AccountID:             params.AccountID,
		Type:                  domain.TxPlanActivation,
		Amount:                grant,
		CounterUpdate:         domain.CounterUpdate{PlanTokens: grant},
		PlanTier:              &tier,
		ExternalTransactionID: strPtr(params.ExternalTransactionID),
		Metadata: mergeMeta(params.Metadata, map[string]interface{}{
			"plan":          tier,
			"previous_plan": account.Plan,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("plan activation post: %w", err)
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewPlanActivatedEvent(params.AccountID, tier, grant)); err != nil {
		return nil, fmt.Errorf("insert plan event: %w", err)
	}

	return &domain.CommandResult{Transaction: entry, Account: updated}, nil
}
