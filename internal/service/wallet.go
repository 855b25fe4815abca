package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/guard"
	"github.com/prohub/platform/internal/ledger"
	"github.com/prohub/platform/internal/policy"
	"github.com/prohub/platform/internal/projection"
	"github.com/prohub/platform/internal/repository"
)

// WalletService orchestrates token and cashback operations. Eligibility runs
// first against the profile, feasibility runs inside the ledger commands under
// the account row lock.
type WalletService struct {
	pool         *pgxpool.Pool
	accounts     repository.AccountRepository
	profiles     repository.ProfileRepository
	transactions repository.TransactionRepository
	engine       *ledger.Engine
	store        projection.Store
	withdrawals  *guard.RateLimiter
	inflight     *guard.IdempotencyGuard
	logger       *slog.Logger
}

// NewWalletService creates a WalletService.
func NewWalletService(
	pool *pgxpool.Pool,
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	transactions repository.TransactionRepository,
	engine *ledger.Engine,
	store projection.Store,
	withdrawals *guard.RateLimiter,
	inflight *guard.IdempotencyGuard,
	logger *slog.Logger,
) *WalletService {
	return &WalletService{
		pool:         pool,
		accounts:     accounts,
		profiles:     profiles,
		transactions: transactions,
		engine:       engine,
		store:        store,
		withdrawals:  withdrawals,
		inflight:     inflight,
		logger:       logger,
	}
}

// gate runs the eligibility decision table against the account's profile.
func (s *WalletService) gate(ctx context.Context, accountID uuid.UUID, action policy.Action) (*domain.AccountProfile, error) {
	profile, err := s.profiles.FindByAccountID(ctx, s.pool, accountID)
	if err != nil {
		return nil, domain.ErrInternal("find profile", err)
	}
	if profile == nil {
		return nil, domain.ErrNotFound("account", accountID.String())
	}
	decision := policy.Authorize(policy.Role(profile.Role), action, profile.DocumentsVerified)
	if !decision.Allowed {
		return nil, domain.ErrForbidden(decision.Reason)
	}
	return profile, nil
}

// PurchaseTokens credits purchased tokens to the account.
func (s *WalletService) PurchaseTokens(ctx context.Context, accountID uuid.UUID, amount int64, extTxID string) (*domain.CommandResult, error) {
	if _, err := s.gate(ctx, accountID, policy.ActionBuyTokens); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	result, err := s.engine.ExecutePurchaseTokens(ctx, tx, domain.PurchaseTokensParams{
		AccountID:             accountID,
		Amount:                amount,
		ExternalTransactionID: extTxID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.refreshProjection(ctx, result.Account)
	return result, nil
}

// SpendTokens debits tokens for hiring a professional's services.
func (s *WalletService) SpendTokens(ctx context.Context, accountID uuid.UUID, amount int64, extTxID string, metadata json.RawMessage) (*domain.CommandResult, error) {
	if _, err := s.gate(ctx, accountID, policy.ActionHireServices); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	result, err := s.engine.ExecuteSpendTokens(ctx, tx, domain.SpendTokensParams{
		AccountID:             accountID,
		Amount:                amount,
		ExternalTransactionID: extTxID,
		Metadata:              metadata,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.refreshProjection(ctx, result.Account)
	return result, nil
}

// CreditEarnings credits tokens a professional earned from completed work.
func (s *WalletService) CreditEarnings(ctx context.Context, accountID uuid.UUID, amount int64, extTxID string, metadata json.RawMessage) (*domain.CommandResult, error) {
	if _, err := s.gate(ctx, accountID, policy.ActionWorkAsProfessional); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	result, err := s.engine.ExecuteCreditEarnings(ctx, tx, domain.CreditEarningsParams{
		AccountID:             accountID,
		Amount:                amount,
		ExternalTransactionID: extTxID,
		Metadata:              metadata,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.refreshProjection(ctx, result.Account)
	return result, nil
}

// ActivatePlan subscribes the account to a plan tier and grants its tokens.
// Accrued cashback is synced in the same request so the new plan's entitlement
// shows up immediately, but only for document-verified accounts.
func (s *WalletService) ActivatePlan(ctx context.Context, accountID uuid.UUID, tier domain.PlanTier, extTxID string) (*domain.CommandResult, error) {
	profile, err := s.gate(ctx, accountID, policy.ActionSubscribePlan)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	result, err := s.engine.ExecuteActivatePlan(ctx, tx, domain.ActivatePlanParams{
		AccountID:             accountID,
		Tier:                  tier,
		ExternalTransactionID: extTxID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("plan activated",
		"account_id", accountID, "plan", tier, "documents_verified", profile.DocumentsVerified)
	s.refreshProjection(ctx, result.Account)
	return result, nil
}

// SyncCashback recomputes the account's cashback entitlement and accrues the
// positive delta, if any. Safe to call repeatedly.
func (s *WalletService) SyncCashback(ctx context.Context, accountID uuid.UUID) (*domain.CommandResult, error) {
	if _, err := s.gate(ctx, accountID, policy.ActionWithdrawCashback); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	result, err := s.engine.ExecuteSyncCashback(ctx, tx, domain.SyncCashbackParams{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.refreshProjection(ctx, result.Account)
	return result, nil
}

// WithdrawCashback pays out accrued cashback. The request-frequency limiter
// and an in-flight guard run before the row lock; the tenure, monthly-limit
// and balance checks run inside the ledger command.
func (s *WalletService) WithdrawCashback(ctx context.Context, accountID uuid.UUID, amount int64, extTxID string) (*domain.CommandResult, error) {
	if _, err := s.gate(ctx, accountID, policy.ActionWithdrawCashback); err != nil {
		return nil, err
	}

	if res := s.withdrawals.Check(ctx, accountID.String()); !res.Allowed {
		return nil, domain.ErrRateLimited(res.Reason)
	}

	inflightKey := fmt.Sprintf("withdraw:%s:%s", accountID, extTxID)
	if res := s.inflight.Check(ctx, inflightKey); !res.Allowed {
		return nil, domain.ErrConflict("withdrawal already in progress")
	}
	defer s.inflight.Remove(inflightKey)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	result, err := s.engine.ExecuteWithdrawCashback(ctx, tx, domain.WithdrawCashbackParams{
		AccountID:             accountID,
		Amount:                amount,
		ExternalTransactionID: extTxID,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	s.logger.Info("cashback withdrawn", "account_id", accountID, "amount", amount)
	s.refreshProjection(ctx, result.Account)
	return result, nil
}

// GetWallet returns the wallet view, served from the projection store when
// fresh and rebuilt from the account row otherwise.
func (s *WalletService) GetWallet(ctx context.Context, accountID uuid.UUID) (*projection.WalletView, error) {
	if cached, err := projection.GetWallet(ctx, s.store, accountID.String()); err == nil && cached != nil {
		return cached, nil
	}

	account, err := s.accounts.FindByID(ctx, s.pool, accountID)
	if err != nil {
		return nil, domain.ErrInternal("find account", err)
	}
	if account == nil {
		return nil, domain.ErrNotFound("account", accountID.String())
	}

	view := projection.ProjectWallet(*account, time.Now().UTC())
	if err := projection.UpdateWallet(ctx, s.store, view); err != nil {
		s.logger.Warn("wallet projection store", "error", err, "account_id", accountID)
	}
	return &view, nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 100
)

// clampPageSize bounds a requested page size. Callers may ask for one row
// beyond maxPageSize to peek whether another page exists.
func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize+1 {
		return maxPageSize + 1
	}
	return limit
}

// ListTransactions returns the account's ledger history, newest first.
func (s *WalletService) ListTransactions(ctx context.Context, accountID uuid.UUID, cursor *string, limit int) ([]domain.Transaction, error) {
	limit = clampPageSize(limit)
	txs, err := s.transactions.ListByAccount(ctx, s.pool, accountID, cursor, limit)
	if err != nil {
		return nil, domain.ErrInternal("list transactions", err)
	}
	return txs, nil
}

// refreshProjection rebuilds the cached wallet view after a mutation. Failures
// only degrade read freshness, so they are logged and swallowed.
func (s *WalletService) refreshProjection(ctx context.Context, account *domain.AccountSnapshot) {
	if account == nil {
		return
	}
	view := projection.ProjectWallet(*account, time.Now().UTC())
	if err := projection.UpdateWallet(ctx, s.store, view); err != nil {
		s.logger.Warn("refresh wallet projection", "error", err, "account_id", account.ID)
	}
}
