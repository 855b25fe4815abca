package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/repository"
)

// Engine provides the 3 foundational ledger operations:
//  1. LockAccountForUpdate — row-level pessimistic lock
//  2. FindExistingTransaction — idempotency check
//  3. PostLedgerEntry — atomic counter update + append-only insert + outbox event
//
// The economy package decides whether a mutation is permitted; the engine
// applies permitted mutations under a per-account row lock so two concurrent
// requests can never both validate against the same pre-mutation balance.
type Engine struct {
	accounts     repository.AccountRepository
	transactions repository.TransactionRepository
	outbox       repository.OutboxRepository
}

// NewEngine creates a ledger engine with the given repositories.
func NewEngine(
	accounts repository.AccountRepository,
	transactions repository.TransactionRepository,
	outbox repository.OutboxRepository,
) *Engine {
	return &Engine{
		accounts:     accounts,
		transactions: transactions,
		outbox:       outbox,
	}
}

// LockAccountForUpdate acquires a row-level lock and returns the snapshot.
// Must be called within a transaction.
func (e *Engine) LockAccountForUpdate(ctx context.Context, tx pgx.Tx, accountID uuid.UUID) (*domain.AccountSnapshot, error) {
	account, err := e.accounts.LockForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("lock account: %w", err)
	}
	if account == nil {
		return nil, domain.ErrNotFound("account", accountID.String())
	}
	return account, nil
}

// FindExistingTransaction checks if a transaction with the same idempotency key exists.
// Returns nil if no duplicate found.
func (e *Engine) FindExistingTransaction(ctx context.Context, tx pgx.Tx, key domain.IdempotencyKey) (*domain.Transaction, error) {
	existing, err := e.transactions.FindExisting(ctx, tx, key)
	if err != nil {
		return nil, fmt.Errorf("find existing transaction: %w", err)
	}
	return existing, nil
}

// PostLedgerEntry atomically updates account counters and inserts a ledger
// entry. This is the core write primitive, all commands delegate to it.
//
// Steps:
//  1. Update account counters using server-side arithmetic (dynamic SET clauses)
//  2. Insert transaction with the post-update counter snapshot
//  3. Insert outbox event
//
// All 3 steps run within the caller's transaction.
func (e *Engine) PostLedgerEntry(ctx context.Context, tx pgx.Tx, params domain.PostLedgerEntryParams) (*domain.Transaction, *domain.AccountSnapshot, error) {
	if params.CounterUpdate.IsZero() && params.PlanTier == nil {
		return nil, nil, fmt.Errorf("ledger entry must change at least one counter")
	}

	updated, err := e.accounts.UpdateCounters(ctx, tx, params.AccountID, params.CounterUpdate, params.PlanTier)
	if err != nil {
		return nil, nil, fmt.Errorf("update counters: %w", err)
	}

	entry, err := e.transactions.Insert(ctx, tx, params, *updated)
	if err != nil {
		return nil, nil, fmt.Errorf("insert transaction: %w", err)
	}

	// Outbox insert shares the transaction for atomicity.
	event := domain.NewTransactionPostedEvent(entry)
	if err := e.outbox.Insert(ctx, tx, event); err != nil {
		return nil, nil, fmt.Errorf("insert outbox event: %w", err)
	}

	return entry, updated, nil
}

// checkIdempotency returns the existing command result when the external
// transaction ID was already posted for this account.
func (e *Engine) checkIdempotency(ctx context.Context, tx pgx.Tx, account *domain.AccountSnapshot, extID string) (*domain.CommandResult, error) {
	if extID == "" {
		return nil, nil
	}
	existing, err := e.FindExistingTransaction(ctx, tx, domain.IdempotencyKey{
		AccountID:             account.ID,
		ExternalTransactionID: extID,
	})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return &domain.CommandResult{Transaction: existing, Account: account, Idempotent: true}, nil
	}
	return nil, nil
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ensureJSON(data json.RawMessage) json.RawMessage {
	if data == nil {
		return json.RawMessage(`{}`)
	}
	return data
}

func mergeMeta(base json.RawMessage, extras map[string]interface{}) json.RawMessage {
	m := map[string]interface{}{}
	if base != nil {
		_ = json.Unmarshal(base, &m)
	}
	for k, v := range extras {
		m[k] = v
	}
	merged, _ := json.Marshal(m)
	return merged
}
