package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prohub/platform/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// AccountRepository provides access to accounts.
type AccountRepository interface {
	// FindByID returns an account snapshot by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.AccountSnapshot, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) and returns
	// the snapshot. This is the per-account serialization the engine's pure
	// authorizers rely on: at most one in-flight mutating call per account.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.AccountSnapshot, error)

	// Create inserts a new account.
	Create(ctx context.Context, db DBTX, account *domain.AccountSnapshot) error

	// UpdateCounters atomically updates counter columns using server-side
	// arithmetic with dynamic SET clauses; may also set the plan columns
	// when tier is non-nil.
	UpdateCounters(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, delta domain.CounterUpdate, tier *domain.PlanTier) (*domain.AccountSnapshot, error)
}

// TransactionRepository provides access to token_transactions.
type TransactionRepository interface {
	// FindExisting checks the idempotency index for a duplicate transaction.
	FindExisting(ctx context.Context, db DBTX, key domain.IdempotencyKey) (*domain.Transaction, error)

	// Insert creates a new ledger entry with a post-update counter snapshot.
	Insert(ctx context.Context, db DBTX, params domain.PostLedgerEntryParams, snap domain.AccountSnapshot) (*domain.Transaction, error)

	// FindByID returns a transaction by ID.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Transaction, error)

	// ListByAccount returns transactions for an account, newest first, with
	// cursor-based pagination.
	ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, cursor *string, limit int) ([]domain.Transaction, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the ledger entry).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns unpublished events for the outbox poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]domain.OutboxDraft, error)
}

// ProfileRepository provides access to account_profiles.
type ProfileRepository interface {
	// FindByAccountID returns a profile by account ID.
	FindByAccountID(ctx context.Context, db DBTX, accountID uuid.UUID) (*domain.AccountProfile, error)

	// FindByEmail returns a profile by email.
	FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AccountProfile, error)

	// Create inserts a new profile.
	Create(ctx context.Context, db DBTX, profile *domain.AccountProfile) error

	// SetDocumentsVerified flips the document-verification flag.
	SetDocumentsVerified(ctx context.Context, db DBTX, accountID uuid.UUID, verified bool) error
}
