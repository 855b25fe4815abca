package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/infra"
)

const transactionColumns = `id, account_id, type, amount, plan_tokens_after,
	earned_tokens_after, purchased_tokens_after, spent_tokens_after,
	accrued_credits_after, withdrawn_credits_after,
	external_transaction_id, metadata, created_at`

type transactionRepo struct{}

// NewTransactionRepository returns a pgx-backed TransactionRepository.
func NewTransactionRepository() TransactionRepository {
	return &transactionRepo{}
}

func (r *transactionRepo) FindExisting(ctx context.Context, db DBTX, key domain.IdempotencyKey) (*domain.Transaction, error) {
	row := db.QueryRow(ctx, `
		SELECT `+transactionColumns+`
		FROM token_transactions
		WHERE account_id = $1 AND external_transaction_id = $2`,
		key.AccountID, key.ExternalTransactionID)
	return scanTransaction(row)
}

func (r *transactionRepo) Insert(ctx context.Context, db DBTX, params domain.PostLedgerEntryParams, snap domain.AccountSnapshot) (*domain.Transaction, error) {
	meta := params.Metadata
	if meta == nil {
		meta = json.RawMessage(`{}`)
	}

	row := db.QueryRow(ctx, `
		INSERT INTO token_transactions
		  (account_id, type, amount, plan_tokens_after, earned_tokens_after,
		   purchased_tokens_after, spent_tokens_after, accrued_credits_after,
		   withdrawn_credits_after, external_transaction_id, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+transactionColumns,
		params.AccountID,
		string(params.Type),
		infra.Int64ToNumeric(params.Amount),
		infra.Int64ToNumeric(snap.PlanTokens),
		infra.Int64ToNumeric(snap.EarnedTokens),
		infra.Int64ToNumeric(snap.PurchasedTokens),
		infra.Int64ToNumeric(snap.SpentTokens),
		infra.Int64ToNumeric(snap.AccruedCredits),
		infra.Int64ToNumeric(snap.WithdrawnCredits),
		params.ExternalTransactionID,
		meta,
	)
	return scanTransaction(row)
}

func (r *transactionRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Transaction, error) {
	row := db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM token_transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

func (r *transactionRepo) ListByAccount(ctx context.Context, db DBTX, accountID uuid.UUID, cursor *string, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error
	if cursor != nil {
		rows, err = db.Query(ctx, `
			SELECT `+transactionColumns+`
			FROM token_transactions
			WHERE account_id = $1
			  AND (created_at, id) <= ((SELECT created_at, id FROM token_transactions WHERE id = $2))
			ORDER BY created_at DESC, id DESC
			LIMIT $3`, accountID, *cursor, limit)
	} else {
		rows, err = db.Query(ctx, `
			SELECT `+transactionColumns+`
			FROM token_transactions
			WHERE account_id = $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2`, accountID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}
	return txs, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	var txType string
	var amountNum, planNum, earnedNum, purchasedNum, spentNum, accruedNum, withdrawnNum pgtype.Numeric
	err := row.Scan(&t.ID, &t.AccountID, &txType, &amountNum, &planNum,
		&earnedNum, &purchasedNum, &spentNum, &accruedNum, &withdrawnNum,
		&t.ExternalTransactionID, &t.Metadata, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	t.Type = domain.TransactionType(txType)
	for _, c := range []struct {
		dst *int64
		src pgtype.Numeric
	}{
		{&t.Amount, amountNum},
		{&t.PlanTokensAfter, planNum},
		{&t.EarnedTokensAfter, earnedNum},
		{&t.PurchasedTokensAfter, purchasedNum},
		{&t.SpentTokensAfter, spentNum},
		{&t.AccruedCreditsAfter, accruedNum},
		{&t.WithdrawnCreditsAfter, withdrawnNum},
	} {
		v, err := infra.NumericToInt64(c.src)
		if err != nil {
			return nil, fmt.Errorf("convert amount: %w", err)
		}
		*c.dst = v
	}
	return &t, nil
}
