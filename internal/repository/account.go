package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/infra"
)

const accountColumns = `id, plan, plan_started_at, plan_tokens, earned_tokens,
	purchased_tokens, spent_tokens, accrued_credits, withdrawn_credits,
	created_at, updated_at`

type accountRepo struct{}

// NewAccountRepository returns a pgx-backed AccountRepository.
func NewAccountRepository() AccountRepository {
	return &accountRepo{}
}

func (r *accountRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.AccountSnapshot, error) {
	row := db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func (r *accountRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.AccountSnapshot, error) {
	row := tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id)
	return scanAccount(row)
}

func (r *accountRepo) Create(ctx context.Context, db DBTX, account *domain.AccountSnapshot) error {
	_, err := db.Exec(ctx, `
		INSERT INTO accounts
		  (id, plan, plan_started_at, plan_tokens, earned_tokens, purchased_tokens,
		   spent_tokens, accrued_credits, withdrawn_credits, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		account.ID,
		string(account.Plan),
		account.PlanStartedAt,
		infra.Int64ToNumeric(account.PlanTokens),
		infra.Int64ToNumeric(account.EarnedTokens),
		infra.Int64ToNumeric(account.PurchasedTokens),
		infra.Int64ToNumeric(account.SpentTokens),
		infra.Int64ToNumeric(account.AccruedCredits),
		infra.Int64ToNumeric(account.WithdrawnCredits),
		account.CreatedAt,
		account.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// UpdateCounters uses server-side arithmetic with dynamic SET clauses so
// concurrent plan/tier changes never clobber counters they did not touch.
func (r *accountRepo) UpdateCounters(ctx context.Context, tx pgx.Tx, accountID uuid.UUID, delta domain.CounterUpdate, tier *domain.PlanTier) (*domain.AccountSnapshot, error) {
	setClauses := []string{"updated_at = now()"}
	args := []interface{}{}
	argIdx := 1

	addDelta := func(column string, v int64) {
		if v == 0 {
			return
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = %s + $%d", column, column, argIdx))
		args = append(args, infra.Int64ToNumeric(v))
		argIdx++
	}

	addDelta("plan_tokens", delta.PlanTokens)
	addDelta("earned_tokens", delta.EarnedTokens)
	addDelta("purchased_tokens", delta.PurchasedTokens)
	addDelta("spent_tokens", delta.SpentTokens)
	addDelta("accrued_credits", delta.AccruedCredits)
	addDelta("withdrawn_credits", delta.WithdrawnCredits)

	if tier != nil {
		setClauses = append(setClauses, fmt.Sprintf("plan = $%d", argIdx))
		args = append(args, string(*tier))
		argIdx++
		setClauses = append(setClauses, "plan_started_at = now()")
	}

	args = append(args, accountID)
	query := fmt.Sprintf(`
		UPDATE accounts SET %s
		WHERE id = $%d
		RETURNING `+accountColumns,
		strings.Join(setClauses, ", "), argIdx)

	row := tx.QueryRow(ctx, query, args...)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (*domain.AccountSnapshot, error) {
	var a domain.AccountSnapshot
	var plan string
	var planNum, earnedNum, purchasedNum, spentNum, accruedNum, withdrawnNum pgtype.Numeric
	err := row.Scan(&a.ID, &plan, &a.PlanStartedAt, &planNum, &earnedNum,
		&purchasedNum, &spentNum, &accruedNum, &withdrawnNum,
		&a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan account: %w", err)
	}

	a.Plan = domain.PlanTier(plan)
	for _, c := range []struct {
		dst *int64
		src pgtype.Numeric
	}{
		{&a.PlanTokens, planNum},
		{&a.EarnedTokens, earnedNum},
		{&a.PurchasedTokens, purchasedNum},
		{&a.SpentTokens, spentNum},
		{&a.AccruedCredits, accruedNum},
		{&a.WithdrawnCredits, withdrawnNum},
	} {
		v, err := infra.NumericToInt64(c.src)
		if err != nil {
			return nil, fmt.Errorf("convert counter: %w", err)
		}
		*c.dst = v
	}
	return &a, nil
}
