package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prohub/platform/internal/domain"
)

const profileColumns = `account_id, email, password_hash, name, role, documents_verified, created_at`

type profileRepo struct{}

// NewProfileRepository returns a pgx-backed ProfileRepository.
func NewProfileRepository() ProfileRepository {
	return &profileRepo{}
}

func (r *profileRepo) FindByAccountID(ctx context.Context, db DBTX, accountID uuid.UUID) (*domain.AccountProfile, error) {
	row := db.QueryRow(ctx, `SELECT `+profileColumns+` FROM account_profiles WHERE account_id = $1`, accountID)
	return scanProfile(row)
}

func (r *profileRepo) FindByEmail(ctx context.Context, db DBTX, email string) (*domain.AccountProfile, error) {
	row := db.QueryRow(ctx, `SELECT `+profileColumns+` FROM account_profiles WHERE email = $1`, email)
	return scanProfile(row)
}

func (r *profileRepo) Create(ctx context.Context, db DBTX, profile *domain.AccountProfile) error {
	_, err := db.Exec(ctx, `
		INSERT INTO account_profiles
		  (account_id, email, password_hash, name, role, documents_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		profile.AccountID,
		profile.Email,
		profile.PasswordHash,
		profile.Name,
		profile.Role,
		profile.DocumentsVerified,
		profile.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *profileRepo) SetDocumentsVerified(ctx context.Context, db DBTX, accountID uuid.UUID, verified bool) error {
	tag, err := db.Exec(ctx, `
		UPDATE account_profiles SET documents_verified = $1 WHERE account_id = $2`,
		verified, accountID)
	if err != nil {
		return fmt.Errorf("update documents_verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", accountID)
	}
	return nil
}

func scanProfile(row pgx.Row) (*domain.AccountProfile, error) {
	var p domain.AccountProfile
	err := row.Scan(&p.AccountID, &p.Email, &p.PasswordHash, &p.Name, &p.Role,
		&p.DocumentsVerified, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	return &p, nil
}
