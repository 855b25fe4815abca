package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohub/platform/internal/auth"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// AccountService handles account registration, login and document verification.
type AccountService struct {
	pool     *pgxpool.Pool
	accounts repository.AccountRepository
	profiles repository.ProfileRepository
	outbox   repository.OutboxRepository
	jwtMgr   *auth.JWTManager
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	pool *pgxpool.Pool,
	accounts repository.AccountRepository,
	profiles repository.ProfileRepository,
	outbox repository.OutboxRepository,
	jwtMgr *auth.JWTManager,
) *AccountService {
	return &AccountService{
		pool:     pool,
		accounts: accounts,
		profiles: profiles,
		outbox:   outbox,
		jwtMgr:   jwtMgr,
	}
}

// RegisterInput holds the registration request fields.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// AuthResult is returned on successful registration or login.
type AuthResult struct {
	Token     string    `json:"token"`
	AccountID uuid.UUID `json:"account_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
}

// Register creates a new account within a single transaction.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	if len(input.Password) < 8 {
		return nil, domain.ErrValidation("password must be at least 8 characters")
	}
	if input.Role == "" {
		input.Role = auth.RoleClient
	}
	if input.Role == auth.RoleAdmin {
		return nil, domain.ErrForbidden("admin accounts cannot self-register")
	}
	if !auth.ValidRole(input.Role) {
		return nil, domain.ErrValidation("unknown role " + input.Role + ", want one of: " + strings.Join(auth.AllRoles(), ", "))
	}

	existing, err := s.profiles.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find profile", err)
	}
	if existing != nil {
		return nil, domain.ErrConflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrInternal("hash password", err)
	}

	// Run in transaction: create account + profile + outbox event
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	accountID := uuid.New()
	now := time.Now().UTC()

	account := &domain.AccountSnapshot{
		ID:        accountID,
		Plan:      domain.PlanNone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.accounts.Create(ctx, tx, account); err != nil {
		return nil, domain.ErrInternal("create account", err)
	}

	profile := &domain.AccountProfile{
		AccountID:    accountID,
		Email:        input.Email,
		PasswordHash: string(hash),
		Name:         input.Name,
		Role:         input.Role,
		CreatedAt:    now,
	}
	if err := s.profiles.Create(ctx, tx, profile); err != nil {
		return nil, domain.ErrInternal("create profile", err)
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewAccountCreatedEvent(accountID, input.Email, input.Role)); err != nil {
		return nil, domain.ErrInternal("insert account event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.ErrInternal("commit tx", err)
	}

	token, err := s.jwtMgr.GenerateToken(input.Role, accountID, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{Token: token, AccountID: accountID, Email: input.Email, Role: input.Role}, nil
}

// LoginInput holds the login request fields.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an account by email and password.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	profile, err := s.profiles.FindByEmail(ctx, s.pool, input.Email)
	if err != nil {
		return nil, domain.ErrInternal("find profile", err)
	}
	if profile == nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrUnauthorized("invalid email or password")
	}

	token, err := s.jwtMgr.GenerateToken(profile.Role, profile.AccountID, profile.Email)
	if err != nil {
		return nil, domain.ErrInternal("generate token", err)
	}

	return &AuthResult{Token: token, AccountID: profile.AccountID, Email: profile.Email, Role: profile.Role}, nil
}

// VerifyDocuments marks an account's documents as verified and emits the
// corresponding event. Admin endpoints call this after manual review.
func (s *AccountService) VerifyDocuments(ctx context.Context, accountID uuid.UUID) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return domain.ErrInternal("begin tx", err)
	}
	defer tx.Rollback(ctx)

	if err := s.profiles.SetDocumentsVerified(ctx, tx, accountID, true); err != nil {
		return domain.ErrInternal("set documents verified", err)
	}

	payload, _ := json.Marshal(map[string]string{"account_id": accountID.String()})
	draft := domain.OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: domain.AggregateAccount,
		AggregateID:   accountID.String(),
		EventType:     domain.EventDocumentsVerified,
		PartitionKey:  accountID.String(),
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
	if err := s.outbox.Insert(ctx, tx, draft); err != nil {
		return domain.ErrInternal("insert verification event", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.ErrInternal("commit tx", err)
	}
	return nil
}
