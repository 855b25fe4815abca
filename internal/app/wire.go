package app

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohub/platform/internal/auth"
	"github.com/prohub/platform/internal/guard"
	"github.com/prohub/platform/internal/handler"
	"github.com/prohub/platform/internal/ledger"
	"github.com/prohub/platform/internal/projection"
	"github.com/prohub/platform/internal/repository"
	"github.com/prohub/platform/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	Logger *slog.Logger
	// Comma-separated origins, "*" allows all
	CORSAllowedOrigins string
	// Withdrawal request guard
	WithdrawalRateLimit  int
	WithdrawalRateWindow time.Duration
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	accountRepo := repository.NewAccountRepository()
	txRepo := repository.NewTransactionRepository()
	outboxRepo := repository.NewOutboxRepository()
	profileRepo := repository.NewProfileRepository()

	// Ledger engine
	ledgerEngine := ledger.NewEngine(accountRepo, txRepo, outboxRepo)

	// Projection store and guards
	store := projection.NewInMemoryStore()
	withdrawals := guard.NewRateLimiter(deps.WithdrawalRateLimit, deps.WithdrawalRateWindow)
	inflight := guard.NewIdempotencyGuard()

	// Services
	accountSvc := service.NewAccountService(pool, accountRepo, profileRepo, outboxRepo, jwtMgr)
	walletSvc := service.NewWalletService(pool, accountRepo, profileRepo, txRepo, ledgerEngine, store, withdrawals, inflight, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(accountSvc)
	profileHandler := handler.NewProfileHandler(profileRepo, pool)
	walletHandler := handler.NewWalletHandler(walletSvc)
	economyHandler := handler.NewEconomyHandler(walletSvc)
	adminHandler := handler.NewAdminHandler(accountSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// Auth routes (no auth)
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))

		r.Get("/accounts/me", profileHandler.GetMe)
		r.Get("/accounts/me/actions/{action}", profileHandler.CheckAction)

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.GetWallet)
			r.Get("/transactions", walletHandler.GetTransactions)
			r.Post("/purchase", economyHandler.PurchaseTokens)
			r.Post("/spend", economyHandler.SpendTokens)
		})

		// Earnings are credited to professional accounts only; the eligibility
		// gate inside the service enforces the role, the middleware just keeps
		// clients from probing the route.
		r.With(auth.RequireRole(auth.RoleProfessional)).
			Post("/wallet/earnings", economyHandler.CreditEarnings)

		r.Post("/plans/activate", economyHandler.ActivatePlan)

		r.Route("/cashback", func(r chi.Router) {
			r.Post("/sync", economyHandler.SyncCashback)
			r.Post("/withdraw", economyHandler.WithdrawCashback)
		})
	})

	// Admin-authenticated routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.Authenticate(jwtMgr))
		r.Use(auth.RequireRole(auth.RoleAdmin))

		r.Post("/accounts/{accountID}/verify-documents", adminHandler.VerifyDocuments)
	})

	return r
}
