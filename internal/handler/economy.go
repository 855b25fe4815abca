package handler

import (
	"encoding/json"
	"net/http"

	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/service"
)

// EconomyHandler handles the wallet mutation endpoints: token purchases,
// spends, earnings credits, plan activation and cashback operations.
type EconomyHandler struct {
	wallets *service.WalletService
}

// NewEconomyHandler creates a new EconomyHandler.
func NewEconomyHandler(wallets *service.WalletService) *EconomyHandler {
	return &EconomyHandler{wallets: wallets}
}

type amountRequest struct {
	Amount                int64           `json:"amount"`
	ExternalTransactionID string          `json:"external_transaction_id"`
	Metadata              json.RawMessage `json:"metadata,omitempty"`
}

// commandResponse is the common shape for mutation responses.
type commandResponse struct {
	Transaction *domain.Transaction `json:"transaction"`
	Balances    balances            `json:"balances"`
	Idempotent  bool                `json:"idempotent"`
}

type balances struct {
	AvailableTokens  int64 `json:"available_tokens"`
	AvailableCredits int64 `json:"available_credits"`
}

func newCommandResponse(result *domain.CommandResult) commandResponse {
	return commandResponse{
		Transaction: result.Transaction,
		Balances: balances{
			AvailableTokens:  result.Account.AvailableTokens(),
			AvailableCredits: result.Account.AvailableCredits(),
		},
		Idempotent: result.Idempotent,
	}
}

// respondCommand writes a mutation result. A replayed external transaction ID
// returns the original entry with 200 instead of 201.
func respondCommand(w http.ResponseWriter, result *domain.CommandResult) {
	status := http.StatusCreated
	if result.Idempotent {
		status = http.StatusOK
	}
	RespondJSON(w, status, newCommandResponse(result))
}

// PurchaseTokens handles POST /wallet/purchase.
func (h *EconomyHandler) PurchaseTokens(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req amountRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.wallets.PurchaseTokens(r.Context(), accountID, req.Amount, req.ExternalTransactionID)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondCommand(w, result)
}

// SpendTokens handles POST /wallet/spend.
func (h *EconomyHandler) SpendTokens(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req amountRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.wallets.SpendTokens(r.Context(), accountID, req.Amount, req.ExternalTransactionID, req.Metadata)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondCommand(w, result)
}

// CreditEarnings handles POST /wallet/earnings.
func (h *EconomyHandler) CreditEarnings(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req amountRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.wallets.CreditEarnings(r.Context(), accountID, req.Amount, req.ExternalTransactionID, req.Metadata)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondCommand(w, result)
}

type activatePlanRequest struct {
	Plan                  string `json:"plan"`
	ExternalTransactionID string `json:"external_transaction_id"`
}

// ActivatePlan handles POST /plans/activate.
func (h *EconomyHandler) ActivatePlan(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req activatePlanRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.wallets.ActivatePlan(r.Context(), accountID, domain.PlanTier(req.Plan), req.ExternalTransactionID)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondCommand(w, result)
}

// SyncCashback handles POST /cashback/sync.
func (h *EconomyHandler) SyncCashback(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	result, err := h.wallets.SyncCashback(r.Context(), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, newCommandResponse(result))
}

// WithdrawCashback handles POST /cashback/withdraw.
func (h *EconomyHandler) WithdrawCashback(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req amountRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	result, err := h.wallets.WithdrawCashback(r.Context(), accountID, req.Amount, req.ExternalTransactionID)
	if err != nil {
		RespondError(w, err)
		return
	}

	respondCommand(w, result)
}
