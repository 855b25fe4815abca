package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/prohub/platform/internal/auth"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/service"
)

// WalletHandler handles wallet view and transaction history endpoints.
type WalletHandler struct {
	wallets *service.WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(wallets *service.WalletService) *WalletHandler {
	return &WalletHandler{wallets: wallets}
}

// GetWallet handles GET /wallet.
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	view, err := h.wallets.GetWallet(r.Context(), accountID)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, view)
}

// txListResponse wraps a list of transactions with cursor.
type txListResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	NextCursor   *string              `json:"next_cursor,omitempty"`
}

// GetTransactions handles GET /wallet/transactions with cursor-based pagination.
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	// Parse pagination params
	limitStr := r.URL.Query().Get("limit")
	limit := 20
	if limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var cursor *string
	if c := r.URL.Query().Get("cursor"); c != "" {
		cursor = &c
	}

	txs, err := h.wallets.ListTransactions(r.Context(), accountID, cursor, limit+1)
	if err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, paginate(txs, limit))
}

// paginate trims a look-ahead result set down to one page. The caller fetches
// limit+1 rows; a full overflow row means another page exists and its ID
// becomes the next cursor.
func paginate(txs []domain.Transaction, limit int) txListResponse {
	resp := txListResponse{Transactions: txs}
	if len(txs) > limit {
		resp.Transactions = txs[:limit]
		nextID := txs[limit].ID.String()
		resp.NextCursor = &nextID
	}
	return resp
}

// accountIDFromContext extracts and validates the account UUID from auth context.
func accountIDFromContext(r *http.Request) (uuid.UUID, error) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == "" {
		return uuid.Nil, domain.ErrUnauthorized("no subject in context")
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, domain.ErrUnauthorized("invalid subject")
	}
	return id, nil
}
