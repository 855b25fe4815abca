package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/service"
)

// AdminHandler handles admin-only account management endpoints.
type AdminHandler struct {
	accountSvc *service.AccountService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(accountSvc *service.AccountService) *AdminHandler {
	return &AdminHandler{accountSvc: accountSvc}
}

// VerifyDocuments handles POST /admin/accounts/{accountID}/verify-documents.
// Flips the verification flag after manual document review.
func (h *AdminHandler) VerifyDocuments(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid account id"))
		return
	}

	if err := h.accountSvc.VerifyDocuments(r.Context(), accountID); err != nil {
		RespondError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"account_id":         accountID,
		"documents_verified": true,
	})
}
