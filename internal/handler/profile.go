package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohub/platform/internal/domain"
	"github.com/prohub/platform/internal/policy"
	"github.com/prohub/platform/internal/repository"
)

// ProfileHandler handles account profile endpoints.
type ProfileHandler struct {
	profiles repository.ProfileRepository
	pool     *pgxpool.Pool
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profiles repository.ProfileRepository, pool *pgxpool.Pool) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, pool: pool}
}

// GetMe handles GET /accounts/me.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	profile, err := h.profiles.FindByAccountID(r.Context(), h.pool, accountID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find profile", err))
		return
	}
	if profile == nil {
		RespondError(w, domain.ErrNotFound("account", accountID.String()))
		return
	}

	RespondJSON(w, http.StatusOK, profile)
}

// CheckAction handles GET /accounts/me/actions/{action}. It previews the
// eligibility decision for an action without attempting it, so clients can
// grey out buttons and surface the document-verification requirement early.
func (h *ProfileHandler) CheckAction(w http.ResponseWriter, r *http.Request) {
	accountID, err := accountIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	profile, err := h.profiles.FindByAccountID(r.Context(), h.pool, accountID)
	if err != nil {
		RespondError(w, domain.ErrInternal("find profile", err))
		return
	}
	if profile == nil {
		RespondError(w, domain.ErrNotFound("account", accountID.String()))
		return
	}

	action := policy.Action(chi.URLParam(r, "action"))
	decision := policy.Authorize(policy.Role(profile.Role), action, profile.DocumentsVerified)
	RespondJSON(w, http.StatusOK, decision)
}
