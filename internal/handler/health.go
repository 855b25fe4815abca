package handler

import (
	"encoding/json"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prohub/platform/internal/infra"
)

// HealthHandler reports API liveness and database reachability.
func HealthHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := infra.HealthCheck(r.Context(), pool); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{
				"service":  "prohub-api",
				"status":   "unhealthy",
				"database": err.Error(),
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"service": "prohub-api",
			"status":  "healthy",
		})
	}
}
