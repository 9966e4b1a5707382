package health

import (
	"net/http"

	"wastetrack/internal/db"
	"wastetrack/internal/http/responses"
)

type Handler struct {
	db *db.Client
}

func NewHandler(dbClient *db.Client) *Handler {
	return &Handler{db: dbClient}
}

// Check reports liveness plus a database ping.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		responses.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"db":     err.Error(),
		})
		return
	}
	responses.WriteJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
