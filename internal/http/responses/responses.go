package responses

import (
	"encoding/json"
	"net/http"

	"wastetrack/internal/app/common"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, ErrorResponse{Error: msg})
}

func WriteNotFound(w http.ResponseWriter, r *http.Request) {
	WriteError(w, http.StatusNotFound, "resource not found")
}

func WriteBadRequest(w http.ResponseWriter, msg string) {
	WriteError(w, http.StatusBadRequest, msg)
}

// WriteAppError maps the typed application errors onto the HTTP taxonomy.
// Conflicts surface as 400, matching the API contract. Anything untyped is an
// internal failure reported with internalMsg.
func WriteAppError(w http.ResponseWriter, err error, internalMsg string) {
	switch {
	case common.IsValidation(err), common.IsConflict(err):
		WriteError(w, http.StatusBadRequest, err.Error())
	case common.IsUnauthorized(err):
		WriteError(w, http.StatusUnauthorized, err.Error())
	case common.IsForbidden(err):
		WriteError(w, http.StatusForbidden, err.Error())
	case common.IsNotFound(err):
		WriteError(w, http.StatusNotFound, err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, internalMsg)
	}
}
