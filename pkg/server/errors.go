package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"pressdesk/internal/domain"
	"pressdesk/pkg/wordpress"
)

// errorBody is the stable error envelope. Message is always a generic,
// human-readable text; transport internals and credentials never appear
// in a response body.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError maps the error taxonomy onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{
			Error:   "validation_failed",
			Message: err.Error(),
		})
	case errors.Is(err, domain.ErrAuthRequired):
		writeJSON(w, http.StatusUnauthorized, errorBody{
			Error:   "authentication_required",
			Message: "WordPress authentication required",
		})
	case errors.Is(err, wordpress.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{
			Error:   "not_found",
			Message: "Post not found",
		})
	case errors.Is(err, wordpress.ErrUnavailable):
		s.logger.Error("remote unavailable", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "remote_unavailable",
			Message: "WordPress service unavailable",
		})
	case errors.Is(err, wordpress.ErrRejected):
		s.logger.Error("remote rejected request", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "remote_rejected",
			Message: "WordPress rejected the request",
		})
	default:
		s.logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{
			Error:   "internal",
			Message: "Internal server error",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
