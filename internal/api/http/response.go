package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/service"
)

// errorResponse is the failure envelope. Stock and return conflicts carry the
// numbers the client needs to correct the request.
type errorResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Available   *int64 `json:"available,omitempty"`
	Requested   *int64 `json:"requested,omitempty"`
	Outstanding *int64 `json:"outstanding,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("encode response", "error", err)
		}
	}
}

// respondError maps domain errors onto status codes and the failure envelope.
func respondError(w http.ResponseWriter, err error) {
	resp := errorResponse{Success: false, Message: err.Error()}

	var validationErr *domain.ValidationError
	var stockErr *domain.InsufficientStockError
	var overErr *domain.OverReturnError

	switch {
	case errors.As(err, &stockErr):
		resp.Available = &stockErr.Available
		resp.Requested = &stockErr.Requested
		respondJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &overErr):
		resp.Outstanding = &overErr.Outstanding
		resp.Requested = &overErr.Requested
		respondJSON(w, http.StatusBadRequest, resp)
	case errors.As(err, &validationErr):
		respondJSON(w, http.StatusBadRequest, resp)
	case errors.Is(err, domain.ErrNotFound):
		respondJSON(w, http.StatusNotFound, resp)
	case errors.Is(err, service.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, resp)
	default:
		logger.Error("request failed", "error", err)
		resp.Message = "internal server error"
		respondJSON(w, http.StatusInternalServerError, resp)
	}
}

func badRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Success: false, Message: message})
}
