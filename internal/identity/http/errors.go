package http

import (
	"errors"
	"net/http"

	"github.com/opensalary/identity/internal/identity/service"
	"github.com/opensalary/identity/pkg/httpx"
	"github.com/opensalary/identity/pkg/slogx"
)

// ErrorResponse is the generic error body: {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps a service-layer error onto an HTTP response.
// Validation failures render the per-field message map; sentinel business
// errors get their status and public message; everything else is an
// internal failure whose details are logged, never returned.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := service.AsValidation(err); ok {
		httpx.WriteJSON(w, http.StatusBadRequest, ve.Fields)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{Error: "Email is already registered"})
	case errors.Is(err, service.ErrUsernameTaken):
		httpx.WriteJSON(w, http.StatusConflict, ErrorResponse{Error: "Username is already taken"})
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid username, email, or password"})
	case errors.Is(err, service.ErrAccountDeactivated):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Account is deactivated"})
	case errors.Is(err, service.ErrInvalidToken):
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired token"})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "An unexpected error occurred"})
	}
}
