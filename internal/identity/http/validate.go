package http

import (
	"net/http"

	"github.com/opensalary/identity/internal/identity/service"
	"github.com/opensalary/identity/pkg/httpx"
)

type ValidateHandler struct {
	AuthService *service.AuthService
}

type ValidateResponse struct {
	UserID int64 `json:"userId"`
}

// ServeHTTP handles GET /auth/validate. A missing or non-Bearer
// Authorization header gets the same 401 as a bad token.
func (h *ValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, ok := httpx.BearerToken(r)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Invalid or expired token"})
		return
	}

	userID, err := h.AuthService.ValidateToken(r.Context(), token)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, ValidateResponse{UserID: userID})
}
