package http

import (
	"encoding/json"
	"net/http"

	"github.com/opensalary/identity/internal/identity/service"
	"github.com/opensalary/identity/pkg/httpx"
)

type LoginHandler struct {
	AuthService *service.AuthService
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type LoginResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// ServeHTTP handles POST /auth/login. The issued token travels in the
// Authorization response header, not the body; wrong credentials and
// deactivated accounts are both 401.
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.AuthService.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Authorization", "Bearer "+result.Token)
	httpx.WriteJSON(w, http.StatusOK, LoginResponse{
		UserID:   result.UserID,
		Username: result.Username,
	})
}
