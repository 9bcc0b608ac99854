package http

import (
	"encoding/json"
	"net/http"

	"github.com/opensalary/identity/internal/identity/service"
	"github.com/opensalary/identity/pkg/httpx"
)

type SignupHandler struct {
	AuthService *service.AuthService
}

type SignupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

type SignupResponse struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ServeHTTP handles POST /auth/signup. Success is 201 with the new account's
// id; duplicate email or username is 409; field problems are 400 with a
// per-field message map.
func (h *SignupHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	result, err := h.AuthService.Signup(r.Context(), service.SignupParams{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, SignupResponse{
		UserID:   result.UserID,
		Username: result.Username,
		Message:  result.Message,
	})
}
