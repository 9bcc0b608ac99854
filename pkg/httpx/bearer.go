package httpx

import (
	"net/http"
	"strings"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. The second return is false when the header is missing or not a
// bearer credential.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	if token == "" {
		return "", false
	}
	return token, true
}
