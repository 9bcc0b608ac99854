package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the default lifetime for identity tokens when the
// service is not configured with one. Typical range is 15m to 24h.
const DefaultTokenTTL = 1 * time.Hour

// Claims are the identity-token claims. Subject carries the account id as a
// decimal string; nothing custom is added beyond the registered set so any
// sibling service can verify with an off-the-shelf JWT library and the
// shared secret.
type Claims struct {
	jwt.RegisteredClaims
}

// NewClaims builds minimally-correct claims for a subject.
func NewClaims(subject string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
