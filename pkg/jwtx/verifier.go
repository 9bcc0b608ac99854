package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and gives you back the claims if it's legit.
// Verification is a pure function of (token, secret, now) - no state is
// retained between calls.
type Verifier interface {
	Verify(token string, now time.Time) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
)

// HS256Verifier verifies HMAC-SHA256 tokens against a shared secret.
type HS256Verifier struct {
	secret []byte
}

// NewVerifierHS256 creates an HS256 verifier from the shared secret bytes.
func NewVerifierHS256(secret []byte) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &HS256Verifier{secret: secret}, nil
}

// Verify parses the compact token, checks the signature and expiry against
// the provided time, and returns the claims. Failures map onto the narrow
// sentinel errors above so callers can distinguish causes internally.
func (v *HS256Verifier) Verify(token string, now time.Time) (Claims, error) {
	var claims Claims

	parsed, err := jwt.ParseWithClaims(
		token,
		&claims,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if !parsed.Valid {
		return Claims{}, ErrMalformed
	}

	return claims, nil
}

// mapParseError collapses golang-jwt's error tree into our sentinels.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		// Unexpected validation failures (bad iat, wrong typ, ...) are
		// structural as far as callers are concerned.
		return ErrMalformed
	}
}
