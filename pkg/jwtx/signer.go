package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign identity tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// ErrEmptySecret reports a signer or verifier constructed without key material.
var ErrEmptySecret = errors.New("jwtx: empty signing secret")

// HS256Signer signs tokens with HMAC-SHA256 over a shared secret. The secret
// is set once at construction and never mutated; concurrent Sign calls are
// safe without synchronization.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 creates an HS256 signer from the shared secret bytes.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	return &HS256Signer{secret: secret}, nil
}

func (s *HS256Signer) Alg() string { return "HS256" }

// Sign serializes the claims and signs them, returning the compact JWT.
func (s *HS256Signer) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}
