package service

import (
	"strconv"
	"time"

	"github.com/opensalary/identity/pkg/jwtx"
)

// TokenService issues and verifies the bearer tokens other services trust to
// identify a caller. Tokens are self-contained: validity is a pure function
// of the token bytes, the shared signing secret, and the clock. Nothing is
// stored per token and nothing can be revoked before expiry.
type TokenService struct {
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	TTL      time.Duration
}

// Issue signs a token asserting the given account id, valid from now until
// now + TTL.
func (s *TokenService) Issue(subjectID int64, now time.Time) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewClaims(strconv.FormatInt(subjectID, 10), ttl, now)
	return s.Signer.Sign(claims)
}

// Verify checks the token's signature and expiry against now and returns the
// account id it asserts. Failures surface as the jwtx sentinels
// (ErrMalformed, ErrInvalidSig, ErrExpired); a non-numeric or non-positive
// subject counts as malformed.
func (s *TokenService) Verify(token string, now time.Time) (int64, error) {
	claims, err := s.Verifier.Verify(token, now)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return 0, jwtx.ErrMalformed
	}
	return id, nil
}
