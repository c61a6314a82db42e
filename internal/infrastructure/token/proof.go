package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformedToken  = errors.New("malformed proof token")
	ErrSubjectMismatch = errors.New("proof token subject does not match identity")
)

// ProofClaims are the claims of a tokenized Kratos session.
type ProofClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Inspect decodes the claims of a proof token without checking its signature.
// The backend verifies the signature against the provider's JWKS.
func Inspect(raw string) (*ProofClaims, error) {
	claims := &ProofClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}
	return claims, nil
}

// VerifySubject checks that the proof token was minted for the given identity ID.
func VerifySubject(raw, identityID string) (*ProofClaims, error) {
	claims, err := Inspect(raw)
	if err != nil {
		return nil, err
	}
	if claims.Subject != identityID {
		return nil, fmt.Errorf("%w: got %q", ErrSubjectMismatch, claims.Subject)
	}
	return claims, nil
}

// ExpiresIn returns the remaining lifetime of the token, or zero when it has no expiry.
func (c *ProofClaims) ExpiresIn(now time.Time) time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	if remaining := c.ExpiresAt.Sub(now); remaining > 0 {
		return remaining
	}
	return 0
}
