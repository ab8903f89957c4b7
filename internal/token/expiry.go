package token

// Package token evaluates bearer token expiry from unverified JWT claims.
// Signature verification is the server's job; the client only needs to know
// whether a token is worth sending.

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"

	domainauth "github.com/notesapp/noteskit/internal/domain/auth"
)

// DefaultExpiryBuffer is subtracted from the exp claim so tokens that are
// about to expire are treated as already expired.
const DefaultExpiryBuffer = 60 * time.Second

// Checker evaluates token expiry against an injectable clock.
type Checker struct {
	now func() time.Time
}

// NewChecker creates a Checker using the wall clock.
func NewChecker() *Checker {
	return &Checker{now: time.Now}
}

// NewCheckerWithClock creates a Checker with a custom clock for tests.
func NewCheckerWithClock(now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}
	return &Checker{now: now}
}

// Decode extracts claims from a raw token string without verifying the
// signature. The second return value is false when the token cannot be
// parsed or carries no claims.
func (c *Checker) Decode(raw string) (domainauth.Claims, bool) {
	if raw == "" {
		return domainauth.Claims{}, false
	}

	parsed, _, err := jwtlib.NewParser().ParseUnverified(raw, jwtlib.MapClaims{})
	if err != nil {
		return domainauth.Claims{}, false
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok {
		return domainauth.Claims{}, false
	}

	var claims domainauth.Claims
	if sub, subOK := mapClaims["sub"].(string); subOK {
		claims.Subject = sub
	}
	if email, emailOK := mapClaims["email"].(string); emailOK {
		claims.Email = email
	}
	if typ, typOK := mapClaims["type"].(string); typOK {
		claims.Type = typ
	}
	if exp, expErr := mapClaims.GetExpirationTime(); expErr == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	if iat, iatErr := mapClaims.GetIssuedAt(); iatErr == nil && iat != nil {
		claims.IssuedAt = iat.Time
	}

	return claims, true
}

// IsExpired reports whether the token is expired or will expire within
// buffer. Malformed tokens and tokens without an exp claim are treated as
// expired; decode failures never escape as errors.
func (c *Checker) IsExpired(raw string, buffer time.Duration) bool {
	claims, ok := c.Decode(raw)
	if !ok {
		return true
	}
	if !claims.HasExpiry() {
		return true
	}
	return !c.now().Before(claims.ExpiresAt.Add(-buffer))
}
