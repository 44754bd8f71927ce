package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/phishwatch/internal/common"
)

// Claims is the subset of the token payload the client relies on.
// A zero ExpiresAt means the token carries no exp claim.
type Claims struct {
	Subject   string
	Role      Role
	ExpiresAt time.Time
}

// Expired reports whether the claims are past their expiry at now.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

type tokenClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Decode parses a JWT and returns its claims without checking the
// signature. Structurally invalid tokens yield common.ErrInvalidToken.
func Decode(token string) (Claims, error) {
	var tc tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return Claims{}, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	c := Claims{Subject: tc.Subject, Role: ParseRole(tc.Role)}
	if tc.ExpiresAt != nil {
		c.ExpiresAt = tc.ExpiresAt.Time
	}
	return c, nil
}
