package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is what the client can learn from a bearer token without its secret
type TokenInfo struct {
	Subject   string
	Issuer    string
	ExpiresAt *time.Time
}

// Expired reports whether the token expiry lies before now
func (i TokenInfo) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// Inspect parses the registered claims of a token without verifying its signature.
// The backend stays the authority on validity; this only feeds warnings.
func Inspect(tokenString string) (TokenInfo, error) {
	if tokenString == "" {
		return TokenInfo{}, fmt.Errorf("token is empty")
	}

	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return TokenInfo{}, fmt.Errorf("failed to parse token: %w", err)
	}

	info := TokenInfo{
		Subject: claims.Subject,
		Issuer:  claims.Issuer,
	}
	if claims.ExpiresAt != nil {
		exp := claims.ExpiresAt.Time
		info.ExpiresAt = &exp
	}
	return info, nil
}
