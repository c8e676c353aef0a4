// ABOUTME: Access token inspection used to refresh before the server rejects a call
// ABOUTME: Reads the exp claim without verifying the signature

package client

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expirySkew refreshes slightly early so a token does not expire in flight
const expirySkew = 30 * time.Second

// accessClaims mirrors the claims carried by the backend's access tokens
type accessClaims struct {
	UserID    int    `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// tokenExpiry returns the exp claim. The signature is not checked: the
// client only needs a hint, the server remains the authority.
func tokenExpiry(token string) (time.Time, bool) {
	var claims accessClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// tokenExpired reports whether token is known to be expired at now. Opaque
// or unparseable tokens are never considered expired locally.
func tokenExpired(token string, now time.Time) bool {
	exp, ok := tokenExpiry(token)
	if !ok {
		return false
	}
	return !now.Add(expirySkew).Before(exp)
}

// TokenExpiry exposes the exp claim of an access token for status output
func TokenExpiry(token string) (time.Time, bool) {
	return tokenExpiry(token)
}
