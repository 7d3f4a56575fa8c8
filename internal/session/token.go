package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry decodes the access token's exp claim without verifying the
// signature. The client holds no signing key; expiry inspection only steers
// proactive renewal, the server remains the authority on validity.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	expires, err := parsed.Claims.GetExpirationTime()
	if err != nil || expires == nil {
		return time.Time{}, false
	}
	return expires.Time, true
}

// ExpiresWithin reports whether the token expires inside the given leeway.
// Tokens that cannot be decoded report false so the request proceeds and the
// server's 401 handling takes over.
func ExpiresWithin(token string, leeway time.Duration) bool {
	expires, ok := TokenExpiry(token)
	if !ok {
		return false
	}
	return time.Until(expires) <= leeway
}
