package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/resume-review-dashboard/internal/types"
)

// Claims are the claims the backend puts in its session cookie.
type Claims struct {
	UserID types.ID `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenInfo describes a session cookie as far as the client can tell
// without the signing key.
type TokenInfo struct {
	UserID    types.ID
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry before now.
func (t *TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// InspectToken decodes the session cookie without verifying its signature.
// The result is informational only; the backend remains the judge of
// whether the session is valid.
func InspectToken(token string) (*TokenInfo, error) {
	if token == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed session token: %w", err)
	}

	info := &TokenInfo{UserID: claims.UserID}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
