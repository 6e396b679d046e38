// Package session reads the backend session token out of the cookie jar.
//
// The token is a JWT signed by the backend. The client does not hold the
// signing key, so claims are decoded without verification and are only
// used for display (who am I, when does the session expire). The backend
// remains the authority on whether the session is valid.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoSession = errors.New("no session cookie")

// Claims is the payload the backend puts into its session token.
type Claims struct {
	UserID string `json:"uid,omitempty"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Info describes the current session token.
type Info struct {
	UserID    string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token expiry is at or before now. A token
// without expiry never expires.
func (i Info) Expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && !now.Before(i.ExpiresAt)
}

// Remaining returns the time left until expiry, or 0 when expired or when
// the token carries no expiry.
func (i Info) Remaining(now time.Time) time.Duration {
	if i.ExpiresAt.IsZero() || i.Expired(now) {
		return 0
	}
	return i.ExpiresAt.Sub(now)
}

// Inspect finds the cookie called name and decodes its token.
func Inspect(cookies []*http.Cookie, name string) (Info, error) {
	for _, c := range cookies {
		if c.Name == name && c.Value != "" {
			return Decode(c.Value)
		}
	}
	return Info{}, ErrNoSession
}

// Decode parses token without verifying its signature.
func Decode(token string) (Info, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Info{}, fmt.Errorf("decode session token: %w", err)
	}

	info := Info{UserID: claims.UserID, Role: claims.Role}
	if info.UserID == "" {
		info.UserID = claims.Subject
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Sign issues a token for userID. The client never signs tokens itself;
// this exists for fake backends in tests and local tooling.
func Sign(secret []byte, userID, role string, now time.Time, ttl time.Duration) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}).SignedString(secret)
}

// Verify checks the signature of token and returns its claims.
func Verify(secret []byte, token string) (*Claims, error) {
	t, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*Claims); ok && t.Valid {
		return c, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}
