// Package common contains constants and helpers shared by the helpdesk
// client packages.
package common

const (
	// RequestIDHeaderName carries a per-request correlation id so that a
	// client failure can be matched with the backend log line.
	RequestIDHeaderName = "X-Request-ID"

	// DefaultSessionCookieName is the cookie the backend stores its session
	// token in.
	DefaultSessionCookieName = "jwt"
)
