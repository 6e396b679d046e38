// Package client is the transport layer of the helpdesk client.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) with
//     one method per backend endpoint: auth (signup, login, logout,
//     session check) and tickets (list, create, comment, status,
//     priority, assign, delete, remove).
//  2. A REST implementation (see HTTPClient) that keeps the session
//     cookie in a cookie jar, tags each request with an X-Request-ID,
//     applies a per-request timeout and decodes every response into its
//     typed contract from package models.
//
// # Error Handling
//
// Failures are reported as sentinel errors that callers match with
// errors.Is: ErrUnavailable (the request never got an HTTP answer),
// ErrMalformedResponse (a 2xx body that does not match its contract) and
// ErrUnauthorized / ErrForbidden / ErrNotFound (via *APIError). Non-2xx
// answers are *APIError values carrying the server's message; use
// MessageOrFallback to pick the text shown to the user.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation.
package client
