// Package common contains constants and helpers shared by the client
// packages.
package common

const (
	// AuthorizationHeaderName carries the bearer token on API requests.
	AuthorizationHeaderName = "Authorization"
	BearerPrefix            = "Bearer "

	// RequestIDHeaderName tags each outbound API request for correlation in
	// server logs.
	RequestIDHeaderName = "X-Request-ID"
)
