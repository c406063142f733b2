// Package api is the client side of the task service REST API.
//
// # Overview
//
// Client is the transport-agnostic contract with one method per endpoint
// (login, signup, current user, profile update, task list and task
// mutations). HTTPClient implements it over JSON/HTTP: it resolves paths
// against a single base URL, attaches the bearer token supplied by a
// TokenSource, tags every request with an X-Request-ID, and normalises
// failures.
//
// # Error Handling
//
// Every call returns either its value or an error of one of two kinds:
//
//   - *Error for a non-2xx response, carrying the status code and the
//     server's "message" field (if any). errors.Is(err, ErrUnauthorized)
//     matches a 401.
//   - an error wrapping ErrUnavailable when the request could not be
//     completed (connection refused, timeout, unreadable response).
//
// Callers decide how to surface these; the package never retries.
package api
