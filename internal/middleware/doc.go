// Package middleware provides HTTP middleware for the FreelanceHub API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: one structured slog line per request
//   - Recovery: turns panics into a 500 problem response
//   - CORS: origin allow list and preflight handling
//   - Compress: gzip when the client accepts it
//   - Auth: bearer token authorization
//
// # Authentication
//
// Auth resolves the bearer token through an Authorizer and stores the
// account in the request context:
//
//	mux.Handle("POST /v1/projects", middleware.Auth(authService)(http.HandlerFunc(h.Create)))
//
// Handlers read it back with GetAccount(r.Context()).
package middleware
