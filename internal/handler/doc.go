// Package handler provides HTTP request handlers for the FreelanceHub API.
//
// Each handler struct depends on a narrow service interface declared next
// to it, so handlers can be tested against stubs.
//
// # Routes
//
//	GET   /health
//	POST  /v1/auth/register
//	POST  /v1/auth/login
//	GET   /v1/auth/me                      (bearer)
//	GET   /v1/projects
//	POST  /v1/projects                     (bearer)
//	GET   /v1/projects/{projectId}
//	PATCH /v1/projects/{projectId}/status  (bearer)
//
// # Response Format
//
//   - WriteData: Single resource with optional HATEOAS links
//   - WriteCollection: List of resources with skip/limit pagination
//   - WriteError: RFC 9457 Problem Details error response
//
// Service errors are translated in one place by MapServiceError.
package handler
