// Package helpers provides HTTP test utilities for FreelanceHub.
//
// # Token Helpers
//
//	tokens := helpers.NewTokenHelper(t)
//	valid := tokens.GenerateToken("dev@example.com")
//	expired := tokens.GenerateExpiredToken("dev@example.com")
//	forged := tokens.GenerateForgedToken("dev@example.com")
//
// The helper's Codec is the one a test server should verify with.
//
// # Requests
//
//	rr := helpers.NewRequest(t, http.MethodPost, "/v1/projects").
//	    WithBody(payload).
//	    WithBearer(valid).
//	    Do(router)
//
// # Assertions
//
//	helpers.AssertStatus(t, rr, http.StatusCreated)
//	helpers.AssertValidationError(t, rr, "title")
package helpers
