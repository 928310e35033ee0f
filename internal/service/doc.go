// Package service implements the business logic layer for the FreelanceHub API.
//
// Services own validation and orchestration; storage is reached only
// through the interfaces declared here (AccountStore, ProjectStore), so the
// SurrealDB, MongoDB and in-memory backends are interchangeable.
//
// # Authentication
//
// AuthService registers accounts (bcrypt hashed, email unique ignoring
// case), logs them in and resolves bearer tokens back to accounts. Login
// failures are a single ErrInvalidCredentials whatever the cause, and every
// token problem surfaces from Authorize as ErrUnauthorized.
//
// # Projects
//
// ProjectService creates, lists and completes project listings. List turns
// FilterCriteria into a model.Predicate via BuildProjectPredicate; every
// combination of criteria is valid, contradictory bounds just match nothing.
//
// # Error Handling
//
// Errors are package-level sentinels in errors.go. Store failures are
// wrapped in ErrStoreUnavailable; field problems come back as
// *ValidationError carrying one FieldError per field.
package service
