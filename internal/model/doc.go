// Package model defines domain entities and data structures for the FreelanceHub API.
//
// # Domain Entities
//
//   - Account: registered user; the bcrypt hash is never serialized
//   - AccountView: the only account shape handed to callers
//   - Project: a project listing with a closed OPEN/COMPLETED lifecycle
//
// # Query Predicates
//
// Predicate is a storage-neutral conjunction of field constraints. Stores
// render it natively (SurrealQL WHERE clause, BSON $and) and in-memory fakes
// evaluate it with Matches:
//
//	p := model.Predicate{}.
//	    And(model.Constraint{Field: model.FieldBudget, Op: model.OpGTE, Value: int64(100)}).
//	    And(model.Constraint{Field: model.FieldBudget, Op: model.OpLTE, Value: int64(500)})
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go.
package model
