// Package repository implements the SurrealDB data access layer for FreelanceHub.
//
// AccountRepository and ProjectRepository satisfy the store interfaces
// declared by the service package. Records are created as table:uuid and
// the table prefix is stripped on read, so callers only see the uuid.
//
// # Query Patterns
//
//   - Parameterized queries with $variable syntax, never inlined values
//   - type::thing() for record addressing
//   - <datetime> casts on RFC 3339 timestamps
//
// Project predicates are rendered into a WHERE clause by renderWhere, one
// bound parameter per constraint, joined with AND.
//
// # Not Found
//
// Lookups return nil, nil when no record exists; every other failure is
// returned wrapped so errors.Is can still find the database sentinel.
package repository
