// Package testdb provides test database utilities for FreelanceHub.
//
// # Test Database Setup
//
// Create a test database for each test:
//
//	func TestSomething(t *testing.T) {
//	    tdb := testdb.New(t)
//	    defer tdb.Close()
//	}
//
// # Migrations
//
// The schema embedded in the database package is applied on setup, so the
// unique email index and field assertions are live.
//
// # Isolation
//
// Each test gets its own namespace, removed again by Close.
//
// # Configuration
//
// TEST_DB_HOST, TEST_DB_PORT, TEST_DB_USER and TEST_DB_PASSWORD override the
// localhost defaults. Tests skip when the server cannot be reached.
package testdb
