// Package fixtures provides test data factories for FreelanceHub.
//
// Create a factory with a database connection:
//
//	f := fixtures.New(tdb.DB)
//
// # Creating Test Data
//
//	account := f.CreateAccount(t)
//	account := f.CreateAccount(t, fixtures.WithEmail("dev@example.com"))
//	project := f.CreateProject(t, fixtures.WithBudget(500), fixtures.WithTech("go", "react"))
//
// Accounts are stored with a bcrypt hash of DefaultPassword. Test data is
// removed when the test database is closed.
package fixtures
