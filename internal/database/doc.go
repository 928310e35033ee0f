// Package database provides document store connectivity for FreelanceHub.
//
// Two backends are supported. SurrealDB is reached through the Database
// interface and repositories issue parameterized SurrealQL against it.
// MongoDB is reached through Mongo, which hands out collections to the
// mongostore package.
//
// # Connection Management
//
// Connect to SurrealDB and apply the embedded schema:
//
//	db := database.NewSurrealDB(database.Config{
//	    Host:      "localhost",
//	    Port:      "8000",
//	    Namespace: "freelancehub",
//	    Database:  "marketplace",
//	    User:      "root",
//	    Password:  "root",
//	})
//	if err := db.Connect(ctx); err != nil { ... }
//	if err := database.Migrate(ctx, db); err != nil { ... }
//
// Connect to MongoDB and create indexes:
//
//	m := database.NewMongo(database.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "freelance_marketplace",
//	})
//	if err := m.Connect(ctx); err != nil { ... }
//	if err := m.EnsureIndexes(ctx); err != nil { ... }
//
// # Error Types
//
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection failed
//   - ErrQuery: Query execution failed
package database
