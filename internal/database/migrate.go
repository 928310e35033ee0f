package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed migrations/*.surql
var migrationFS embed.FS

// Migration is one schema file, applied in name order.
type Migration struct {
	Name       string
	Statements string
}

// Migrations returns the embedded SurrealDB schema files sorted by name.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading migrations: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".surql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		out = append(out, Migration{Name: name, Statements: string(content)})
	}
	return out, nil
}

// Migrate applies every embedded migration. Each statement is written with
// IF NOT EXISTS so running it against an existing schema is a no-op.
func Migrate(ctx context.Context, db Database) error {
	migs, err := Migrations()
	if err != nil {
		return err
	}
	for _, m := range migs {
		if err := db.Execute(ctx, m.Statements, nil); err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
	}
	return nil
}
