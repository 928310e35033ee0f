package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

// DefaultPassword is the plaintext behind every fixture account hash
const DefaultPassword = "testpass123"

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func execute(t *testing.T, db database.Database, query string, vars map[string]interface{}) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Execute(ctx, query, vars); err != nil {
		t.Fatalf("fixtures: %v", err)
	}
}

// ============================================================================
// Account Fixtures
// ============================================================================

// AccountOpts customizes account creation
type AccountOpts struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// WithEmail sets the account email
func WithEmail(email string) func(*AccountOpts) {
	return func(o *AccountOpts) {
		o.Email = email
	}
}

// CreateAccount creates an account whose password is DefaultPassword unless overridden
func (f *Factory) CreateAccount(t *testing.T, opts ...func(*AccountOpts)) *model.Account {
	t.Helper()

	o := &AccountOpts{
		Email:     fmt.Sprintf("user_%s@test.local", randomID()),
		FirstName: "Test",
		LastName:  "User",
		Password:  DefaultPassword,
	}
	for _, fn := range opts {
		fn(o)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}

	account := &model.Account{
		ID:        uuid.NewString(),
		Email:     o.Email,
		FirstName: o.FirstName,
		LastName:  o.LastName,
		Hash:      string(hash),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	execute(t, f.db, `
		CREATE type::thing('account', $id) CONTENT {
			email: $email,
			first_name: $first_name,
			last_name: $last_name,
			hash: $hash,
			created_at: <datetime> $created_at
		}
	`, map[string]interface{}{
		"id":         account.ID,
		"email":      account.Email,
		"first_name": account.FirstName,
		"last_name":  account.LastName,
		"hash":       account.Hash,
		"created_at": account.CreatedAt.Format(time.RFC3339Nano),
	})
	return account
}

// ============================================================================
// Project Fixtures
// ============================================================================

// ProjectOpts customizes project creation
type ProjectOpts struct {
	Title       string
	Description string
	Budget      int64
	TechStack   []string
	Status      model.ProjectStatus
	CreatedAt   time.Time
}

// WithBudget sets the project budget
func WithBudget(budget int64) func(*ProjectOpts) {
	return func(o *ProjectOpts) {
		o.Budget = budget
	}
}

// WithTech sets the project tech stack
func WithTech(tags ...string) func(*ProjectOpts) {
	return func(o *ProjectOpts) {
		o.TechStack = tags
	}
}

// WithStatus sets the project status
func WithStatus(status model.ProjectStatus) func(*ProjectOpts) {
	return func(o *ProjectOpts) {
		o.Status = status
	}
}

// CreatedAt sets the project creation time
func CreatedAt(at time.Time) func(*ProjectOpts) {
	return func(o *ProjectOpts) {
		o.CreatedAt = at
	}
}

// CreateProject creates an OPEN project with sensible defaults
func (f *Factory) CreateProject(t *testing.T, opts ...func(*ProjectOpts)) *model.Project {
	t.Helper()

	o := &ProjectOpts{
		Title:       fmt.Sprintf("Project %s", randomID()),
		Description: "A fixture project with a long enough description",
		Budget:      1000,
		TechStack:   []string{"go"},
		Status:      model.ProjectStatusOpen,
		CreatedAt:   time.Now().UTC(),
	}
	for _, fn := range opts {
		fn(o)
	}

	project := &model.Project{
		ID:          uuid.NewString(),
		Title:       o.Title,
		Description: o.Description,
		Budget:      o.Budget,
		TechStack:   o.TechStack,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt.UTC().Truncate(time.Millisecond),
	}

	execute(t, f.db, `
		CREATE type::thing('project', $id) CONTENT {
			title: $title,
			description: $description,
			budget: $budget,
			tech_stack: $tech_stack,
			status: $status,
			created_at: <datetime> $created_at
		}
	`, map[string]interface{}{
		"id":          project.ID,
		"title":       project.Title,
		"description": project.Description,
		"budget":      project.Budget,
		"tech_stack":  project.TechStack,
		"status":      string(project.Status),
		"created_at":  project.CreatedAt.Format(time.RFC3339Nano),
	})
	return project
}
