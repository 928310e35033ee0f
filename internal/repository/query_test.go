package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

// ============================================================================
// Rendering Tests
// ============================================================================

func TestRenderWhere_Empty(t *testing.T) {
	t.Parallel()

	where, vars, err := renderWhere(model.Predicate{})

	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, vars)
}

func TestRenderWhere_AllConstraintsJoinedWithAnd(t *testing.T) {
	t.Parallel()

	p := model.Predicate{}.
		And(model.Constraint{Field: model.FieldTechStack, Op: model.OpContains, Value: "go"}).
		And(model.Constraint{Field: model.FieldBudget, Op: model.OpGTE, Value: int64(100)}).
		And(model.Constraint{Field: model.FieldBudget, Op: model.OpLTE, Value: int64(500)}).
		And(model.Constraint{Field: model.FieldStatus, Op: model.OpEq, Value: model.ProjectStatusOpen})

	where, vars, err := renderWhere(p)
	require.NoError(t, err)

	assert.Equal(t, " WHERE tech_stack CONTAINS $p0 AND budget >= $p1 AND budget <= $p2 AND status = $p3", where)
	assert.Equal(t, "go", vars["p0"])
	assert.Equal(t, int64(100), vars["p1"])
	assert.Equal(t, int64(500), vars["p2"])
	assert.Equal(t, "OPEN", vars["p3"])
}

func TestRenderWhere_ValuesNeverInlined(t *testing.T) {
	t.Parallel()

	p := model.Predicate{}.And(model.Constraint{Field: model.FieldTechStack, Op: model.OpContains, Value: "go'; DELETE project; --"})

	where, _, err := renderWhere(p)

	require.NoError(t, err)
	assert.NotContains(t, where, "DELETE")
}

func TestRenderWhere_RejectsUnknownFieldAndOperator(t *testing.T) {
	t.Parallel()

	_, _, err := renderWhere(model.Predicate{}.And(model.Constraint{Field: "owner", Op: model.OpEq, Value: "x"}))
	assert.Error(t, err)

	_, _, err = renderWhere(model.Predicate{}.And(model.Constraint{Field: model.FieldBudget, Op: "!=", Value: 1}))
	assert.Error(t, err)
}

func TestRenderOrder(t *testing.T) {
	t.Parallel()

	vars := map[string]interface{}{}
	tail, err := renderOrder(model.ListOptions{
		Sort:   model.SortOrder{Field: model.FieldCreatedAt, Descending: true},
		Offset: 20,
		Limit:  10,
	}, vars)

	require.NoError(t, err)
	assert.Equal(t, " ORDER BY created_at DESC, id DESC LIMIT $limit START $start", tail)
	assert.Equal(t, 10, vars["limit"])
	assert.Equal(t, 20, vars["start"])
}

func TestRenderOrder_NoOffset(t *testing.T) {
	t.Parallel()

	vars := map[string]interface{}{}
	tail, err := renderOrder(model.ListOptions{Sort: model.SortOrder{Field: model.FieldCreatedAt}, Limit: 5}, vars)

	require.NoError(t, err)
	assert.Equal(t, " ORDER BY created_at ASC, id ASC LIMIT $limit", tail)
	assert.NotContains(t, vars, "start")
}

// ============================================================================
// Parsing Tests
// ============================================================================

func TestRecordKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   interface{}
		want string
	}{
		{"plain", "abc", "abc"},
		{"prefixed", "project:abc", "abc"},
		{"bracketed", "project:⟨3f1c-9a⟩", "3f1c-9a"},
		{"record id", models.RecordID{Table: "account", ID: "u-1"}, "u-1"},
		{"record id ptr", &models.RecordID{Table: "account", ID: "u-2"}, "u-2"},
		{"map", map[string]interface{}{"tb": "project", "id": "p-9"}, "p-9"},
		{"nested map", map[string]interface{}{"tb": "project", "id": map[string]interface{}{"String": "p-10"}}, "p-10"},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recordKey(tt.in))
		})
	}
}

func TestParseProject(t *testing.T) {
	t.Parallel()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	p := parseProject(map[string]interface{}{
		"id":          models.RecordID{Table: "project", ID: "p-1"},
		"title":       "Build an API",
		"description": "Long enough description text",
		"budget":      uint64(1500),
		"tech_stack":  []interface{}{"go", "surrealdb"},
		"status":      "OPEN",
		"created_at":  models.CustomDateTime{Time: created},
	})

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, int64(1500), p.Budget)
	assert.Equal(t, []string{"go", "surrealdb"}, p.TechStack)
	assert.Equal(t, model.ProjectStatusOpen, p.Status)
	assert.True(t, created.Equal(p.CreatedAt))
}

func TestParseAccount_KeepsHash(t *testing.T) {
	t.Parallel()

	a, err := parseAccount(map[string]interface{}{
		"id":         "account:u-1",
		"email":      "dev@example.com",
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"hash":       "$2a$12$abc",
		"created_at": "2025-01-01T00:00:00Z",
	})

	require.NoError(t, err)
	assert.Equal(t, "u-1", a.ID)
	assert.Equal(t, "$2a$12$abc", a.Hash)
	assert.Equal(t, "Ada", a.FirstName)
	assert.Equal(t, 2025, a.CreatedAt.Year())
}

// ============================================================================
// Repository Tests (recorded queries)
// ============================================================================

type recordingDB struct {
	database.Database
	query    string
	vars     map[string]interface{}
	response []interface{}
	err      error
}

func (r *recordingDB) Query(_ context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.query = query
	r.vars = vars
	return r.response, r.err
}

func (r *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := r.Query(ctx, query, vars)
	return err
}

func okRows(rows ...map[string]interface{}) []interface{} {
	result := make([]interface{}, 0, len(rows))
	for _, r := range rows {
		result = append(result, r)
	}
	return []interface{}{map[string]interface{}{"status": "OK", "result": result}}
}

func TestProjectRepository_Find_BuildsQuery(t *testing.T) {
	t.Parallel()
	db := &recordingDB{response: okRows(
		map[string]interface{}{"id": "project:b", "budget": int64(300), "status": "OPEN"},
		map[string]interface{}{"id": "project:a", "budget": int64(200), "status": "OPEN"},
	)}
	repo := NewProjectRepository(db)

	p := model.Predicate{}.
		And(model.Constraint{Field: model.FieldBudget, Op: model.OpGTE, Value: int64(100)}).
		And(model.Constraint{Field: model.FieldBudget, Op: model.OpLTE, Value: int64(500)})
	got, err := repo.Find(context.Background(), p, model.ListOptions{
		Sort:  model.SortOrder{Field: model.FieldCreatedAt, Descending: true},
		Limit: 10,
	})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(db.query, "SELECT * FROM project WHERE budget >= $p0 AND budget <= $p1"))
	assert.Contains(t, db.query, "ORDER BY created_at DESC, id DESC")
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
}

func TestProjectRepository_Find_EmptyResultIsNonNil(t *testing.T) {
	t.Parallel()
	repo := NewProjectRepository(&recordingDB{response: okRows()})

	got, err := repo.Find(context.Background(), model.Predicate{}, model.ListOptions{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestProjectRepository_Find_PropagatesStoreError(t *testing.T) {
	t.Parallel()
	repo := NewProjectRepository(&recordingDB{err: database.ErrConnection})

	_, err := repo.Find(context.Background(), model.Predicate{}, model.ListOptions{})

	assert.ErrorIs(t, err, database.ErrConnection)
}

func TestProjectRepository_UpdateStatus_ReportsMatch(t *testing.T) {
	t.Parallel()

	hit := &recordingDB{response: okRows(map[string]interface{}{"id": "project:p", "status": "COMPLETED"})}
	ok, err := NewProjectRepository(hit).UpdateStatus(context.Background(), "p", model.ProjectStatusOpen, model.ProjectStatusCompleted)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "OPEN", hit.vars["from"])
	assert.Equal(t, "COMPLETED", hit.vars["to"])

	miss := &recordingDB{response: okRows()}
	ok, err = NewProjectRepository(miss).UpdateStatus(context.Background(), "p", model.ProjectStatusOpen, model.ProjectStatusCompleted)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAccountRepository_Create_MapsDuplicate(t *testing.T) {
	t.Parallel()
	repo := NewAccountRepository(&recordingDB{err: database.ErrDuplicate})

	err := repo.Create(context.Background(), &model.Account{ID: "a", Email: "dev@example.com"})

	assert.ErrorIs(t, err, database.ErrDuplicate)
}
