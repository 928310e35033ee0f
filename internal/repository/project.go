package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/freelancehub/api/internal/database"
	"github.com/forgo/freelancehub/api/internal/model"
)

// ProjectRepository handles project data access
type ProjectRepository struct {
	db database.Database
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db database.Database) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create stores a new project under its generated ID
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	query := `
		CREATE type::thing('project', $id) CONTENT {
			title: $title,
			description: $description,
			budget: $budget,
			tech_stack: $tech_stack,
			status: $status,
			created_at: <datetime> $created_at
		}
	`
	vars := map[string]interface{}{
		"id":          project.ID,
		"title":       project.Title,
		"description": project.Description,
		"budget":      project.Budget,
		"tech_stack":  project.TechStack,
		"status":      string(project.Status),
		"created_at":  formatTime(project.CreatedAt),
	}

	if err := r.db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by ID. Returns nil, nil when absent.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	query := `SELECT * FROM type::thing('project', $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, errors.New("unexpected result format")
	}
	return parseProject(data), nil
}

// Find returns the projects matching every constraint of the predicate,
// ordered and paginated by opts.
func (r *ProjectRepository) Find(ctx context.Context, p model.Predicate, opts model.ListOptions) ([]*model.Project, error) {
	where, vars, err := renderWhere(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}
	tail, err := renderOrder(opts, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", database.ErrQuery, err)
	}

	query := "SELECT * FROM project" + where + tail
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("failed to find projects: %w", err)
	}

	rows := queryRows(result)
	projects := make([]*model.Project, 0, len(rows))
	for _, row := range rows {
		projects = append(projects, parseProject(row))
	}
	return projects, nil
}

// UpdateStatus moves a project from one status to another. It reports
// false when the project is missing or no longer in the from status.
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, from, to model.ProjectStatus) (bool, error) {
	query := `
		UPDATE project SET status = $to
		WHERE id = type::thing('project', $id) AND status = $from
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"id":   id,
		"from": string(from),
		"to":   string(to),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return false, fmt.Errorf("failed to update project status: %w", err)
	}
	return len(queryRows(result)) > 0, nil
}

func parseProject(data map[string]interface{}) *model.Project {
	return &model.Project{
		ID:          recordKey(data["id"]),
		Title:       getString(data, "title"),
		Description: getString(data, "description"),
		Budget:      getInt64(data, "budget"),
		TechStack:   getStringSlice(data, "tech_stack"),
		Status:      model.ProjectStatus(getString(data, "status")),
		CreatedAt:   getTime(data, "created_at"),
	}
}
