package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/freelancehub/api/internal/model"
)

// ProjectStore defines the interface for project storage
type ProjectStore interface {
	Find(ctx context.Context, p model.Predicate, opts model.ListOptions) ([]*model.Project, error)
	// GetByID returns nil, nil when the project does not exist
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	// UpdateStatus moves id from one status to another and reports false
	// if the project was not in the from status.
	UpdateStatus(ctx context.Context, id string, from, to model.ProjectStatus) (bool, error)
}

// ProjectService handles project listings
type ProjectService struct {
	projects ProjectStore
	logger   *slog.Logger
	now      func() time.Time
}

// ProjectServiceConfig holds configuration for the project service
type ProjectServiceConfig struct {
	Projects ProjectStore
	Logger   *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(cfg ProjectServiceConfig) *ProjectService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectService{
		projects: cfg.Projects,
		logger:   logger.With(slog.String("service", "project")),
		now:      time.Now,
	}
}

// CreateProjectRequest represents a new project listing
type CreateProjectRequest struct {
	Title       string   `json:"title" validate:"required,min=5,max=100"`
	Description string   `json:"description" validate:"required,min=20"`
	Budget      int64    `json:"budget" validate:"gt=0"`
	TechStack   []string `json:"tech_stack" validate:"required,min=1,dive,required"`
}

// Create validates and stores a new OPEN project
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*model.Project, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	tags := make([]string, 0, len(req.TechStack))
	for _, t := range req.TechStack {
		tags = append(tags, strings.TrimSpace(t))
	}
	req.TechStack = tags

	if err := validateStruct(ErrInvalidProject, req); err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		TechStack:   req.TechStack,
		Status:      model.ProjectStatusOpen,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, storeError("creating project", err)
	}

	s.logger.Info("project created", slog.String("project_id", project.ID))
	return project, nil
}

// Get returns a single project
func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrProjectNotFound
	}
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("loading project", err)
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// List returns projects matching the criteria, newest first
func (s *ProjectService) List(ctx context.Context, c FilterCriteria) ([]*model.Project, error) {
	projects, err := s.projects.Find(ctx, BuildProjectPredicate(c), c.ListOptions())
	if err != nil {
		return nil, storeError("listing projects", err)
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	return projects, nil
}

// UpdateStatus applies a lifecycle transition. Only OPEN -> COMPLETED is allowed.
func (s *ProjectService) UpdateStatus(ctx context.Context, id, status string) (*model.Project, error) {
	next, ok := model.ParseProjectStatus(status)
	if !ok {
		return nil, &ValidationError{
			Kind:   ErrInvalidProject,
			Fields: []model.FieldError{{Field: "status", Message: "must be OPEN or COMPLETED"}},
		}
	}

	project, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.Status.CanTransitionTo(next) {
		return nil, ErrInvalidStatusTransition
	}

	updated, err := s.projects.UpdateStatus(ctx, project.ID, project.Status, next)
	if err != nil {
		return nil, storeError("updating project status", err)
	}
	if !updated {
		// Another request moved the project first
		return nil, ErrInvalidStatusTransition
	}

	s.logger.Info("project status changed",
		slog.String("project_id", project.ID),
		slog.String("from", string(project.Status)),
		slog.String("to", string(next)),
	)

	project.Status = next
	return project, nil
}
