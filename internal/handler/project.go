package handler

import (
	"context"
	"net/http"

	"github.com/forgo/freelancehub/api/internal/model"
	"github.com/forgo/freelancehub/api/internal/service"
)

// ProjectService is the subset of the project service the handler calls
type ProjectService interface {
	Create(ctx context.Context, req service.CreateProjectRequest) (*model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, c service.FilterCriteria) ([]*model.Project, error)
	UpdateStatus(ctx context.Context, id, status string) (*model.Project, error)
}

// ProjectHandler handles project listing endpoints
type ProjectHandler struct {
	projectService ProjectService
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// UpdateStatusRequest represents the status endpoint request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// List handles GET /v1/projects
// Query params: tech, min_budget, max_budget, status, skip, limit
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	criteria, fieldErrors := service.ParseProjectFilter(r.URL.Query())
	if len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	projects, err := h.projectService.List(r.Context(), criteria)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteCollection(w, http.StatusOK, projects, &PaginationInfo{
		Skip:  criteria.Skip,
		Limit: criteria.Limit,
		Count: len(projects),
	}, map[string]string{
		"self": r.URL.RequestURI(),
	})
}

// Create handles POST /v1/projects
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProjectRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	project, err := h.projectService.Create(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, project, projectLinks(project.ID))
}

// Get handles GET /v1/projects/{projectId}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.Get(r.Context(), r.PathValue("projectId"))
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, project, projectLinks(project.ID))
}

// UpdateStatus handles PATCH /v1/projects/{projectId}/status
func (h *ProjectHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	project, err := h.projectService.UpdateStatus(r.Context(), r.PathValue("projectId"), req.Status)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, project, projectLinks(project.ID))
}

func projectLinks(id string) map[string]string {
	return map[string]string{
		"self":   "/v1/projects/" + id,
		"status": "/v1/projects/" + id + "/status",
	}
}
