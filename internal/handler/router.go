package handler

import (
	"net/http"

	"github.com/forgo/freelancehub/api/internal/middleware"
)

// RouterConfig holds the dependencies for NewRouter
type RouterConfig struct {
	Auth       AuthService
	Authorizer middleware.Authorizer
	Projects   ProjectService
	Store      Pinger
}

// NewRouter registers every API route on a new ServeMux
func NewRouter(cfg RouterConfig) *http.ServeMux {
	authHandler := NewAuthHandler(cfg.Auth)
	projectHandler := NewProjectHandler(cfg.Projects)
	healthHandler := NewHealthHandler(cfg.Store)

	requireAuth := middleware.Auth(cfg.Authorizer)
	protected := func(h http.HandlerFunc) http.Handler {
		return requireAuth(h)
	}

	mux := http.NewServeMux()

	// Health check (no auth)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// Auth endpoints (public)
	mux.HandleFunc("POST /v1/auth/register", authHandler.Register)
	mux.HandleFunc("POST /v1/auth/login", authHandler.Login)

	// Auth endpoints (protected)
	mux.Handle("GET /v1/auth/me", protected(authHandler.Me))

	// Project endpoints
	mux.HandleFunc("GET /v1/projects", projectHandler.List)
	mux.HandleFunc("GET /v1/projects/{projectId}", projectHandler.Get)
	mux.Handle("POST /v1/projects", protected(projectHandler.Create))
	mux.Handle("PATCH /v1/projects/{projectId}/status", protected(projectHandler.UpdateStatus))

	return mux
}
