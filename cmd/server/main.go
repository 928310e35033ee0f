package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgo/freelancehub/api/internal/config"
	"github.com/forgo/freelancehub/api/internal/credential"
	"github.com/forgo/freelancehub/api/internal/handler"
	"github.com/forgo/freelancehub/api/internal/jobs"
	"github.com/forgo/freelancehub/api/internal/middleware"
	"github.com/forgo/freelancehub/api/internal/repository"
	"github.com/forgo/freelancehub/api/internal/service"
	"github.com/forgo/freelancehub/api/pkg/jwt"
)

func main() {
	_ = godotenv.Load() // load .env if present

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logging
	var logHandler slog.Handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	if cfg.IsDevelopment() {
		logHandler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize stores
	ctx := context.Background()
	backend, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = backend.Close() }()

	// Initialize credential hashing and token signing
	hasher, err := credential.NewHasher(cfg.Auth.BcryptCost)
	if err != nil {
		slog.Error("failed to initialize hasher", slog.String("error", err.Error()))
		os.Exit(1)
	}

	tokens, err := jwt.NewCodec(cfg.JWT.Codec())
	if err != nil {
		slog.Error("failed to initialize token codec", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize services
	authService := service.NewAuthService(service.AuthServiceConfig{
		Accounts: backend.Accounts,
		Hasher:   hasher,
		Tokens:   tokens,
		Logger:   logger,
	})

	projectService := service.NewProjectService(service.ProjectServiceConfig{
		Projects: backend.Projects,
		Logger:   logger,
	})

	// Start background jobs
	var health handler.Pinger
	if backend.Store != nil {
		monitor := jobs.NewStoreMonitor(jobs.StoreMonitorConfig{
			Store:  backend.Store,
			Logger: logger,
		})
		monitor.Start()
		defer monitor.Stop()
		health = monitor
	}

	// Routes
	mux := handler.NewRouter(handler.RouterConfig{
		Auth:       authService,
		Authorizer: authService,
		Projects:   projectService,
		Store:      health,
	})

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.Compress,
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
			slog.String("driver", cfg.Database.Driver),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
