package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/10xdevs/task-manager-api/internal/config"
	"github.com/10xdevs/task-manager-api/internal/platform/postgres"
	"github.com/10xdevs/task-manager-api/internal/service"
	"github.com/10xdevs/task-manager-api/internal/service/auth"
)

// application holds the wired components of the running server.
// All services are stateless; the struct exists so the router and the
// lifecycle code share one dependency graph.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	tokenService auth.TokenService
	taskService  service.TaskService
}

// newApplication wires stores, services and guards from the bottom up.
func newApplication(cfg *config.Config, db *sql.DB, appLogger *slog.Logger) (*application, error) {
	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	taskStore := postgres.NewPostgresTaskStore(db, appLogger)
	taskRepo := service.NewTaskRepositoryAdapter(taskStore, db)

	taskService, err := service.NewTaskService(
		taskRepo,
		service.NewOwnershipGuard(),
		appLogger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       appLogger,
		db:           db,
		tokenService: tokenService,
		taskService:  taskService,
	}, nil
}
