package app

import (
	"log"

	"miniblog/internal/config"
	"miniblog/internal/database"
	"miniblog/internal/repository"
	"miniblog/internal/service"
	"miniblog/internal/session"
)

// App wires the dependency chain: config -> database -> repositories ->
// services. The caller owns the returned DB handle and closes it.
func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service, *session.Manager) {
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	if err := db.HealthCheck(); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	sessions := session.NewManager(cfg)

	repo := repository.NewRepository(db, cfg)

	services := service.NewService(repo, sessions)

	return db, repo, services, sessions
}
