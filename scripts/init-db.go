package main

import (
	"fmt"
	"log"

	"inventory_manager/internal/config"
	"inventory_manager/internal/database"
	"inventory_manager/internal/logger"
	"inventory_manager/internal/migrations"
	"inventory_manager/internal/repository"
	"inventory_manager/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	cfg := config.Load()
	logger.Initialize(cfg.Environment)

	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	fmt.Println("Dropping and recreating tables...")
	if err := migrations.Reset(db); err != nil {
		log.Fatal("Failed to reset schema:", err)
	}

	// Issue the first API key. The plaintext is printed once and never stored.
	apiKeyRepo := repository.NewAPIKeyRepository(db)
	authService := services.NewAuthService(apiKeyRepo, nil, cfg.SessionTimeout)

	key, err := authService.IssueKey("default")
	if err != nil {
		log.Fatal("Failed to issue API key:", err)
	}

	fmt.Println("Database initialized.")
	fmt.Printf("API key (save it now, it will not be shown again): %s\n", key)
}
