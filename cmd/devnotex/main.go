package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/devnotex/devnotex/db"
	"github.com/devnotex/devnotex/internal/auth"
	"github.com/devnotex/devnotex/internal/config"
	"github.com/devnotex/devnotex/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	gdb, err := db.Connect(cfg.DBDriver, cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.Seed(gdb); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry)

	r := router.New(gdb, tokens, cfg.AllowedOrigins)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
