package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"datalens/adapters/postgres"
	"datalens/adapters/postgres/migrations"
	"datalens/internal/config"
	"datalens/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	migrator := migrations.NewMigrator(db.DB)
	if err := migrator.Up(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	app := ui.NewApp(cfg, postgres.NewAnalysisRepository(db))
	if err := app.Serve(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
