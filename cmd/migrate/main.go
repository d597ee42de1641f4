package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/cardforge-games/cardforge/cardforge"
	"github.com/cardforge-games/cardforge/cardforge/database"
	"github.com/cardforge-games/cardforge/cardforge/logger"
)

// Standalone schema bootstrap: creates tables and indexes and applies the
// seed data without starting the API server.
func main() {
	ctx := context.Background()

	slog.SetDefault(slog.New(logger.NewHandler("CardForge-Migrate")))

	configPath := "config.toml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := cardforge.LoadConfig(configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(ctx, database.DBConfig{
		Host:         cfg.DB.Host,
		Port:         cfg.DB.Port,
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Database:     cfg.DB.Database,
		PoolSize:     cfg.DB.PoolSize,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxLifetime:  cfg.DB.MaxLifetime,
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Schema initialization failed", "error", err)
		os.Exit(1)
	}

	if err := db.Seed(ctx, cfg.Game.StarterCredits); err != nil {
		slog.Error("Seeding failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Migration completed successfully!")
}
