package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/Ngole71/eligibility-checker/internal/app/api"
	"github.com/Ngole71/eligibility-checker/internal/platform/migrations"
	platformpostgres "github.com/Ngole71/eligibility-checker/internal/platform/postgres"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN, platformpostgres.PoolConfig{MaxOpenConns: 1})
	if err != nil {
		log.Fatalf("cannot migrate without postgres: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := migrations.Run(db.WithContext(ctx)); err != nil {
		log.Fatalf("failed to apply migrations: %v", err)
	}
	logger.Info("schema migrations applied")
}
