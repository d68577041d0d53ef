// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/infrastructure/database/postgres"
	"github.com/gamevault/game-library-backend/internal/infrastructure/database/redis"
	"github.com/gamevault/game-library-backend/internal/interfaces/http"
	"github.com/gamevault/game-library-backend/internal/pkg/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("starting")

	db, err := postgres.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	redisClient, err := redis.NewConnection(cfg, log)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	ctx := context.Background()
	if err := db.Health(ctx); err != nil {
		log.Fatalf("Database health check failed: %v", err)
	}

	migration := postgres.NewMigration(db.GetDB(), log)
	if err := migration.RunAutoMigrations(); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	if err := migration.CreateIndexes(); err != nil {
		log.WithError(err).Warn("index creation failed")
	}
	if err := migration.SeedInitialData(ctx, cfg); err != nil {
		log.WithError(err).Warn("data seeding failed")
	}
	if cfg.IsDevelopment() {
		_ = migration.GetTableInfo(ctx)
	}

	server := http.NewServer(cfg, db.GetDB(), redisClient.GetClient(), log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to shut down HTTP server gracefully")
	}

	log.Info("server shutdown completed")
}
