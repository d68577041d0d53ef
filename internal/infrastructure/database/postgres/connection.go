// internal/infrastructure/database/postgres/connection.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connection wraps the gorm handle
type Connection struct {
	db *gorm.DB
}

// NewConnection opens the Postgres pool described by the database section
func NewConnection(cfg *config.Config, log logrus.FieldLogger) (*Connection, error) {
	logLevel := gormlogger.Warn
	if cfg.IsDevelopment() && cfg.App.Debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	log.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"database": cfg.Database.Name,
	}).Info("database connection established")

	return &Connection{db: db}, nil
}

// GetDB returns the gorm handle
func (c *Connection) GetDB() *gorm.DB {
	return c.db
}

// Health pings the database
func (c *Connection) Health(ctx context.Context) error {
	return Ping(ctx, c.db)
}

// Close closes the underlying pool
func (c *Connection) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that db answers within a short deadline
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database connection error: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
