// internal/interfaces/http/server.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/infrastructure/database/postgres"
	"github.com/gamevault/game-library-backend/internal/interfaces/http/middleware"
	"github.com/gamevault/game-library-backend/internal/interfaces/http/routes"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Server represents the HTTP server
type Server struct {
	config      *config.Config
	gin         *gin.Engine
	httpServer  *http.Server
	db          *gorm.DB
	redisClient *redis.Client
	log         logrus.FieldLogger
	startedAt   time.Time
}

// NewServer builds the gin engine with middleware and routes
func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log logrus.FieldLogger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:      cfg,
		gin:         gin.New(),
		db:          db,
		redisClient: redisClient,
		log:         log,
		startedAt:   time.Now(),
	}

	if err := s.gin.SetTrustedProxies(cfg.Security.TrustedProxies); err != nil {
		log.WithError(err).Warn("invalid trusted proxies, trusting none")
		_ = s.gin.SetTrustedProxies(nil)
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      s.gin,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return s
}

// Handler exposes the engine for tests
func (s *Server) Handler() http.Handler {
	return s.gin
}

// Start serves until Stop is called
func (s *Server) Start() error {
	s.log.WithFields(logrus.Fields{
		"port":     s.config.Server.Port,
		"base_url": fmt.Sprintf("http://localhost:%s/api/v1", s.config.Server.Port),
	}).Info("HTTP server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

func (s *Server) setupMiddleware() {
	s.gin.Use(gin.Recovery())
	s.gin.Use(middleware.RequestID())
	s.gin.Use(middleware.Logger(s.log))
	s.gin.Use(middleware.CORS(s.config.Security))
	s.gin.Use(middleware.SecurityHeaders(s.config.App.Name))
	s.gin.Use(middleware.RateLimit(s.config.Security.RateLimitPerMinute, s.redisClient, s.log))
	s.gin.Use(middleware.RequestSizeLimit(s.config.Server.MaxBodyBytes))
	s.gin.Use(middleware.Timeout(s.config.Server.RequestTimeout))
}

func (s *Server) setupRoutes() {
	s.gin.GET("/health", s.healthCheck)
	s.gin.GET("/ready", s.readinessCheck)

	apiV1 := s.gin.Group("/api/v1")
	routes.SetupRoutes(apiV1, routes.NewHandlers(s.db, s.redisClient, s.config, s.log))

	s.gin.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found", "code": "NOT_FOUND"})
	})
}

// healthCheck reports liveness of the database and redis
func (s *Server) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := postgres.Ping(ctx, s.db); err != nil {
		s.log.WithError(err).Error("health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  "database unavailable",
		})
		return
	}

	if s.redisClient != nil {
		redisCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		if err := s.redisClient.Ping(redisCtx).Err(); err != nil {
			s.log.WithError(err).Error("health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "redis unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"version":     s.config.App.Version,
		"environment": s.config.App.Environment,
	})
}

// readinessCheck reports that the server accepts traffic
func (s *Server) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(s.startedAt).Round(time.Second).String(),
	})
}
