// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/gamevault/game-library-backend/internal/config"
	"github.com/gamevault/game-library-backend/internal/domain/achievement"
	"github.com/gamevault/game-library-backend/internal/domain/cart"
	"github.com/gamevault/game-library-backend/internal/domain/catalog"
	"github.com/gamevault/game-library-backend/internal/domain/library"
	"github.com/gamevault/game-library-backend/internal/domain/order"
	"github.com/gamevault/game-library-backend/internal/domain/review"
	"github.com/gamevault/game-library-backend/internal/domain/user"
	"github.com/gamevault/game-library-backend/internal/domain/wishlist"
	"github.com/gamevault/game-library-backend/internal/pkg/auth"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Migration handles schema migration and seeding
type Migration struct {
	db  *gorm.DB
	log logrus.FieldLogger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, log logrus.FieldLogger) *Migration {
	return &Migration{
		db:  db,
		log: log,
	}
}

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&user.User{},
		&catalog.Game{},
		&cart.CartItem{},
		&library.Entry{},
		&order.Order{},
		&order.OrderItem{},
		&achievement.Achievement{},
		&review.Review{},
		&wishlist.WishlistItem{},
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	m.log.Info("running database auto-migrations")

	for _, model := range Models() {
		m.log.Debugf("migrating model %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.log.Info("database auto-migrations completed")
	return nil
}

// CreateIndexes creates the composite indexes the struct tags cannot express.
// Failures are logged and counted, never fatal.
func (m *Migration) CreateIndexes() error {
	indexes := []string{
		// Order history and achievement facts
		"CREATE INDEX IF NOT EXISTS idx_orders_user_status ON orders(user_id, status)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order_position ON order_items(order_id, position)",

		"CREATE INDEX IF NOT EXISTS idx_library_entries_user_purchased ON library_entries(user_id, purchased_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_reviews_game_created ON reviews(game_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_games_genre_rating ON games(genre, rating DESC)",
	}

	successCount := 0
	failCount := 0

	for _, indexSQL := range indexes {
		if err := m.db.Exec(indexSQL).Error; err != nil {
			m.log.WithError(err).Warn("failed to create index")
			failCount++
		} else {
			successCount++
		}
	}

	m.log.WithFields(logrus.Fields{
		"created": successCount,
		"failed":  failCount,
	}).Info("additional indexes processed")
	return nil
}

// SeedInitialData ensures the admin account exists and fills an empty catalog.
// Every step is idempotent.
func (m *Migration) SeedInitialData(ctx context.Context, cfg *config.Config) error {
	passwords := auth.NewPasswordManager(cfg)

	if cfg.Admin.AutoCreate {
		if err := m.seedAdminUser(ctx, cfg.Admin, passwords); err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}
	}

	if cfg.IsDevelopment() {
		if err := m.seedTestUser(ctx, passwords); err != nil {
			return fmt.Errorf("failed to seed test user: %w", err)
		}
	}

	if cfg.Catalog.SeedOnStartup {
		if err := m.seedGames(ctx); err != nil {
			return fmt.Errorf("failed to seed games: %w", err)
		}
	}

	m.log.Info("initial data seeded")
	return nil
}

// seedAdminUser creates the configured admin, or promotes an existing account
// with that email to ADMIN.
func (m *Migration) seedAdminUser(ctx context.Context, admin config.AdminConfig, passwords *auth.PasswordManager) error {
	email := user.NormalizeEmail(admin.Email)
	db := m.db.WithContext(ctx)

	var existing user.User
	err := db.Where("email = ?", email).First(&existing).Error
	switch {
	case err == nil:
		if existing.Role != user.RoleAdmin {
			m.log.WithField("email", email).Warn("existing user is not ADMIN, promoting")
			if err := db.Model(&existing).Update("role", user.RoleAdmin).Error; err != nil {
				return err
			}
		}
		return nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	hash, err := passwords.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	u := user.User{
		Username: admin.Username,
		Email:    email,
		Password: hash,
		Role:     user.RoleAdmin,
	}
	if err := db.Create(&u).Error; err != nil {
		return err
	}

	m.log.WithFields(logrus.Fields{
		"user_id":  u.ID,
		"email":    u.Email,
		"username": u.Username,
	}).Info("admin user created")
	return nil
}

func (m *Migration) seedTestUser(ctx context.Context, passwords *auth.PasswordManager) error {
	db := m.db.WithContext(ctx)

	var count int64
	if err := db.Model(&user.User{}).Where("email = ?", "player@gamelibrary.com").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := passwords.HashPassword("player123")
	if err != nil {
		return err
	}
	u := user.User{
		Username: "player",
		Email:    "player@gamelibrary.com",
		Password: hash,
		Role:     user.RoleUser,
	}
	if err := db.Create(&u).Error; err != nil {
		return err
	}

	m.log.WithField("email", u.Email).Info("test user created")
	return nil
}

func (m *Migration) seedGames(ctx context.Context) error {
	games := catalog.NewRepository(m.db)

	count, err := games.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		m.log.WithField("games", count).Debug("catalog already populated, skipping seed")
		return nil
	}

	for i := range seedGames {
		g := seedGames[i]
		if err := games.Create(ctx, &g); err != nil {
			return fmt.Errorf("create %q: %w", g.Title, err)
		}
	}

	m.log.WithField("games", len(seedGames)).Info("catalog seeded")
	return nil
}

// GetTableInfo logs the row count of every table
func (m *Migration) GetTableInfo(ctx context.Context) error {
	tables, err := m.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return err
	}

	var total int64
	for _, table := range tables {
		var count int64
		if err := m.db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
			m.log.WithError(err).WithField("table", table).Warn("failed to count rows")
			continue
		}
		total += count
		m.log.WithFields(logrus.Fields{"table": table, "rows": count}).Info("table info")
	}

	m.log.WithFields(logrus.Fields{"tables": len(tables), "rows": total}).Info("database summary")
	return nil
}
