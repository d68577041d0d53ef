// Package testdb opens throwaway gorm databases for package tests.
package testdb

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a gorm handle over a fresh sqlite file in t.TempDir with the
// given models migrated. A single connection is used so that concurrent
// transactions queue the same way row locks serialize them on postgres.
func Open(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...))
	}
	return db
}
