package dbtest

import (
	"testing"

	"nearvisit-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Open returns a migrated in-memory SQLite DB. The pool is pinned to one
// connection because every new ":memory:" connection is a fresh, empty database.
func Open(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}
