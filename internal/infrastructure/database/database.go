package database

import (
	"strings"
	"time"

	"nearvisit-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Options tunes the connection pool.
type Options struct {
	MaxOpenConns int
}

// Open opens a GORM DB from DSN. postgres:// and postgresql:// URLs use the
// Postgres driver; anything else is treated as a SQLite file path.
// PreferSimpleProtocol disables prepared statement caching to avoid 42P05
// ("prepared statement already exists") when using connection poolers (e.g. PgBouncer).
func Open(dsn string, opts Options) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if isPostgres(dsn) {
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	} else {
		dialector = sqlite.Open(dsn)
	}
	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
		sqlDB.SetMaxIdleConns(opts.MaxOpenConns)
	}
	return db, nil
}

// GormConfig is shared by Open and tests. References between entities are
// plain columns: no foreign-key constraints, so deleting a parent orphans its
// children instead of failing. GORM logs go through zerolog at warn level;
// lookups that miss are not logged.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger: logger.New(zerologWriter{}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	}
}

// zerologWriter emits GORM's slow query and error lines as zerolog warnings.
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...interface{}) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// AutoMigrate runs migrations for every directory model.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.State{},
		&domain.City{},
		&domain.Category{},
		&domain.Subcategory{},
		&domain.Listing{},
		&domain.Review{},
	)
}

// Close releases the underlying pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
