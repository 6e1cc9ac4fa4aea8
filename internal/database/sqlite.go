package database

import (
	"fmt"

	"github.com/campustech/clubhub/backend/internal/model"
	sqlite "github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenSQLite establishes a SQLite connection and performs schema migrations.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the like and vote paths rely on.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db, logger); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("database initialized", zap.String("path", path))
	}

	return db, nil
}

// Migrate applies the schema and the named data migrations to an open handle.
// Data repairs run before AutoMigrate so that the composite unique indexes on
// likes and votes can be created on databases that predate them.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(&migrationRecord{}); err != nil {
		return err
	}

	if err := applyMigrations(db, logger); err != nil {
		return err
	}

	return db.AutoMigrate(
		&model.User{},
		&model.Event{},
		&model.Project{},
		&model.Like{},
		&model.Resource{},
		&model.Poll{},
		&model.PollOption{},
		&model.Vote{},
	)
}
