package database

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	migrationDedupeLikes = "2026-07-14_dedupe_likes_per_user_project"
	migrationDedupeVotes = "2026-07-14_dedupe_votes_per_poll_user"
)

type migrationRecord struct {
	Name             string `gorm:"column:name;primaryKey;size:190;not null"`
	AppliedAtSeconds int64  `gorm:"column:applied_at_s;not null"`
}

func (migrationRecord) TableName() string {
	return "db_migrations"
}

type migrationDefinition struct {
	name  string
	apply func(*gorm.DB) error
}

func applyMigrations(db *gorm.DB, logger *zap.Logger) error {
	migrations := []migrationDefinition{
		{name: migrationDedupeLikes, apply: dedupeLikes},
		{name: migrationDedupeVotes, apply: dedupeVotes},
	}

	for _, migration := range migrations {
		var record migrationRecord
		err := db.Where("name = ?", migration.name).Take(&record).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := migration.apply(db); err != nil {
			return err
		}
		appliedAt := time.Now().UTC().Unix()
		if err := db.Create(&migrationRecord{Name: migration.name, AppliedAtSeconds: appliedAt}).Error; err != nil {
			return err
		}
		if logger != nil {
			logger.Info("database migration applied", zap.String("migration", migration.name))
		}
	}
	return nil
}

// dedupeLikes keeps the oldest like per (user, project) so the unique index
// can be installed, and realigns each project's stored counter with the rows
// that survive.
func dedupeLikes(db *gorm.DB) error {
	if !db.Migrator().HasTable("likes") {
		return nil
	}
	if err := db.Exec(`DELETE FROM likes WHERE id NOT IN (
		SELECT MIN(id) FROM likes GROUP BY user_id, project_id
	);`).Error; err != nil {
		return err
	}
	if !db.Migrator().HasTable("projects") {
		return nil
	}
	return db.Exec(`UPDATE projects SET likes = (
		SELECT COUNT(*) FROM likes WHERE likes.project_id = projects.id
	);`).Error
}

// dedupeVotes keeps the oldest vote per (poll, user) so the unique index can
// be installed.
func dedupeVotes(db *gorm.DB) error {
	if !db.Migrator().HasTable("votes") {
		return nil
	}
	return db.Exec(`DELETE FROM votes WHERE id NOT IN (
		SELECT MIN(id) FROM votes GROUP BY poll_id, user_id
	);`).Error
}
