// database/bootstrap.go
package database

import (
	"fmt"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sparc/entities"
	"sparc/pkg/task"
)

// OpenSQLite opens the store at path and brings the schema up to date.
func OpenSQLite(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:  logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	// SQLite has a single writer
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate and the data migrations.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&entities.TimeEntry{},
		&entities.User{},
		&entities.UserProfile{},
		&entities.AdditionalSurvey{},
		&entities.BurnoutResponse{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if err := migrateLegacyTaskCodes(db); err != nil {
		return fmt.Errorf("migrate task codes: %w", err)
	}
	return nil
}

// migrateLegacyTaskCodes rewrites short task codes written by older clients
// to the canonical task names. Soft-deleted rows are rewritten too.
func migrateLegacyTaskCodes(db *gorm.DB) error {
	var codes []string
	if err := db.Unscoped().Model(&entities.TimeEntry{}).Distinct().Pluck("task", &codes).Error; err != nil {
		return fmt.Errorf("distinct tasks: %w", err)
	}

	rewrite := map[string]string{}
	for _, c := range codes {
		if task.Valid(c) {
			continue
		}
		if canon, ok := task.Parse(c); ok {
			rewrite[c] = canon
		}
	}
	if len(rewrite) == 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for from, to := range rewrite {
			if err := tx.Unscoped().Model(&entities.TimeEntry{}).
				Where("task = ?", from).
				UpdateColumn("task", to).Error; err != nil {
				return fmt.Errorf("rewrite %q: %w", from, err)
			}
		}
		return nil
	})
}
