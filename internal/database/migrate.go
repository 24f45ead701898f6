package database

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/pageza/smartcanteen/backend/internal/logging"
	"github.com/pageza/smartcanteen/backend/internal/models"
)

// Models lists every persisted record, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.HealthProfile{},
		&models.ProfileHistory{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderItem{},
	}
}

// RunMigrations executes all SQL migration files in the migrations directory.
// SQLite databases are migrated with gorm's AutoMigrate instead.
func RunMigrations(db *gorm.DB, migrationsDir string) error {
	logger := logging.Component("migrate")

	if db.Dialector.Name() == "sqlite" {
		logger.Debug().Msg("using GORM auto-migration for SQLite")
		return db.AutoMigrate(Models()...)
	}

	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	// Sort files by name to ensure correct order
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	if err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`).Error; err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}

		var count int64
		if err := db.Table("migrations").Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			logger.Debug().Str("migration", name).Msg("skipping migration (already applied)")
			continue
		}

		content, err := os.ReadFile(filepath.Join(migrationsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec(string(content)).Error; err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
			if err := tx.Exec("INSERT INTO migrations (name) VALUES (?)", name).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", name, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		logger.Info().Str("migration", name).Msg("applied migration")
	}

	return nil
}
