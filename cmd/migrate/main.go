package main

import (
	"database/sql"
	"flag"
	"os"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/database"
	"github.com/pageza/smartcanteen/backend/internal/logging"
)

func main() {
	migrationsDir := flag.String("dir", "migrations", "directory holding the .sql migrations")
	flag.Parse()

	logger := logging.Component("migrate")

	sqlDB, err := open()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise gorm")
	}

	if err := database.RunMigrations(db, *migrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("migration failed")
	}
	logger.Info().Str("dir", *migrationsDir).Msg("all migrations applied successfully")
}

// open prefers DATABASE_URL and falls back to the application configuration.
func open() (*sql.DB, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		if err := db.Ping(); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}
	return db.DB, nil
}
