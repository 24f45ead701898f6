package main

import (
	"context"
	"flag"
	"time"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/database"
	"github.com/pageza/smartcanteen/backend/internal/logging"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/service"
)

func main() {
	fromS3 := flag.Bool("s3", false, "import the catalog from the configured S3 object instead of the built-in menu")
	export := flag.Bool("export", false, "upload the stored catalog to the configured S3 object")
	flag.Parse()

	logger := logging.Component("seed_catalog")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	sqlDB, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer sqlDB.Close()
	db, err := sqlDB.Gorm()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise gorm")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	catalog := service.NewCatalogService(db)

	if *fromS3 || *export {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure S3")
		}
		if *export {
			if err := catalog.ExportToS3(ctx, s3cfg.Client, s3cfg.BucketName, s3cfg.ObjectKey); err != nil {
				logger.Fatal().Err(err).Msg("catalog export failed")
			}
			logger.Info().Str("bucket", s3cfg.BucketName).Str("key", s3cfg.ObjectKey).Msg("catalog exported")
			return
		}
		n, err := catalog.ImportFromS3(ctx, s3cfg.Client, s3cfg.BucketName, s3cfg.ObjectKey)
		if err != nil {
			logger.Fatal().Err(err).Msg("catalog import failed")
		}
		logger.Info().Int("items", n).Msg("catalog seeded from S3")
		return
	}

	n, err := catalog.Import(ctx, recommend.DefaultCatalog())
	if err != nil {
		logger.Fatal().Err(err).Msg("catalog import failed")
	}
	logger.Info().Int("items", n).Msg("catalog seeded")
}
