package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartcanteen/backend/config"
	"github.com/pageza/smartcanteen/backend/internal/api"
	"github.com/pageza/smartcanteen/backend/internal/database"
	"github.com/pageza/smartcanteen/backend/internal/estimator"
	"github.com/pageza/smartcanteen/backend/internal/logging"
	"github.com/pageza/smartcanteen/backend/internal/middleware"
	"github.com/pageza/smartcanteen/backend/internal/recommend"
	"github.com/pageza/smartcanteen/backend/internal/server"
	"github.com/pageza/smartcanteen/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLogger := logging.Logger()
		bootLogger.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger := logging.Component("main")
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	scoring, err := config.LoadScoringConfig(cfg.ScoringConfigPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load scoring configuration")
	}

	sqlDB, err := database.New(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer sqlDB.Close()
	db, err := sqlDB.Gorm()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise gorm")
	}

	est, err := estimator.New(scoring.Estimator)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build estimator")
	}
	guard := estimator.NewGuard(est, scoring.Estimator, logging.Component("estimator"))
	engine := recommend.NewEngine(guard, scoring.Weights(), scoring.Alpha)
	composer := recommend.NewComposer(engine, scoring.Menu.Workers)

	profiles := service.NewProfileService(db, scoring)
	catalog := service.NewCatalogService(db)
	deps := api.Dependencies{
		Profiles:  profiles,
		Menu:      service.NewMenuService(profiles, catalog, composer),
		Orders:    service.NewOrderService(db),
		Analytics: service.NewAnalyticsService(db),
		Validator: middleware.NewJWTValidator(cfg.JWTSecret, cfg.JWTIssuer),
	}
	checks := map[string]server.HealthCheck{"database": sqlDB.HealthCheck}

	// Rate limiting is skipped when Redis is not configured or unreachable.
	if cfg.RedisEnabled() {
		redisClient, err := database.NewRedisClient(cfg)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, rate limiting disabled")
		} else {
			defer redisClient.Close()
			deps.RateLimiter = middleware.NewAPIRateLimiter(redisClient, cfg.RateLimitRequests, cfg.RateLimitWindow)
			deps.ChatLimiter = middleware.NewChatRateLimiter(redisClient)
			checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		}
	}

	srv := server.New(cfg, deps, checks)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("received signal")
	}

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown error")
		return
	}
	logger.Info().Msg("server stopped")
}
