package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/vitalsync/healthmon-api/internal/config"
	"github.com/vitalsync/healthmon-api/internal/email"
	"github.com/vitalsync/healthmon-api/internal/handler"
	accountHandler "github.com/vitalsync/healthmon-api/internal/handler/account"
	authHandler "github.com/vitalsync/healthmon-api/internal/handler/auth"
	careHandler "github.com/vitalsync/healthmon-api/internal/handler/care"
	metricHandler "github.com/vitalsync/healthmon-api/internal/handler/metric"
	recommendationHandler "github.com/vitalsync/healthmon-api/internal/handler/recommendation"
	reminderHandler "github.com/vitalsync/healthmon-api/internal/handler/reminder"
	"github.com/vitalsync/healthmon-api/internal/middleware"
	"github.com/vitalsync/healthmon-api/internal/repository/postgres"
	"github.com/vitalsync/healthmon-api/internal/router"
	accountService "github.com/vitalsync/healthmon-api/internal/service/account"
	authService "github.com/vitalsync/healthmon-api/internal/service/auth"
	careService "github.com/vitalsync/healthmon-api/internal/service/care"
	metricService "github.com/vitalsync/healthmon-api/internal/service/metric"
	recommendationService "github.com/vitalsync/healthmon-api/internal/service/recommendation"
	reminderService "github.com/vitalsync/healthmon-api/internal/service/reminder"
	"github.com/vitalsync/healthmon-api/pkg/auth"
	"github.com/vitalsync/healthmon-api/pkg/logger"
	"github.com/vitalsync/healthmon-api/pkg/messaging"
	"github.com/vitalsync/healthmon-api/pkg/metrics"
	messagingRedis "github.com/vitalsync/healthmon-api/pkg/messaging/redis"
	"github.com/vitalsync/healthmon-api/pkg/security"
)

func main() {
	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
	})
	log.Logger = *appLogger.Zerolog()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	accountRepo := postgres.NewAccountRepository(db)
	metricRepo := postgres.NewMetricRepository(db)
	recommendationRepo := postgres.NewRecommendationRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	careRepo := postgres.NewCareRepository(db)

	// Optional broker; the services degrade to no events without it.
	var broker messaging.Broker
	if cfg.Redis.Enabled {
		broker, err = messagingRedis.NewRedisBroker(messagingRedis.Config{
			URL:          cfg.Redis.URL,
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
			PoolSize:     10,
			MinIdleConns: 2,
		}, &log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer broker.Close()
	}

	var emailSvc email.Service = email.NoopService{}
	if cfg.SMTP.Enabled {
		emailSvc = email.NewSMTPService(email.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	appMetrics := metrics.NewMetrics("healthmon_api")

	hasher := security.NewBcryptHasher(security.DefaultCost)
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:             cfg.JWT.Secret,
		RefreshSecret:      cfg.JWT.RefreshSecret,
		ExpiryHours:        cfg.JWT.ExpiryHours,
		RefreshExpiryHours: cfg.JWT.RefreshExpiryHours,
	})

	// Services
	accountSvc := accountService.NewService(accountRepo, hasher, emailSvc)
	authSvc := authService.NewService(accountRepo, jwtSvc, hasher, cfg.JWT.ExpiryHours)
	metricSvc := metricService.NewService(metricRepo, accountRepo)
	recommendationSvc := recommendationService.NewService(recommendationRepo, broker, appMetrics)
	reminderSvc := reminderService.NewService(reminderRepo, accountRepo)
	careSvc := careService.NewService(careRepo, accountRepo, metricRepo, broker, appMetrics)
	accountSvc.OnAccountChanged(careSvc.InvalidateClinician)

	// Handlers
	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	accountH := accountHandler.NewHandler(accountSvc)
	metricH := metricHandler.NewHandler(metricSvc)
	recommendationH := recommendationHandler.NewHandler(recommendationSvc, metricSvc)
	reminderH := reminderHandler.NewHandler(reminderSvc)
	careH := careHandler.NewHandler(careSvc)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		accountH,
		metricH,
		recommendationH,
		reminderH,
		careH,
		h,
		router.Config{
			RateLimitRPS:   cfg.Server.RateLimitRPS,
			RateLimitBurst: cfg.Server.RateLimitBurst,
			CORSConfig:     middleware.DefaultCORSConfig(),
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
