package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/vitalsync/healthmon-api/internal/config"
	"github.com/vitalsync/healthmon-api/internal/repository/postgres"
	reminderService "github.com/vitalsync/healthmon-api/internal/service/reminder"
	"github.com/vitalsync/healthmon-api/internal/worker"
	"github.com/vitalsync/healthmon-api/pkg/logger"
	messagingRedis "github.com/vitalsync/healthmon-api/pkg/messaging/redis"
	"github.com/vitalsync/healthmon-api/pkg/metrics"
)

type workerConfig struct {
	DatabaseHost     string        `envconfig:"DB_HOST" default:"localhost"`
	DatabasePort     int           `envconfig:"DB_PORT" default:"5432"`
	DatabaseUser     string        `envconfig:"DB_USER" default:"healthmon"`
	DatabasePassword string        `envconfig:"DB_PASSWORD" default:"healthmon"`
	DatabaseName     string        `envconfig:"DB_NAME" default:"healthmon"`
	DatabaseSSLMode  string        `envconfig:"DB_SSLMODE" default:"disable"`
	RedisURL         string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	ScanInterval     time.Duration `envconfig:"SCAN_INTERVAL" default:"1h"`
	MetricsAddr      string        `envconfig:"METRICS_ADDR" default:":9090"`
}

func main() {
	workerLogger := logger.NewLogger(&logger.Config{
		Level:      logger.InfoLevel,
		TimeFormat: time.RFC3339,
	})
	log.Logger = *workerLogger.Zerolog()

	var cfg workerConfig
	if err := envconfig.Process("WORKER", &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to process worker config")
	}

	db, err := postgres.NewDB(config.DatabaseConfig{
		Host:     cfg.DatabaseHost,
		Port:     cfg.DatabasePort,
		User:     cfg.DatabaseUser,
		Password: cfg.DatabasePassword,
		Name:     cfg.DatabaseName,
		SSLMode:  cfg.DatabaseSSLMode,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := messagingRedis.NewRedisBroker(messagingRedis.Config{
		URL:          cfg.RedisURL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     5,
		MinIdleConns: 1,
	}, &log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	accountRepo := postgres.NewAccountRepository(db)
	reminderRepo := postgres.NewReminderRepository(db)
	reminderSvc := reminderService.NewService(reminderRepo, accountRepo)

	m := metrics.NewMetrics("healthmon_worker")
	scanner := worker.NewReminderScanner(accountRepo, reminderSvc, broker, m, cfg.ScanInterval)

	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, nil); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go scanner.Run(ctx)

	log.Info().Dur("interval", cfg.ScanInterval).Msg("reminder scan worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()
}
