package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/YhonJ8a/TrafficBGA/internal/api"
	"github.com/YhonJ8a/TrafficBGA/internal/config"
	"github.com/YhonJ8a/TrafficBGA/internal/service"
	"github.com/YhonJ8a/TrafficBGA/internal/storage/postgres"
	"github.com/YhonJ8a/TrafficBGA/internal/storage/redis"
	"github.com/YhonJ8a/TrafficBGA/internal/workers"
	"github.com/YhonJ8a/TrafficBGA/internal/ws"
	"github.com/YhonJ8a/TrafficBGA/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres
	Redis      *redis.Redis
	Hub        *ws.Hub
	Sweeper    *workers.Sweeper
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	logger.Info("Initializing Postgres")
	storage, err := postgres.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to init postgres", slog.Any("error", err))
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	if err := storage.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := storage.TypeRepo.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed report types: %w", err)
	}
	if err := storage.CriticalRepo.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("failed to seed critical points: %w", err)
	}

	logger.Info("Initializing Redis")
	redisClient, err := redis.NewRedis(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init redis: %w", err)
	}
	reportCache := redis.NewReportCache(redisClient)

	registry := ws.NewRegistry()

	querySvc := service.NewQueryService(
		storage.ReportRepo,
		storage.TypeRepo,
		reportCache,
		logger,
		cfg.Redis.ActiveTTL,
	)

	hub := ws.NewHub(logger, registry, querySvc, cfg.Socket.DefaultRadiusKm, cfg.Socket.WriteTimeout, cfg.Socket.QueryTimeout)
	notifier := ws.NewNotifier(hub, registry, logger)

	reportSvc := service.NewReportService(
		storage.ReportRepo,
		storage.TypeRepo,
		reportCache,
		notifier,
		logger,
		cfg.Redis.ActiveTTL,
	)

	criticalSvc := service.NewCriticalPointService(storage.CriticalRepo, logger)

	svc := service.NewService(reportSvc, querySvc, criticalSvc)

	sweeper := workers.NewSweeper(reportSvc, cfg.Sweep.Interval, logger)

	httpServer := api.NewServer(cfg, logger, svc, hub)
	logger.Info("Initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   storage,
		Redis:      redisClient,
		Hub:        hub,
		Sweeper:    sweeper,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Shutting down components")

	c.Postgres.Pool.Close()
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
