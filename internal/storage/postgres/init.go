package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YhonJ8a/TrafficBGA/internal/config"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
)

type Postgres struct {
	Pool         *pgxpool.Pool
	ReportRepo   *ReportRepo
	TypeRepo     *ReportTypeRepo
	CriticalRepo *CriticalPointRepo
}

func NewPostgres(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Postgres, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.SSLMode,
	)

	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("Failed to parse pgx config", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.ParseConfig", err)
	}
	poolCfg.MaxConns = cfg.Postgres.MaxConns
	poolCfg.MinConns = cfg.Postgres.MinConns
	poolCfg.MaxConnLifetime = cfg.Postgres.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		logger.Error("Failed to create pgx pool", slog.String("error", err.Error()))
		return nil, e.Wrap("storage.pg.NewPostgres.NewWithConfig", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Error("Failed to ping Postgres", slog.String("error", err.Error()))
		pool.Close()
		return nil, e.Wrap("storage.pg.NewPostgres.Ping", err)
	}
	logger.Info("Connected to Postgres successfully")

	return &Postgres{
		Pool:         pool,
		ReportRepo:   NewReportRepo(pool, logger),
		TypeRepo:     NewReportTypeRepo(pool, logger),
		CriticalRepo: NewCriticalPointRepo(pool, logger),
	}, nil
}

// Migrate creates the schema when it does not exist yet. Kept as plain DDL
// rather than a migration tool: two tables, one FK.
func (p *Postgres) Migrate(ctx context.Context) error {
	const op = "storage.pg.Migrate"

	_, err := p.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS report_types (
			id               uuid PRIMARY KEY,
			title            varchar(255) NOT NULL UNIQUE,
			icon_name        varchar(100) NOT NULL,
			snippet          text NOT NULL DEFAULT '',
			size             int NOT NULL,
			hide_after_zoom  int NOT NULL,
			lifetime_minutes int NOT NULL CHECK (lifetime_minutes > 0),
			active           boolean NOT NULL DEFAULT TRUE,
			created_at       timestamptz NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS reports (
			id              uuid PRIMARY KEY,
			title           varchar(255) NOT NULL,
			description     text NOT NULL DEFAULT '',
			latitude        double precision NOT NULL CHECK (latitude BETWEEN -90 AND 90),
			longitude       double precision NOT NULL CHECK (longitude BETWEEN -180 AND 180),
			type_id         uuid NOT NULL REFERENCES report_types(id) ON DELETE CASCADE,
			reported_at     timestamptz NOT NULL,
			expires_at      timestamptz NOT NULL,
			expired         boolean NOT NULL DEFAULT FALSE,
			visible         boolean NOT NULL DEFAULT TRUE,
			state           text NOT NULL DEFAULT 'active',
			duplicate_count int NOT NULL DEFAULT 0,
			created_at      timestamptz NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_reports_coords ON reports (latitude, longitude);
		CREATE INDEX IF NOT EXISTS idx_reports_expiry ON reports (expires_at) WHERE expired = FALSE;

		CREATE TABLE IF NOT EXISTS critical_points (
			id              uuid PRIMARY KEY,
			title           varchar(255) NOT NULL,
			description     text NOT NULL DEFAULT '',
			latitude        double precision NOT NULL CHECK (latitude BETWEEN -90 AND 90),
			longitude       double precision NOT NULL CHECK (longitude BETWEEN -180 AND 180),
			department      varchar(255) NOT NULL DEFAULT '',
			municipality    varchar(255) NOT NULL DEFAULT '',
			sector_class    varchar(255) NOT NULL DEFAULT '',
			code            varchar(255) NOT NULL DEFAULT '' UNIQUE,
			accident_count  int NOT NULL DEFAULT 0,
			deaths          int NOT NULL DEFAULT 0,
			injuries        int NOT NULL DEFAULT 0,
			year            varchar(50) NOT NULL DEFAULT '',
			address         text NOT NULL DEFAULT '',
			zone            varchar(100) NOT NULL DEFAULT '',
			danger_level    text NOT NULL DEFAULT 'medium',
			size            int NOT NULL DEFAULT 30,
			icon_name       varchar(100) NOT NULL DEFAULT 'PuntoCritico',
			hide_after_zoom int NOT NULL DEFAULT 9,
			active          boolean NOT NULL DEFAULT TRUE,
			visible         boolean NOT NULL DEFAULT TRUE,
			data_source     varchar(255) NOT NULL DEFAULT '',
			created_at      timestamptz NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_critical_points_coords ON critical_points (latitude, longitude);
		CREATE INDEX IF NOT EXISTS idx_critical_points_department ON critical_points (department, municipality);
	`)
	if err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}
