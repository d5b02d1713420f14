package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
)

type ReportTypeRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReportTypeRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReportTypeRepo {
	return &ReportTypeRepo{pool: pool, logger: logger}
}

const typeColumns = `id, title, icon_name, snippet, size, hide_after_zoom, lifetime_minutes, active, created_at`

func scanType(row pgx.Row) (*domain.ReportType, error) {
	var t domain.ReportType
	err := row.Scan(&t.ID, &t.Title, &t.IconName, &t.Snippet, &t.Size,
		&t.HideAfterZoom, &t.LifetimeMinutes, &t.Active, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p *ReportTypeRepo) GetType(ctx context.Context, id uuid.UUID) (*domain.ReportType, error) {
	const op = "postgres.ReportType.GetType"

	query := `SELECT ` + typeColumns + ` FROM report_types WHERE id = $1`

	t, err := scanType(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrTypeNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return t, nil
}

func (p *ReportTypeRepo) ListActiveTypes(ctx context.Context) ([]*domain.ReportType, error) {
	const op = "postgres.ReportType.ListActiveTypes"

	query := `SELECT ` + typeColumns + ` FROM report_types WHERE active = TRUE ORDER BY title`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var types []*domain.ReportType
	for rows.Next() {
		t, err := scanType(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		types = append(types, t)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return types, nil
}

type seedType struct {
	title           string
	iconName        string
	snippet         string
	size            int
	hideAfterZoom   int
	lifetimeMinutes int
}

// defaultCatalog is the deployment seed set. Lifetimes range from 30
// minutes (Tráfico, Emergencia) to 30 days (Bache).
var defaultCatalog = []seedType{
	{"Fotomulta", "Fotomulta", "Hay una Fotomulta en la vía", 25, 11, 1440},
	{"Tráfico", "Trafico", "Hay Tráfico en la vía", 30, 12, 30},
	{"Choque", "Choque", "Hay un choque en la vía", 35, 11, 120},
	{"Alerta", "Alerta", "Estar Alerta en la vía", 28, 10, 60},
	{"Cierre de Vía", "Cierre", "Hay un cierre en la vía", 40, 12, 720},
	{"Obra en Vía", "Obra", "Hay una Obra en la vía", 35, 12, 10080},
	{"Policía de Tránsito", "Transito", "Hay oficiales de tránsito en la vía", 30, 11, 120},
	{"Bache", "Bache", "Hay un bache en la vía", 28, 13, 43200},
	{"Inundación", "Inundacion", "Hay inundación en la vía", 35, 11, 360},
	{"Vehículo Averiado", "Averia", "Hay un vehículo averiado en la vía", 30, 12, 60},
	{"Manifestación", "Manifestacion", "Hay una manifestación en la vía", 38, 11, 240},
	{"Derrumbe", "Derrumbe", "Hay un derrumbe en la vía", 40, 11, 1440},
	{"Retén Policial", "Reten", "Hay un retén policial en la vía", 32, 11, 180},
	{"Semáforo Dañado", "Semaforo", "Hay un semáforo dañado", 26, 12, 2880},
	{"Peligro", "Peligro", "Hay un peligro en la vía", 32, 10, 60},
	{"Evento Especial", "Evento", "Hay un evento que afecta el tráfico", 35, 11, 360},
	{"Baja Visibilidad", "Neblina", "Hay neblina o baja visibilidad", 30, 11, 120},
	{"Vía Resbaladiza", "Resbaladiza", "La vía está resbaladiza", 28, 12, 180},
	{"Congestión", "Congestion", "Hay congestión vehicular", 32, 12, 45},
	{"Emergencia", "Emergencia", "Hay una emergencia en la vía", 36, 10, 30},
}

// SeedDefaults inserts the catalog, skipping titles already present, so the
// bootstrap is safe to run on every start.
func (p *ReportTypeRepo) SeedDefaults(ctx context.Context) error {
	const op = "postgres.ReportType.SeedDefaults"

	const query = `
		INSERT INTO report_types (id, title, icon_name, snippet, size, hide_after_zoom, lifetime_minutes, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE)
		ON CONFLICT (title) DO NOTHING
	`

	for _, t := range defaultCatalog {
		_, err := p.pool.Exec(ctx, query,
			uuid.New(), t.title, t.iconName, t.snippet, t.size, t.hideAfterZoom, t.lifetimeMinutes)
		if err != nil {
			p.logger.Error("seed insert failed",
				slog.String("op", op),
				slog.Any("error", err),
				slog.String("title", t.title),
			)
			return e.WrapError(ctx, op, err)
		}
	}

	p.logger.Info("report type catalog seeded", slog.Int("types", len(defaultCatalog)))
	return nil
}
