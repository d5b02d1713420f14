package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
)

type ReportRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReportRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReportRepo {
	return &ReportRepo{pool: pool, logger: logger}
}

// reportColumns is the select list shared by every report query; scanReport
// must stay in sync with it.
const reportColumns = `
	r.id, r.title, r.description, r.latitude, r.longitude, r.type_id,
	r.reported_at, r.expires_at, r.expired, r.visible, r.state,
	r.duplicate_count, r.created_at,
	t.id, t.title, t.icon_name, t.snippet, t.size, t.hide_after_zoom,
	t.lifetime_minutes, t.active, t.created_at`

const reportFrom = `
	FROM reports r
	JOIN report_types t ON t.id = r.type_id`

func scanReport(row pgx.Row) (*domain.Report, error) {
	var r domain.Report
	var t domain.ReportType
	err := row.Scan(
		&r.ID, &r.Title, &r.Description, &r.Latitude, &r.Longitude, &r.TypeID,
		&r.ReportedAt, &r.ExpiresAt, &r.Expired, &r.Visible, &r.State,
		&r.DuplicateCount, &r.CreatedAt,
		&t.ID, &t.Title, &t.IconName, &t.Snippet, &t.Size, &t.HideAfterZoom,
		&t.LifetimeMinutes, &t.Active, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Type = &t
	return &r, nil
}

func (p *ReportRepo) collect(ctx context.Context, op, query string, args ...any) ([]*domain.Report, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var reports []*domain.Report
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		reports = append(reports, r)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return reports, nil
}

func (p *ReportRepo) Create(ctx context.Context, report *domain.Report) error {
	const op = "postgres.Report.Create"

	const query = `
		INSERT INTO reports (id, title, description, latitude, longitude, type_id,
			reported_at, expires_at, expired, visible, state, duplicate_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if report.State == "" {
		report.State = domain.ReportActive
	}

	_, err := p.pool.Exec(ctx, query,
		report.ID,
		report.Title,
		report.Description,
		report.Latitude,
		report.Longitude,
		report.TypeID,
		report.ReportedAt,
		report.ExpiresAt,
		report.Expired,
		report.Visible,
		report.State,
		report.DuplicateCount,
		report.CreatedAt,
	)
	if err != nil {
		p.logger.Error("db exec failed",
			slog.String("op", op),
			slog.Any("error", err),
			slog.String("type_id", report.TypeID.String()),
		)
		return e.WrapError(ctx, op, err)
	}

	return nil
}

func (p *ReportRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	const op = "postgres.Report.GetByID"

	query := `SELECT` + reportColumns + reportFrom + ` WHERE r.id = $1`

	report, err := scanReport(p.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
		}
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err), slog.String("id", id.String()))
		return nil, e.WrapError(ctx, op, err)
	}

	return report, nil
}

func (p *ReportRepo) ListAll(ctx context.Context) ([]*domain.Report, error) {
	const op = "postgres.Report.ListAll"

	query := `SELECT` + reportColumns + reportFrom + ` ORDER BY r.created_at`

	return p.collect(ctx, op, query)
}

func (p *ReportRepo) ListActive(ctx context.Context, now time.Time) ([]*domain.Report, error) {
	const op = "postgres.Report.ListActive"

	query := `SELECT` + reportColumns + reportFrom + `
		WHERE r.visible = TRUE AND r.expired = FALSE AND r.expires_at > $1
		ORDER BY r.created_at`

	return p.collect(ctx, op, query, now)
}

// BulkMarkExpired transitions every not-yet-expired report whose window has
// closed and returns exactly the ids changed by this call. A single UPDATE
// with the expired=FALSE guard keeps the operation atomic and idempotent:
// a second invocation with nothing newly expired returns the empty set.
func (p *ReportRepo) BulkMarkExpired(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	const op = "postgres.Report.BulkMarkExpired"

	const query = `
		UPDATE reports
		SET expired = TRUE, visible = FALSE
		WHERE expires_at < $1 AND expired = FALSE
		RETURNING id
	`

	rows, err := p.pool.Query(ctx, query, before)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	ids := make([]uuid.UUID, 0, 8)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return ids, nil
}
