package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
)

// haversineExpr is the SQL mirror of geo.DistanceKm: same formula, same
// Earth radius, evaluated server-side so radius filtering scales with the
// table instead of the process. least() clamps acos input against float
// rounding at near-identical points.
const haversineExpr = `(6371 * acos(least(1.0,
	cos(radians(%[1]s)) * cos(radians(r.latitude)) *
	cos(radians(r.longitude) - radians(%[2]s)) +
	sin(radians(%[1]s)) * sin(radians(r.latitude)))))`

func (p *ReportRepo) FindByBoundingBox(ctx context.Context, box domain.BoundingBox, onlyActive bool, now time.Time) ([]*domain.Report, error) {
	const op = "postgres.Report.FindByBoundingBox"

	query := `SELECT` + reportColumns + reportFrom + `
		WHERE r.latitude BETWEEN $1 AND $2
		  AND r.longitude BETWEEN $3 AND $4
		  AND r.visible = TRUE`
	args := []any{box.LatMin, box.LatMax, box.LngMin, box.LngMax}

	if onlyActive {
		query += ` AND r.expires_at > $5 AND r.expired = FALSE`
		args = append(args, now)
	}
	query += ` ORDER BY r.created_at`

	return p.collect(ctx, op, query, args...)
}

func (p *ReportRepo) FindByRadius(ctx context.Context, lat, lng, radiusKm float64, onlyActive bool, now time.Time) ([]*domain.Report, error) {
	const op = "postgres.Report.FindByRadius"

	if radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidQuery)
	}

	distance := fmt.Sprintf(haversineExpr, "$1", "$2")
	query := `SELECT` + reportColumns + reportFrom + `
		WHERE r.visible = TRUE
		  AND ` + distance + ` <= $3`
	args := []any{lat, lng, radiusKm}

	if onlyActive {
		query += ` AND r.expires_at > $4 AND r.expired = FALSE`
		args = append(args, now)
	}
	query += ` ORDER BY r.created_at`

	return p.collect(ctx, op, query, args...)
}

// FindWithFilters builds the composite query. Distance ordering is applied
// by the query service after exact re-annotation; the store orders by the
// requested time column only.
func (p *ReportRepo) FindWithFilters(ctx context.Context, criteria domain.SearchCriteria, now time.Time) ([]*domain.Report, error) {
	const op = "postgres.Report.FindWithFilters"

	var (
		conds = []string{"r.visible = TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if criteria.BBox != nil {
		b := criteria.BBox
		conds = append(conds,
			fmt.Sprintf("r.latitude BETWEEN %s AND %s", arg(b.LatMin), arg(b.LatMax)),
			fmt.Sprintf("r.longitude BETWEEN %s AND %s", arg(b.LngMin), arg(b.LngMax)),
		)
	}
	if criteria.Center != nil && criteria.RadiusKm != nil {
		latArg := arg(criteria.Center.Latitude)
		lngArg := arg(criteria.Center.Longitude)
		conds = append(conds, fmt.Sprintf(haversineExpr+" <= %[3]s", latArg, lngArg, arg(*criteria.RadiusKm)))
	}
	if len(criteria.TypeIDs) > 0 {
		conds = append(conds, fmt.Sprintf("r.type_id = ANY(%s)", arg(criteria.TypeIDs)))
	}
	if criteria.ReportedFrom != nil {
		conds = append(conds, fmt.Sprintf("r.reported_at >= %s", arg(*criteria.ReportedFrom)))
	}
	if criteria.ReportedTo != nil {
		conds = append(conds, fmt.Sprintf("r.reported_at <= %s", arg(*criteria.ReportedTo)))
	}
	if len(criteria.States) > 0 {
		states := make([]string, len(criteria.States))
		for i, s := range criteria.States {
			states[i] = string(s)
		}
		conds = append(conds, fmt.Sprintf("r.state = ANY(%s)", arg(states)))
	}
	if criteria.OnlyActive {
		conds = append(conds, fmt.Sprintf("r.expires_at > %s", arg(now)), "r.expired = FALSE")
	}

	orderCol := "r.created_at"
	switch criteria.OrderBy {
	case domain.OrderByReported:
		orderCol = "r.reported_at"
	case domain.OrderByExpires:
		orderCol = "r.expires_at"
	}
	direction := "ASC"
	if criteria.Descending && criteria.OrderBy != domain.OrderByDistance {
		direction = "DESC"
	}

	query := `SELECT` + reportColumns + reportFrom + `
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY ` + orderCol + ` ` + direction

	return p.collect(ctx, op, query, args...)
}

func (p *ReportRepo) Statistics(ctx context.Context, dateRange *domain.DateRange, now time.Time) (*domain.ReportStats, error) {
	const op = "postgres.Report.Statistics"

	totalQuery := `SELECT COUNT(*) FROM reports r WHERE r.visible = TRUE`
	totalArgs := []any{}
	if dateRange != nil {
		totalQuery += ` AND r.reported_at BETWEEN $1 AND $2`
		totalArgs = append(totalArgs, dateRange.From, dateRange.To)
	}

	var stats domain.ReportStats
	if err := p.pool.QueryRow(ctx, totalQuery, totalArgs...).Scan(&stats.TotalVisible); err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	byTypeQuery := `
		SELECT t.id, t.title,
			COUNT(r.id),
			COUNT(r.id) FILTER (WHERE r.expired = FALSE AND r.visible = TRUE AND r.expires_at > $1),
			COUNT(r.id) FILTER (WHERE r.expired = TRUE OR r.state <> 'active')
		FROM report_types t
		LEFT JOIN reports r ON r.type_id = t.id`
	byTypeArgs := []any{now}
	if dateRange != nil {
		byTypeQuery += ` AND r.reported_at BETWEEN $2 AND $3`
		byTypeArgs = append(byTypeArgs, dateRange.From, dateRange.To)
	}
	byTypeQuery += `
		WHERE t.active = TRUE
		GROUP BY t.id, t.title
		ORDER BY t.title`

	rows, err := p.pool.Query(ctx, byTypeQuery, byTypeArgs...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts domain.TypeStats
		if err := rows.Scan(&ts.TypeID, &ts.Title, &ts.Total, &ts.ActiveCount, &ts.ResolvedCount); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		stats.ByType = append(stats.ByType, ts)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return &stats, nil
}
