package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
)

type CriticalPointRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewCriticalPointRepo(pool *pgxpool.Pool, logger *slog.Logger) *CriticalPointRepo {
	return &CriticalPointRepo{pool: pool, logger: logger}
}

// The r alias keeps haversineExpr usable against this table too.
const criticalPointColumns = `
	r.id, r.title, r.description, r.latitude, r.longitude,
	r.department, r.municipality, r.sector_class, r.code,
	r.accident_count, r.deaths, r.injuries, r.year, r.address, r.zone,
	r.danger_level, r.size, r.icon_name, r.hide_after_zoom,
	r.active, r.visible, r.data_source, r.created_at`

const criticalPointFrom = `
	FROM critical_points r`

func scanCriticalPoint(row pgx.Row) (*domain.CriticalPoint, error) {
	var p domain.CriticalPoint
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Latitude, &p.Longitude,
		&p.Department, &p.Municipality, &p.SectorClass, &p.Code,
		&p.AccidentCount, &p.Deaths, &p.Injuries, &p.Year, &p.Address, &p.Zone,
		&p.DangerLevel, &p.Size, &p.IconName, &p.HideAfterZoom,
		&p.Active, &p.Visible, &p.DataSource, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *CriticalPointRepo) collect(ctx context.Context, op, query string, args ...any) ([]*domain.CriticalPoint, error) {
	rows, err := p.pool.Query(ctx, query, args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	var points []*domain.CriticalPoint
	for rows.Next() {
		cp, err := scanCriticalPoint(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		points = append(points, cp)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return points, nil
}

// List returns the active catalog ordered by accident count, most dangerous
// sectors first.
func (p *CriticalPointRepo) List(ctx context.Context, filter domain.CriticalPointFilter) ([]*domain.CriticalPoint, error) {
	const op = "postgres.CriticalPoint.List"

	var (
		conds = []string{"r.active = TRUE"}
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Department != "" {
		conds = append(conds, fmt.Sprintf("r.department = %s", arg(filter.Department)))
	}
	if filter.Municipality != "" {
		conds = append(conds, fmt.Sprintf("r.municipality = %s", arg(filter.Municipality)))
	}
	if len(filter.DangerLevels) > 0 {
		levels := make([]string, len(filter.DangerLevels))
		for i, l := range filter.DangerLevels {
			levels[i] = string(l)
		}
		conds = append(conds, fmt.Sprintf("r.danger_level = ANY(%s)", arg(levels)))
	}
	if filter.Visible != nil {
		conds = append(conds, fmt.Sprintf("r.visible = %s", arg(*filter.Visible)))
	}

	query := `SELECT` + criticalPointColumns + criticalPointFrom + `
		WHERE ` + strings.Join(conds, " AND ") + `
		ORDER BY r.accident_count DESC`

	return p.collect(ctx, op, query, args...)
}

func (p *CriticalPointRepo) FindByBoundingBox(ctx context.Context, box domain.BoundingBox) ([]*domain.CriticalPoint, error) {
	const op = "postgres.CriticalPoint.FindByBoundingBox"

	query := `SELECT` + criticalPointColumns + criticalPointFrom + `
		WHERE r.latitude BETWEEN $1 AND $2
		  AND r.longitude BETWEEN $3 AND $4
		  AND r.active = TRUE AND r.visible = TRUE
		ORDER BY r.accident_count DESC`

	return p.collect(ctx, op, query, box.LatMin, box.LatMax, box.LngMin, box.LngMax)
}

func (p *CriticalPointRepo) FindByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.CriticalPoint, error) {
	const op = "postgres.CriticalPoint.FindByRadius"

	if radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidQuery)
	}

	distance := fmt.Sprintf(haversineExpr, "$1", "$2")
	query := `SELECT` + criticalPointColumns + criticalPointFrom + `
		WHERE r.active = TRUE AND r.visible = TRUE
		  AND ` + distance + ` <= $3
		ORDER BY r.accident_count DESC`

	return p.collect(ctx, op, query, lat, lng, radiusKm)
}

func (p *CriticalPointRepo) Statistics(ctx context.Context) (*domain.CriticalPointStats, error) {
	const op = "postgres.CriticalPoint.Statistics"

	var stats domain.CriticalPointStats
	err := p.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM critical_points r WHERE r.active = TRUE`,
	).Scan(&stats.Total)
	if err != nil {
		p.logger.Error("db queryrow scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	rows, err := p.pool.Query(ctx, `
		SELECT r.danger_level, COUNT(*),
			COALESCE(SUM(r.accident_count), 0),
			COALESCE(SUM(r.deaths), 0),
			COALESCE(SUM(r.injuries), 0)
		FROM critical_points r
		WHERE r.active = TRUE
		GROUP BY r.danger_level
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var ls domain.DangerLevelStats
		if err := rows.Scan(&ls.Level, &ls.Count, &ls.TotalAccidents, &ls.TotalDeaths, &ls.TotalInjuries); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		stats.ByLevel = append(stats.ByLevel, ls)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	deptRows, err := p.pool.Query(ctx, `
		SELECT r.department, COUNT(*)
		FROM critical_points r
		WHERE r.active = TRUE AND r.department <> ''
		GROUP BY r.department
		ORDER BY COUNT(*) DESC
		LIMIT 10`)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer deptRows.Close()

	for deptRows.Next() {
		var dc domain.DepartmentCount
		if err := deptRows.Scan(&dc.Department, &dc.Count); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		stats.ByDepartment = append(stats.ByDepartment, dc)
	}
	if err := deptRows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}

	return &stats, nil
}

type seedCriticalPoint struct {
	title        string
	lat, lng     float64
	department   string
	municipality string
	sectorClass  string
	code         string
	accidents    int
	deaths       int
	injuries     int
	year         string
	address      string
	zone         string
	level        domain.DangerLevel
}

// criticalPointCatalog is the bundled extract of the national road-safety
// registry for the Bucaramanga metropolitan area. Keyed by registry code so
// re-seeding never duplicates rows; a registry refresh replaces this table.
var criticalPointCatalog = []seedCriticalPoint{
	{"Intercambiador Mesón de los Búcaros", 7.11672, -73.11835, "Santander", "Bucaramanga", "Vía urbana", "SAN-BGA-001", 64, 5, 88, "2023", "Av. Quebradaseca con Cra. 15", "urbana", domain.DangerVeryHigh},
	{"Puerta del Sol", 7.10639, -73.11361, "Santander", "Bucaramanga", "Vía urbana", "SAN-BGA-002", 57, 3, 71, "2023", "Autopista a Floridablanca con Cra. 27", "urbana", domain.DangerVeryHigh},
	{"Viaducto La Flora", 7.09854, -73.10422, "Santander", "Bucaramanga", "Vía urbana", "SAN-BGA-003", 41, 4, 52, "2023", "Autopista a Floridablanca, sector La Flora", "urbana", domain.DangerHigh},
	{"Glorieta Cañaveral", 7.06528, -73.10556, "Santander", "Floridablanca", "Vía urbana", "SAN-FLB-001", 38, 2, 49, "2023", "Autopista a Floridablanca, Cañaveral", "urbana", domain.DangerHigh},
	{"Anillo Vial Floridablanca - Girón", 7.07211, -73.14890, "Santander", "Girón", "Vía intermunicipal", "SAN-GIR-001", 33, 6, 40, "2023", "Anillo Vial, km 4", "rural", domain.DangerHigh},
	{"Café Madrid", 7.15433, -73.12706, "Santander", "Bucaramanga", "Vía urbana", "SAN-BGA-004", 26, 2, 31, "2023", "Vía Café Madrid, sector norte", "urbana", domain.DangerMedium},
	{"Vía Bucaramanga - Cuesta Rica", 7.16890, -73.10244, "Santander", "Bucaramanga", "Vía nacional", "SAN-BGA-005", 22, 4, 25, "2023", "Ruta 45A, km 8", "rural", domain.DangerMedium},
	{"Papi Quiero Piña", 7.06294, -73.08511, "Santander", "Floridablanca", "Vía urbana", "SAN-FLB-002", 19, 1, 27, "2023", "Transversal Oriental con Calle 30", "urbana", domain.DangerMedium},
	{"Vía Girón - Zona Industrial", 7.06833, -73.16972, "Santander", "Girón", "Vía urbana", "SAN-GIR-002", 14, 1, 16, "2023", "Vía Chimitá, zona industrial", "urbana", domain.DangerLow},
	{"Vía Piedecuesta - Guatiguará", 6.98111, -73.06250, "Santander", "Piedecuesta", "Vía intermunicipal", "SAN-PIE-001", 11, 2, 12, "2023", "Vía Guatiguará, km 2", "rural", domain.DangerLow},
}

// SeedDefaults loads the bundled catalog, skipping codes already present,
// so the bootstrap is safe to run on every start.
func (p *CriticalPointRepo) SeedDefaults(ctx context.Context) error {
	const op = "postgres.CriticalPoint.SeedDefaults"

	const query = `
		INSERT INTO critical_points (id, title, description, latitude, longitude,
			department, municipality, sector_class, code,
			accident_count, deaths, injuries, year, address, zone,
			danger_level, size, icon_name, hide_after_zoom, active, visible, data_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, 'PuntoCritico', 9, TRUE, TRUE, $18)
		ON CONFLICT (code) DO NOTHING
	`

	for _, cp := range criticalPointCatalog {
		description := fmt.Sprintf("Punto crítico de accidentalidad: %d accidentes registrados (%s)", cp.accidents, cp.year)
		_, err := p.pool.Exec(ctx, query,
			uuid.New(), cp.title, description, cp.lat, cp.lng,
			cp.department, cp.municipality, cp.sectorClass, cp.code,
			cp.accidents, cp.deaths, cp.injuries, cp.year, cp.address, cp.zone,
			cp.level, cp.level.MarkerSize(), "registro-nacional-2023",
		)
		if err != nil {
			p.logger.Error("seed insert failed",
				slog.String("op", op),
				slog.Any("error", err),
				slog.String("code", cp.code),
			)
			return e.WrapError(ctx, op, err)
		}
	}

	p.logger.Info("critical point catalog seeded", slog.Int("points", len(criticalPointCatalog)))
	return nil
}
