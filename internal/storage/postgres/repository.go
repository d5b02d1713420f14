package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, report *domain.Report) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error)
	ListAll(ctx context.Context) ([]*domain.Report, error)
	ListActive(ctx context.Context, now time.Time) ([]*domain.Report, error)
	FindByBoundingBox(ctx context.Context, box domain.BoundingBox, onlyActive bool, now time.Time) ([]*domain.Report, error)
	FindByRadius(ctx context.Context, lat, lng, radiusKm float64, onlyActive bool, now time.Time) ([]*domain.Report, error)
	FindWithFilters(ctx context.Context, criteria domain.SearchCriteria, now time.Time) ([]*domain.Report, error)
	BulkMarkExpired(ctx context.Context, before time.Time) ([]uuid.UUID, error)
	Statistics(ctx context.Context, dateRange *domain.DateRange, now time.Time) (*domain.ReportStats, error)
}

type ReportTypeRepository interface {
	GetType(ctx context.Context, id uuid.UUID) (*domain.ReportType, error)
	ListActiveTypes(ctx context.Context) ([]*domain.ReportType, error)
	SeedDefaults(ctx context.Context) error
}

type CriticalPointRepository interface {
	List(ctx context.Context, filter domain.CriticalPointFilter) ([]*domain.CriticalPoint, error)
	FindByBoundingBox(ctx context.Context, box domain.BoundingBox) ([]*domain.CriticalPoint, error)
	FindByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.CriticalPoint, error)
	Statistics(ctx context.Context) (*domain.CriticalPointStats, error)
	SeedDefaults(ctx context.Context) error
}

func (p *Postgres) Reports() ReportRepository               { return p.ReportRepo }
func (p *Postgres) Types() ReportTypeRepository             { return p.TypeRepo }
func (p *Postgres) CriticalPoints() CriticalPointRepository { return p.CriticalRepo }
