package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// ReportStore is the persistence contract both the Postgres and the
// in-memory adapters satisfy. Spatial predicates may be evaluated
// server-side; the query service always re-annotates exact distances with
// pkg/geo afterwards.
type ReportStore interface {
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

type ReportTypeStore interface {
	GetType(ctx context.Context, id uuid.UUID) (*domain.ReportType, error)
	ListActiveTypes(ctx context.Context) ([]*domain.ReportType, error)
}

// CriticalPointStore is the read-only catalog of high-accident road
// sectors. Seeding happens at bootstrap; there are no runtime writes.
type CriticalPointStore interface {
	List(ctx context.Context, filter domain.CriticalPointFilter) ([]*domain.CriticalPoint, error)
	FindByBoundingBox(ctx context.Context, box domain.BoundingBox) ([]*domain.CriticalPoint, error)
	FindByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]*domain.CriticalPoint, error)
	Statistics(ctx context.Context) (*domain.CriticalPointStats, error)
}

// EventSink receives lifecycle events after the corresponding write has
// committed. Implementations must be best-effort: they cannot fail the
// triggering operation.
type EventSink interface {
	ReportCreated(ctx context.Context, report *domain.Report)
	ReportsExpired(ctx context.Context, ids []uuid.UUID)
}

// ActiveReportCache is the snapshot of active reports kept warm for the
// socket layer. A (nil, nil) read means miss.
type ActiveReportCache interface {
	GetActive(ctx context.Context) ([]*domain.Report, error)
	SetActive(ctx context.Context, reports []*domain.Report, ttl time.Duration) error
}

type ReportService interface {
	Submit(ctx context.Context, req domain.SubmitReportRequest) (*domain.Report, error)
	SweepExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error)
}

type QueryService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.ReportView, error)
	ListAll(ctx context.Context) ([]domain.ReportView, error)
	ListActive(ctx context.Context) ([]domain.ReportView, error)
	ByBoundingBox(ctx context.Context, box domain.BoundingBox, onlyActive bool) ([]domain.ReportView, error)
	ByRadius(ctx context.Context, lat, lng, radiusKm float64, onlyActive bool) ([]domain.ReportView, error)
	NearRoute(ctx context.Context, points []domain.RoutePoint, radiusKm float64, onlyActive bool) ([]domain.ReportView, error)
	WithFilters(ctx context.Context, criteria domain.SearchCriteria) ([]domain.ReportView, error)
	NearbyActive(ctx context.Context, lat, lng, radiusKm float64) ([]domain.ReportView, error)
	Statistics(ctx context.Context, dateRange *domain.DateRange) (*domain.ReportStats, error)
	ListTypes(ctx context.Context) ([]*domain.ReportType, error)
}

type CriticalPointService interface {
	List(ctx context.Context, filter domain.CriticalPointFilter) ([]domain.CriticalPointView, error)
	ByBoundingBox(ctx context.Context, box domain.BoundingBox) ([]domain.CriticalPointView, error)
	ByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]domain.CriticalPointView, error)
	Statistics(ctx context.Context) (*domain.CriticalPointStats, error)
}

type Service struct {
	ReportService  ReportService
	QueryService   QueryService
	CriticalPoints CriticalPointService
}

func NewService(reportService ReportService, queryService QueryService, criticalPoints CriticalPointService) *Service {
	return &Service{
		ReportService:  reportService,
		QueryService:   queryService,
		CriticalPoints: criticalPoints,
	}
}
