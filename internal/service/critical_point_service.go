package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
	"github.com/YhonJ8a/TrafficBGA/pkg/geo"
)

type criticalPointService struct {
	store  CriticalPointStore
	logger *slog.Logger
}

func NewCriticalPointService(store CriticalPointStore, logger *slog.Logger) CriticalPointService {
	return &criticalPointService{store: store, logger: logger}
}

func (s *criticalPointService) List(ctx context.Context, filter domain.CriticalPointFilter) ([]domain.CriticalPointView, error) {
	points, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return asViews(points), nil
}

func (s *criticalPointService) ByBoundingBox(ctx context.Context, box domain.BoundingBox) ([]domain.CriticalPointView, error) {
	points, err := s.store.FindByBoundingBox(ctx, box)
	if err != nil {
		return nil, err
	}
	return asViews(points), nil
}

// ByRadius re-checks every candidate against the canonical distance before
// annotating, same discipline as report radius queries. Unlike the catalog
// listings the result is ordered by proximity, nearest sector first.
func (s *criticalPointService) ByRadius(ctx context.Context, lat, lng, radiusKm float64) ([]domain.CriticalPointView, error) {
	const op = "service.CriticalPoint.ByRadius"

	if !geo.ValidCoordinates(lat, lng) {
		return nil, e.Wrap(op, e.ErrInvalidCoordinates)
	}

	points, err := s.store.FindByRadius(ctx, lat, lng, radiusKm)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CriticalPointView, 0, len(points))
	for _, p := range points {
		d := geo.DistanceKm(lat, lng, p.Latitude, p.Longitude)
		if d > radiusKm {
			continue
		}
		dist := d
		views = append(views, domain.CriticalPointView{CriticalPoint: *p, DistanceKm: &dist})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return *views[i].DistanceKm < *views[j].DistanceKm
	})
	return views, nil
}

func (s *criticalPointService) Statistics(ctx context.Context) (*domain.CriticalPointStats, error) {
	return s.store.Statistics(ctx)
}

func asViews(points []*domain.CriticalPoint) []domain.CriticalPointView {
	views := make([]domain.CriticalPointView, 0, len(points))
	for _, p := range points {
		views = append(views, domain.CriticalPointView{CriticalPoint: *p})
	}
	return views
}
