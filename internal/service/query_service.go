package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/geo"
)

// DefaultRouteRadiusKm is the corridor width around each route point when
// the caller does not specify one.
const DefaultRouteRadiusKm = 2.0

type queryService struct {
	store    ReportStore
	types    ReportTypeStore
	cache    ActiveReportCache
	logger   *slog.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

func NewQueryService(
	store ReportStore,
	types ReportTypeStore,
	cache ActiveReportCache,
	logger *slog.Logger,
	cacheTTL time.Duration,
) QueryService {
	return &queryService{
		store:    store,
		types:    types,
		cache:    cache,
		logger:   logger,
		now:      time.Now,
		cacheTTL: cacheTTL,
	}
}

// NewQueryServiceWithClock injects the time source for tests.
func NewQueryServiceWithClock(
	store ReportStore,
	types ReportTypeStore,
	cache ActiveReportCache,
	logger *slog.Logger,
	cacheTTL time.Duration,
	now func() time.Time,
) QueryService {
	svc := NewQueryService(store, types, cache, logger, cacheTTL).(*queryService)
	svc.now = now
	return svc
}

func (s *queryService) Get(ctx context.Context, id uuid.UUID) (*domain.ReportView, error) {
	report, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := annotate(report, s.now().UTC())
	return &view, nil
}

func (s *queryService) ListAll(ctx context.Context) ([]domain.ReportView, error) {
	reports, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return annotateAll(reports, s.now().UTC()), nil
}

func (s *queryService) ListActive(ctx context.Context) ([]domain.ReportView, error) {
	reports, err := s.store.ListActive(ctx, s.now().UTC())
	if err != nil {
		return nil, err
	}
	return annotateAll(reports, s.now().UTC()), nil
}

func (s *queryService) ByBoundingBox(ctx context.Context, box domain.BoundingBox, onlyActive bool) ([]domain.ReportView, error) {
	now := s.now().UTC()
	reports, err := s.store.FindByBoundingBox(ctx, box, onlyActive, now)
	if err != nil {
		return nil, err
	}
	return annotateAll(reports, now), nil
}

// ByRadius re-checks every candidate against the canonical distance before
// annotating, so results are identical whether the store filtered
// server-side or returned a superset. Ordering is ascending by distance;
// the stable sort keeps insertion order for ties.
func (s *queryService) ByRadius(ctx context.Context, lat, lng, radiusKm float64, onlyActive bool) ([]domain.ReportView, error) {
	now := s.now().UTC()
	reports, err := s.store.FindByRadius(ctx, lat, lng, radiusKm, onlyActive, now)
	if err != nil {
		return nil, err
	}
	return rankByDistance(reports, lat, lng, radiusKm, now), nil
}

// NearRoute unions per-point radius results in traversal order,
// de-duplicated by report id with the first occurrence winning. An empty
// point list yields an empty result, not an error.
func (s *queryService) NearRoute(ctx context.Context, points []domain.RoutePoint, radiusKm float64, onlyActive bool) ([]domain.ReportView, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultRouteRadiusKm
	}

	seen := make(map[uuid.UUID]struct{})
	result := make([]domain.ReportView, 0)

	for _, point := range points {
		views, err := s.ByRadius(ctx, point.Latitude, point.Longitude, radiusKm, onlyActive)
		if err != nil {
			return nil, err
		}
		for _, v := range views {
			if _, ok := seen[v.ID]; ok {
				continue
			}
			seen[v.ID] = struct{}{}
			result = append(result, v)
		}
	}

	return result, nil
}

// WithFilters runs the composite query. Distance ordering needs a center;
// without one the store's default creation-time ordering stands.
func (s *queryService) WithFilters(ctx context.Context, criteria domain.SearchCriteria) ([]domain.ReportView, error) {
	now := s.now().UTC()

	orderByDistance := criteria.OrderBy == domain.OrderByDistance && criteria.Center != nil
	if criteria.OrderBy == domain.OrderByDistance && criteria.Center == nil {
		s.logger.Warn("distance ordering requested without center, using default ordering")
		criteria.OrderBy = ""
	}

	reports, err := s.store.FindWithFilters(ctx, criteria, now)
	if err != nil {
		return nil, err
	}

	views := annotateAll(reports, now)
	if criteria.Center != nil {
		for i := range views {
			d := geo.DistanceKm(criteria.Center.Latitude, criteria.Center.Longitude,
				views[i].Latitude, views[i].Longitude)
			views[i].DistanceKm = &d
		}
	}

	if orderByDistance {
		sort.SliceStable(views, func(i, j int) bool {
			if criteria.Descending {
				return *views[i].DistanceKm > *views[j].DistanceKm
			}
			return *views[i].DistanceKm < *views[j].DistanceKm
		})
	}

	return views, nil
}

// NearbyActive serves the socket layer's snapshot requests from the cached
// active set, falling back to the store on a miss.
func (s *queryService) NearbyActive(ctx context.Context, lat, lng, radiusKm float64) ([]domain.ReportView, error) {
	now := s.now().UTC()

	var reports []*domain.Report
	if s.cache != nil {
		cached, err := s.cache.GetActive(ctx)
		if err != nil {
			s.logger.Warn("active snapshot cache read failed", slog.Any("error", err))
		} else {
			reports = cached
		}
	}

	if reports == nil {
		loaded, err := s.store.ListActive(ctx, now)
		if err != nil {
			return nil, err
		}
		reports = loaded
		if s.cache != nil {
			if err := s.cache.SetActive(ctx, reports, s.cacheTTL); err != nil {
				s.logger.Warn("active snapshot cache set failed", slog.Any("error", err))
			}
		}
	}

	// cached entries may have expired since the snapshot was taken
	fresh := reports[:0:0]
	for _, r := range reports {
		if r.IsActiveAt(now) {
			fresh = append(fresh, r)
		}
	}

	return rankByDistance(fresh, lat, lng, radiusKm, now), nil
}

func (s *queryService) Statistics(ctx context.Context, dateRange *domain.DateRange) (*domain.ReportStats, error) {
	return s.store.Statistics(ctx, dateRange, s.now().UTC())
}

func (s *queryService) ListTypes(ctx context.Context) ([]*domain.ReportType, error) {
	return s.types.ListActiveTypes(ctx)
}

func annotate(r *domain.Report, now time.Time) domain.ReportView {
	return domain.ReportView{
		Report:           *r,
		IsActive:         r.IsActiveAt(now),
		MinutesRemaining: r.MinutesRemainingAt(now),
	}
}

func annotateAll(reports []*domain.Report, now time.Time) []domain.ReportView {
	views := make([]domain.ReportView, 0, len(reports))
	for _, r := range reports {
		views = append(views, annotate(r, now))
	}
	return views
}

// rankByDistance filters to radius with the canonical formula, annotates
// exact distances and sorts ascending, ties kept in input order.
func rankByDistance(reports []*domain.Report, lat, lng, radiusKm float64, now time.Time) []domain.ReportView {
	views := make([]domain.ReportView, 0, len(reports))
	for _, r := range reports {
		d := geo.DistanceKm(lat, lng, r.Latitude, r.Longitude)
		if d > radiusKm {
			continue
		}
		v := annotate(r, now)
		dist := d
		v.DistanceKm = &dist
		views = append(views, v)
	}
	sort.SliceStable(views, func(i, j int) bool {
		return *views[i].DistanceKm < *views[j].DistanceKm
	})
	return views
}
