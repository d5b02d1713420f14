// Package memory is an in-process report store implementing the same
// contract as the Postgres adapter. It backs deployments without a
// server-side Haversine capability and the unit tests; all spatial
// predicates go through pkg/geo, so both adapters agree on distances.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
	"github.com/YhonJ8a/TrafficBGA/pkg/geo"
)

type Store struct {
	mu      sync.RWMutex
	reports []*domain.Report // insertion order preserved for stable sorts
	types   map[uuid.UUID]*domain.ReportType
}

func NewStore() *Store {
	return &Store{types: make(map[uuid.UUID]*domain.ReportType)}
}

// AddType registers a report type. Mirrors the seed step of the Postgres
// adapter; no runtime mutation beyond this.
func (s *Store) AddType(t *domain.ReportType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	cp := *t
	s.types[t.ID] = &cp
}

func (s *Store) GetType(ctx context.Context, id uuid.UUID) (*domain.ReportType, error) {
	const op = "memory.Store.GetType"

	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.types[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, e.ErrTypeNotFound)
	}
	cp := *t
	return &cp, nil
}

func (s *Store) ListActiveTypes(ctx context.Context) ([]*domain.ReportType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var types []*domain.ReportType
	for _, t := range s.types {
		if t.Active {
			cp := *t
			types = append(types, &cp)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Title < types[j].Title })
	return types, nil
}

func (s *Store) Create(ctx context.Context, report *domain.Report) error {
	const op = "memory.Store.Create"

	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.types[report.TypeID]
	if !ok {
		return fmt.Errorf("%s: %w", op, e.ErrTypeNotFound)
	}
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	if report.State == "" {
		report.State = domain.ReportActive
	}

	cp := *report
	tc := *t
	cp.Type = &tc
	s.reports = append(s.reports, &cp)
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Report, error) {
	const op = "memory.Store.GetByID"

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.reports {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("%s: %w", op, e.ErrNotFound)
}

func (s *Store) ListAll(ctx context.Context) ([]*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(r *domain.Report) bool { return true }), nil
}

func (s *Store) ListActive(ctx context.Context, now time.Time) ([]*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(r *domain.Report) bool {
		return r.Visible && !r.Expired && r.ExpiresAt.After(now)
	}), nil
}

func (s *Store) FindByBoundingBox(ctx context.Context, box domain.BoundingBox, onlyActive bool, now time.Time) ([]*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(r *domain.Report) bool {
		if !r.Visible || !box.Contains(r.Latitude, r.Longitude) {
			return false
		}
		if onlyActive && (r.Expired || !r.ExpiresAt.After(now)) {
			return false
		}
		return true
	}), nil
}

func (s *Store) FindByRadius(ctx context.Context, lat, lng, radiusKm float64, onlyActive bool, now time.Time) ([]*domain.Report, error) {
	const op = "memory.Store.FindByRadius"

	if radiusKm <= 0 {
		return nil, fmt.Errorf("%s: %w", op, e.ErrInvalidQuery)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter(func(r *domain.Report) bool {
		if !r.Visible {
			return false
		}
		if onlyActive && (r.Expired || !r.ExpiresAt.After(now)) {
			return false
		}
		return geo.DistanceKm(lat, lng, r.Latitude, r.Longitude) <= radiusKm
	}), nil
}

func (s *Store) FindWithFilters(ctx context.Context, criteria domain.SearchCriteria, now time.Time) ([]*domain.Report, error) {
	s.mu.RLock()
	matched := s.filter(func(r *domain.Report) bool {
		if !r.Visible {
			return false
		}
		if criteria.BBox != nil && !criteria.BBox.Contains(r.Latitude, r.Longitude) {
			return false
		}
		if criteria.Center != nil && criteria.RadiusKm != nil {
			d := geo.DistanceKm(criteria.Center.Latitude, criteria.Center.Longitude, r.Latitude, r.Longitude)
			if d > *criteria.RadiusKm {
				return false
			}
		}
		if len(criteria.TypeIDs) > 0 && !containsID(criteria.TypeIDs, r.TypeID) {
			return false
		}
		if criteria.ReportedFrom != nil && r.ReportedAt.Before(*criteria.ReportedFrom) {
			return false
		}
		if criteria.ReportedTo != nil && r.ReportedAt.After(*criteria.ReportedTo) {
			return false
		}
		if len(criteria.States) > 0 && !containsState(criteria.States, r.State) {
			return false
		}
		if criteria.OnlyActive && (r.Expired || !r.ExpiresAt.After(now)) {
			return false
		}
		return true
	})
	s.mu.RUnlock()

	less := func(a, b *domain.Report) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch criteria.OrderBy {
	case domain.OrderByReported:
		less = func(a, b *domain.Report) bool { return a.ReportedAt.Before(b.ReportedAt) }
	case domain.OrderByExpires:
		less = func(a, b *domain.Report) bool { return a.ExpiresAt.Before(b.ExpiresAt) }
	}
	if criteria.Descending && criteria.OrderBy != domain.OrderByDistance {
		inner := less
		less = func(a, b *domain.Report) bool { return inner(b, a) }
	}
	sort.SliceStable(matched, func(i, j int) bool { return less(matched[i], matched[j]) })

	return matched, nil
}

// BulkMarkExpired holds the write lock for the whole scan, making the
// transition atomic with respect to concurrent Create calls.
func (s *Store) BulkMarkExpired(ctx context.Context, before time.Time) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]uuid.UUID, 0, 8)
	for _, r := range s.reports {
		if !r.Expired && r.ExpiresAt.Before(before) {
			r.Expired = true
			r.Visible = false
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (s *Store) Statistics(ctx context.Context, dateRange *domain.DateRange, now time.Time) (*domain.ReportStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inRange := func(r *domain.Report) bool {
		if dateRange == nil {
			return true
		}
		return !r.ReportedAt.Before(dateRange.From) && !r.ReportedAt.After(dateRange.To)
	}

	var stats domain.ReportStats
	perType := make(map[uuid.UUID]*domain.TypeStats)

	for _, t := range s.types {
		if !t.Active {
			continue
		}
		perType[t.ID] = &domain.TypeStats{TypeID: t.ID, Title: t.Title}
	}

	for _, r := range s.reports {
		if !inRange(r) {
			continue
		}
		if r.Visible {
			stats.TotalVisible++
		}
		ts, ok := perType[r.TypeID]
		if !ok {
			continue
		}
		ts.Total++
		if !r.Expired && r.Visible && r.ExpiresAt.After(now) {
			ts.ActiveCount++
		}
		if r.Expired || r.State != domain.ReportActive {
			ts.ResolvedCount++
		}
	}

	for _, ts := range perType {
		stats.ByType = append(stats.ByType, *ts)
	}
	sort.Slice(stats.ByType, func(i, j int) bool { return stats.ByType[i].Title < stats.ByType[j].Title })

	return &stats, nil
}

// filter copies matches so callers never hold references into the store.
// Callers must hold at least a read lock.
func (s *Store) filter(keep func(*domain.Report) bool) []*domain.Report {
	var out []*domain.Report
	for _, r := range s.reports {
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsState(states []domain.ReportState, st domain.ReportState) bool {
	for _, v := range states {
		if v == st {
			return true
		}
	}
	return false
}
