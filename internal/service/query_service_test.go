package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/internal/service"
	"github.com/YhonJ8a/TrafficBGA/internal/storage/memory"
	"github.com/YhonJ8a/TrafficBGA/pkg/geo"
)

type queryFixture struct {
	store *memory.Store
	rt    *domain.ReportType
	svc   service.QueryService
	now   time.Time
}

func newQueryFixture(t *testing.T) *queryFixture {
	t.Helper()

	store := memory.NewStore()
	rt := seedType(t, store, "Tráfico", 30)
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

	return &queryFixture{
		store: store,
		rt:    rt,
		svc:   service.NewQueryServiceWithClock(store, store, nil, discardLogger(), time.Minute, fixedClock(now)),
		now:   now,
	}
}

func (f *queryFixture) addReport(t *testing.T, title string, lat, lng float64, expiresIn time.Duration) *domain.Report {
	t.Helper()

	report := &domain.Report{
		ID:         uuid.New(),
		Title:      title,
		Latitude:   lat,
		Longitude:  lng,
		TypeID:     f.rt.ID,
		ReportedAt: f.now,
		ExpiresAt:  f.now.Add(expiresIn),
		Visible:    true,
		State:      domain.ReportActive,
		CreatedAt:  f.now,
	}
	if err := f.store.Create(context.Background(), report); err != nil {
		t.Fatalf("Create(%s): %v", title, err)
	}
	return report
}

func titles(views []domain.ReportView) []string {
	out := make([]string, 0, len(views))
	for _, v := range views {
		out = append(out, v.Title)
	}
	return out
}

func TestByBoundingBox_InclusiveEdges(t *testing.T) {
	f := newQueryFixture(t)
	f.addReport(t, "on corner", 4.70000, -74.10000, time.Hour)
	f.addReport(t, "inside", 4.75, -74.05, time.Hour)
	f.addReport(t, "outside", 4.90, -74.05, time.Hour)

	box := domain.BoundingBox{LatMin: 4.7, LatMax: 4.8, LngMin: -74.1, LngMax: -74.0}
	views, err := f.svc.ByBoundingBox(context.Background(), box, true)
	if err != nil {
		t.Fatalf("ByBoundingBox() error = %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d reports %v, want 2", len(views), titles(views))
	}
	for _, v := range views {
		if v.Title == "outside" {
			t.Errorf("report outside the box returned")
		}
	}
}

func TestByBoundingBox_OnlyActiveExcludesExpired(t *testing.T) {
	f := newQueryFixture(t)
	f.addReport(t, "live", 4.75, -74.05, time.Hour)
	f.addReport(t, "lapsed", 4.75, -74.05, -time.Minute)

	box := domain.BoundingBox{LatMin: 4.7, LatMax: 4.8, LngMin: -74.1, LngMax: -74.0}

	active, err := f.svc.ByBoundingBox(context.Background(), box, true)
	if err != nil {
		t.Fatalf("ByBoundingBox(onlyActive) error = %v", err)
	}
	if len(active) != 1 || active[0].Title != "live" {
		t.Errorf("onlyActive results = %v, want [live]", titles(active))
	}

	all, err := f.svc.ByBoundingBox(context.Background(), box, false)
	if err != nil {
		t.Fatalf("ByBoundingBox(all) error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("unfiltered results = %v, want both", titles(all))
	}
}

func TestByRadius_SortsAscendingAndAnnotates(t *testing.T) {
	f := newQueryFixture(t)
	// distances from (4.710, -74.072): near ≈ 0.15km, mid ≈ 1.2km, far ≈ 95km
	f.addReport(t, "mid", 4.72, -74.075, time.Hour)
	f.addReport(t, "near", 4.711, -74.073, time.Hour)
	f.addReport(t, "far", 4.9, -74.9, time.Hour)

	views, err := f.svc.ByRadius(context.Background(), 4.710, -74.072, 2.0, true)
	if err != nil {
		t.Fatalf("ByRadius() error = %v", err)
	}

	got := titles(views)
	want := []string{"near", "mid"}
	if len(got) != len(want) {
		t.Fatalf("ByRadius results = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ByRadius order = %v, want %v", got, want)
		}
	}

	for _, v := range views {
		if v.DistanceKm == nil {
			t.Fatalf("report %q missing distance annotation", v.Title)
		}
		wantDist := geo.DistanceKm(4.710, -74.072, v.Latitude, v.Longitude)
		if *v.DistanceKm != wantDist {
			t.Errorf("report %q distance = %v, want %v", v.Title, *v.DistanceKm, wantDist)
		}
		if !v.IsActive {
			t.Errorf("report %q should be active", v.Title)
		}
		if v.MinutesRemaining != 60 {
			t.Errorf("report %q minutes remaining = %d, want 60", v.Title, v.MinutesRemaining)
		}
	}
}

func TestByRadius_LargerRadiusIsSuperset(t *testing.T) {
	f := newQueryFixture(t)
	f.addReport(t, "a", 4.711, -74.073, time.Hour)
	f.addReport(t, "b", 4.72, -74.075, time.Hour)
	f.addReport(t, "c", 4.76, -74.10, time.Hour)

	small, err := f.svc.ByRadius(context.Background(), 4.710, -74.072, 2.0, true)
	if err != nil {
		t.Fatalf("ByRadius(2km) error = %v", err)
	}
	large, err := f.svc.ByRadius(context.Background(), 4.710, -74.072, 10.0, true)
	if err != nil {
		t.Fatalf("ByRadius(10km) error = %v", err)
	}

	if len(large) < len(small) {
		t.Fatalf("10km returned %d, fewer than 2km's %d", len(large), len(small))
	}
	inLarge := make(map[uuid.UUID]bool, len(large))
	for _, v := range large {
		inLarge[v.ID] = true
	}
	for _, v := range small {
		if !inLarge[v.ID] {
			t.Errorf("report %q in 2km result but not in 10km result", v.Title)
		}
	}
}

func TestNearRoute_DedupesFirstOccurrenceWins(t *testing.T) {
	f := newQueryFixture(t)
	// shared sits within 2km of both route points
	shared := f.addReport(t, "shared", 4.715, -74.073, time.Hour)
	f.addReport(t, "only second", 4.73, -74.074, time.Hour)

	points := []domain.RoutePoint{
		{Latitude: 4.710, Longitude: -74.072},
		{Latitude: 4.725, Longitude: -74.074},
	}

	views, err := f.svc.NearRoute(context.Background(), points, 2.0, true)
	if err != nil {
		t.Fatalf("NearRoute() error = %v", err)
	}

	count := 0
	for _, v := range views {
		if v.ID == shared.ID {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("shared report appeared %d times, want 1", count)
	}

	// the kept copy carries the distance from the first point that saw it
	for _, v := range views {
		if v.ID != shared.ID {
			continue
		}
		wantDist := geo.DistanceKm(4.710, -74.072, shared.Latitude, shared.Longitude)
		if v.DistanceKm == nil || *v.DistanceKm != wantDist {
			t.Errorf("shared distance = %v, want %v (from first route point)", v.DistanceKm, wantDist)
		}
	}
}

func TestNearRoute_DefaultRadiusAndEmptyPoints(t *testing.T) {
	f := newQueryFixture(t)
	f.addReport(t, "near", 4.711, -74.073, time.Hour)

	views, err := f.svc.NearRoute(context.Background(), nil, 2.0, true)
	if err != nil {
		t.Fatalf("NearRoute(no points) error = %v", err)
	}
	if len(views) != 0 {
		t.Errorf("empty route returned %d reports, want 0", len(views))
	}

	// zero radius falls back to the 2km default and still finds the report
	views, err = f.svc.NearRoute(context.Background(), []domain.RoutePoint{{Latitude: 4.710, Longitude: -74.072}}, 0, true)
	if err != nil {
		t.Fatalf("NearRoute(default radius) error = %v", err)
	}
	if len(views) != 1 {
		t.Errorf("default radius returned %d reports, want 1", len(views))
	}
}

func TestWithFilters_DistanceDescending(t *testing.T) {
	f := newQueryFixture(t)
	center := domain.RoutePoint{Latitude: 4.710, Longitude: -74.072}

	// roughly 1km, 3km and 5km north of the center
	f.addReport(t, "3km", 4.737, -74.072, time.Hour)
	f.addReport(t, "1km", 4.719, -74.072, time.Hour)
	f.addReport(t, "5km", 4.755, -74.072, time.Hour)

	views, err := f.svc.WithFilters(context.Background(), domain.SearchCriteria{
		Center:     &center,
		OnlyActive: true,
		OrderBy:    domain.OrderByDistance,
		Descending: true,
	})
	if err != nil {
		t.Fatalf("WithFilters() error = %v", err)
	}

	got := titles(views)
	want := []string{"5km", "3km", "1km"}
	if len(got) != len(want) {
		t.Fatalf("results = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("distance descending order = %v, want %v", got, want)
		}
	}
}

func TestWithFilters_DistanceOrderingNeedsCenter(t *testing.T) {
	f := newQueryFixture(t)
	first := f.addReport(t, "first", 4.75, -74.07, time.Hour)
	second := &domain.Report{
		ID:         uuid.New(),
		Title:      "second",
		Latitude:   4.71,
		Longitude:  -74.07,
		TypeID:     f.rt.ID,
		ReportedAt: f.now,
		ExpiresAt:  f.now.Add(time.Hour),
		Visible:    true,
		State:      domain.ReportActive,
		CreatedAt:  f.now.Add(time.Minute),
	}
	if err := f.store.Create(context.Background(), second); err != nil {
		t.Fatalf("Create: %v", err)
	}

	views, err := f.svc.WithFilters(context.Background(), domain.SearchCriteria{
		OnlyActive: true,
		OrderBy:    domain.OrderByDistance, // no center: falls back to creation order
	})
	if err != nil {
		t.Fatalf("WithFilters() error = %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d results, want 2", len(views))
	}
	if views[0].ID != first.ID {
		t.Errorf("fallback ordering should be by creation time, got %v", titles(views))
	}
	for _, v := range views {
		if v.DistanceKm != nil {
			t.Errorf("no center given, report %q should not carry a distance", v.Title)
		}
	}
}

func TestWithFilters_TypeStateAndDateFilters(t *testing.T) {
	f := newQueryFixture(t)
	otherType := seedType(t, f.store, "Bache", 43200)

	matching := f.addReport(t, "matching", 4.71, -74.07, time.Hour)

	other := &domain.Report{
		ID:         uuid.New(),
		Title:      "wrong type",
		Latitude:   4.71,
		Longitude:  -74.07,
		TypeID:     otherType.ID,
		ReportedAt: f.now,
		ExpiresAt:  f.now.Add(time.Hour),
		Visible:    true,
		State:      domain.ReportActive,
		CreatedAt:  f.now,
	}
	if err := f.store.Create(context.Background(), other); err != nil {
		t.Fatalf("Create: %v", err)
	}

	early := &domain.Report{
		ID:         uuid.New(),
		Title:      "too early",
		Latitude:   4.71,
		Longitude:  -74.07,
		TypeID:     f.rt.ID,
		ReportedAt: f.now.Add(-48 * time.Hour),
		ExpiresAt:  f.now.Add(time.Hour),
		Visible:    true,
		State:      domain.ReportCancelled,
		CreatedAt:  f.now,
	}
	if err := f.store.Create(context.Background(), early); err != nil {
		t.Fatalf("Create: %v", err)
	}

	from := f.now.Add(-time.Hour)
	to := f.now.Add(time.Hour)
	views, err := f.svc.WithFilters(context.Background(), domain.SearchCriteria{
		TypeIDs:      []uuid.UUID{f.rt.ID},
		ReportedFrom: &from,
		ReportedTo:   &to,
		States:       []domain.ReportState{domain.ReportActive},
	})
	if err != nil {
		t.Fatalf("WithFilters() error = %v", err)
	}
	if len(views) != 1 || views[0].ID != matching.ID {
		t.Fatalf("filtered results = %v, want only %q", titles(views), matching.Title)
	}
}

func TestNearbyActive_FallsBackToStoreOnCacheMiss(t *testing.T) {
	f := newQueryFixture(t)
	f.addReport(t, "near", 4.711, -74.073, time.Hour)
	f.addReport(t, "lapsed", 4.711, -74.073, -time.Minute)
	f.addReport(t, "far", 4.9, -74.9, time.Hour)

	views, err := f.svc.NearbyActive(context.Background(), 4.710, -74.072, 2.0)
	if err != nil {
		t.Fatalf("NearbyActive() error = %v", err)
	}
	if len(views) != 1 || views[0].Title != "near" {
		t.Fatalf("NearbyActive results = %v, want [near]", titles(views))
	}
	if views[0].DistanceKm == nil {
		t.Errorf("nearby report missing distance annotation")
	}
}

func TestNearbyActive_ServesFromCacheAndRefilters(t *testing.T) {
	f := newQueryFixture(t)
	live := f.addReport(t, "live", 4.711, -74.073, time.Hour)
	stale := f.addReport(t, "stale", 4.712, -74.073, -time.Minute)

	cache := &staticCache{reports: []*domain.Report{snapshotOf(t, f.store, live.ID), snapshotOf(t, f.store, stale.ID)}}
	svc := service.NewQueryServiceWithClock(f.store, f.store, cache, discardLogger(), time.Minute, fixedClock(f.now))

	views, err := svc.NearbyActive(context.Background(), 4.710, -74.072, 2.0)
	if err != nil {
		t.Fatalf("NearbyActive() error = %v", err)
	}
	if len(views) != 1 || views[0].ID != live.ID {
		t.Fatalf("cached results = %v, want only the live report", titles(views))
	}
	if cache.sets != 0 {
		t.Errorf("cache hit should not trigger a refresh, got %d sets", cache.sets)
	}
}

func TestStatistics_CountsPerType(t *testing.T) {
	f := newQueryFixture(t)
	f.addReport(t, "live", 4.71, -74.07, time.Hour)
	f.addReport(t, "lapsed", 4.72, -74.08, -time.Minute)

	if _, err := f.store.BulkMarkExpired(context.Background(), f.now); err != nil {
		t.Fatalf("BulkMarkExpired: %v", err)
	}

	stats, err := f.svc.Statistics(context.Background(), nil)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if stats.TotalVisible != 1 {
		t.Errorf("TotalVisible = %d, want 1", stats.TotalVisible)
	}
	if len(stats.ByType) != 1 {
		t.Fatalf("ByType has %d entries, want 1", len(stats.ByType))
	}
	ts := stats.ByType[0]
	if ts.Total != 2 || ts.ActiveCount != 1 || ts.ResolvedCount != 1 {
		t.Errorf("type stats = %+v, want total=2 active=1 resolved=1", ts)
	}
}

// staticCache always hits with a fixed snapshot.
type staticCache struct {
	reports []*domain.Report
	sets    int
}

func (c *staticCache) GetActive(ctx context.Context) ([]*domain.Report, error) {
	return c.reports, nil
}

func (c *staticCache) SetActive(ctx context.Context, reports []*domain.Report, ttl time.Duration) error {
	c.sets++
	return nil
}

func snapshotOf(t *testing.T, store *memory.Store, id uuid.UUID) *domain.Report {
	t.Helper()
	r, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("GetByID(%s): %v", id, err)
	}
	return r
}
