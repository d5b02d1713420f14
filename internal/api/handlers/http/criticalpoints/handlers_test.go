package criticalpoints_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/YhonJ8a/TrafficBGA/internal/api/handlers/http/criticalpoints"
	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/internal/service"
	"github.com/YhonJ8a/TrafficBGA/internal/storage/memory"
)

type fixture struct {
	router  *chi.Mux
	catalog *memory.Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := memory.NewCatalog()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := criticalpoints.NewHandler(logger, service.NewCriticalPointService(catalog, logger))

	r := chi.NewMux()
	r.Get("/critical-points", h.ListCriticalPoints)
	r.Get("/critical-points/area", h.CriticalPointsByArea)
	r.Get("/critical-points/radius", h.CriticalPointsByRadius)
	r.Get("/critical-points/statistics", h.Statistics)

	return &fixture{router: r, catalog: catalog}
}

func (f *fixture) seed(title string, lat, lng float64, accidents int, level domain.DangerLevel) {
	f.catalog.Add(&domain.CriticalPoint{
		Title:         title,
		Latitude:      lat,
		Longitude:     lng,
		Department:    "Santander",
		Municipality:  "Bucaramanga",
		AccidentCount: accidents,
		DangerLevel:   level,
		Active:        true,
		Visible:       true,
	})
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeViews(t *testing.T, rec *httptest.ResponseRecorder) []domain.CriticalPointView {
	t.Helper()
	var views []domain.CriticalPointView
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("decode response: %v, body %s", err, rec.Body.String())
	}
	return views
}

func TestListCriticalPoints(t *testing.T) {
	f := newFixture(t)
	f.seed("Puerta del Sol", 7.106, -73.113, 57, domain.DangerVeryHigh)
	f.seed("Café Madrid", 7.154, -73.127, 26, domain.DangerMedium)

	rec := f.get(t, "/critical-points")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	views := decodeViews(t, rec)
	if len(views) != 2 {
		t.Fatalf("expected 2 points, got %d", len(views))
	}
	if views[0].Title != "Puerta del Sol" {
		t.Fatalf("expected accident count ordering, got %q first", views[0].Title)
	}
}

func TestListCriticalPoints_DangerLevelFilter(t *testing.T) {
	f := newFixture(t)
	f.seed("Puerta del Sol", 7.106, -73.113, 57, domain.DangerVeryHigh)
	f.seed("Café Madrid", 7.154, -73.127, 26, domain.DangerMedium)
	f.seed("Zona Industrial", 7.068, -73.169, 14, domain.DangerLow)

	rec := f.get(t, "/critical-points?danger_level=very_high&danger_level=low")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	views := decodeViews(t, rec)
	if len(views) != 2 {
		t.Fatalf("expected 2 points, got %d", len(views))
	}
	for _, v := range views {
		if v.DangerLevel == domain.DangerMedium {
			t.Fatalf("medium level should be filtered out: %+v", v)
		}
	}
}

func TestCriticalPointsByArea(t *testing.T) {
	f := newFixture(t)
	f.seed("Dentro", 7.11, -73.12, 30, domain.DangerMedium)
	f.seed("Fuera", 7.50, -73.50, 80, domain.DangerHigh)

	rec := f.get(t, "/critical-points/area?lat_min=7.0&lat_max=7.2&lng_min=-73.2&lng_max=-73.0")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	views := decodeViews(t, rec)
	if len(views) != 1 || views[0].Title != "Dentro" {
		t.Fatalf("expected only the in-box point, got %+v", views)
	}
}

func TestCriticalPointsByArea_MissingParam(t *testing.T) {
	f := newFixture(t)

	rec := f.get(t, "/critical-points/area?lat_min=7.0&lat_max=7.2&lng_min=-73.2")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCriticalPointsByRadius(t *testing.T) {
	f := newFixture(t)
	f.seed("Cerca", 7.119, -73.118, 10, domain.DangerLow)
	f.seed("Más cerca", 7.111, -73.118, 5, domain.DangerLow)
	f.seed("Lejos", 7.60, -73.118, 90, domain.DangerVeryHigh)

	rec := f.get(t, "/critical-points/radius?lat=7.110&lng=-73.118&radius_km=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	views := decodeViews(t, rec)
	if len(views) != 2 {
		t.Fatalf("expected 2 points within 2km, got %d", len(views))
	}
	if views[0].Title != "Más cerca" || views[1].Title != "Cerca" {
		t.Fatalf("proximity ordering failed: %q, %q", views[0].Title, views[1].Title)
	}
	if views[0].DistanceKm == nil || views[1].DistanceKm == nil {
		t.Fatalf("radius query must annotate distances")
	}
}

func TestCriticalPointsByRadius_DefaultRadius(t *testing.T) {
	f := newFixture(t)
	f.seed("A tres kilómetros", 7.137, -73.118, 20, domain.DangerMedium)

	// no radius_km: the 5km default must cover the point
	rec := f.get(t, "/critical-points/radius?lat=7.110&lng=-73.118")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if views := decodeViews(t, rec); len(views) != 1 {
		t.Fatalf("expected 1 point under default radius, got %d", len(views))
	}
}

func TestCriticalPointsByRadius_BadInput(t *testing.T) {
	f := newFixture(t)
	f.seed("Puerta del Sol", 7.106, -73.113, 57, domain.DangerVeryHigh)

	tests := []struct {
		name   string
		target string
	}{
		{"missing lat", "/critical-points/radius?lng=-73.118"},
		{"malformed lng", "/critical-points/radius?lat=7.110&lng=abc"},
		{"latitude out of range", "/critical-points/radius?lat=95&lng=-73.118"},
		{"zero radius", "/critical-points/radius?lat=7.110&lng=-73.118&radius_km=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.get(t, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCriticalPointStatistics(t *testing.T) {
	f := newFixture(t)
	f.seed("Puerta del Sol", 7.106, -73.113, 57, domain.DangerVeryHigh)
	f.seed("Café Madrid", 7.154, -73.127, 26, domain.DangerMedium)
	f.seed("Cuesta Rica", 7.168, -73.102, 22, domain.DangerMedium)

	rec := f.get(t, "/critical-points/statistics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var stats domain.CriticalPointStats
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("total = %d, want 3", stats.Total)
	}
	if len(stats.ByLevel) != 2 || stats.ByLevel[0].Level != domain.DangerMedium {
		t.Fatalf("level ranking wrong: %+v", stats.ByLevel)
	}
	if len(stats.ByDepartment) != 1 || stats.ByDepartment[0].Count != 3 {
		t.Fatalf("department stats wrong: %+v", stats.ByDepartment)
	}
}
