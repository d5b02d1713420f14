// Package criticalpoints serves the read-only catalog of high-accident
// road sectors. No writes: the catalog is seeded at bootstrap.
package criticalpoints

import (
	"log/slog"
	"net/http"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/internal/service"
)

// DefaultRadiusKm is the search radius when the caller does not pass one.
const DefaultRadiusKm = 5.0

type Handler struct {
	logger *slog.Logger
	points service.CriticalPointService
}

func NewHandler(logger *slog.Logger, points service.CriticalPointService) *Handler {
	return &Handler{
		logger: logger,
		points: points,
	}
}

func (h *Handler) ListCriticalPoints(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.CriticalPointFilter{
		Department:   q.Get("department"),
		Municipality: q.Get("municipality"),
		Visible:      optionalBoolPtr(q, "visible"),
	}
	for _, l := range q["danger_level"] {
		filter.DangerLevels = append(filter.DangerLevels, domain.DangerLevel(l))
	}

	views, err := h.points.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) CriticalPointsByArea(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	box := domain.BoundingBox{}
	var err error
	if box.LatMin, err = requiredFloat(q, "lat_min"); err != nil {
		h.handleError(w, r, err)
		return
	}
	if box.LatMax, err = requiredFloat(q, "lat_max"); err != nil {
		h.handleError(w, r, err)
		return
	}
	if box.LngMin, err = requiredFloat(q, "lng_min"); err != nil {
		h.handleError(w, r, err)
		return
	}
	if box.LngMax, err = requiredFloat(q, "lng_max"); err != nil {
		h.handleError(w, r, err)
		return
	}

	views, err := h.points.ByBoundingBox(r.Context(), box)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) CriticalPointsByRadius(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, err := requiredFloat(q, "lat")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	lng, err := requiredFloat(q, "lng")
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	radius, err := optionalFloat(q, "radius_km", DefaultRadiusKm)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views, err := h.points.ByRadius(r.Context(), lat, lng, radius)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.points.Statistics(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}
