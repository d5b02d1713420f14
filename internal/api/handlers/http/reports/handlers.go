package reports

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/internal/service"
	"github.com/YhonJ8a/TrafficBGA/pkg/validator"
)

type Handler struct {
	logger  *slog.Logger
	reports service.ReportService
	queries service.QueryService
}

func NewHandler(logger *slog.Logger, reports service.ReportService, queries service.QueryService) *Handler {
	return &Handler{
		logger:  logger,
		reports: reports,
		queries: queries,
	}
}

func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	var req domain.SubmitReportRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	report, err := h.reports.Submit(r.Context(), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, report)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid report id"})
		return
	}

	view, err := h.queries.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, view)
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	views, err := h.queries.ListAll(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) ListActiveReports(w http.ResponseWriter, r *http.Request) {
	views, err := h.queries.ListActive(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) ReportsByArea(w http.ResponseWriter, r *http.Request) {
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

	views, err := h.queries.ByBoundingBox(r.Context(), box, optionalBool(q, "only_active", true))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) ReportsByRadius(w http.ResponseWriter, r *http.Request) {
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
	radius, err := requiredFloat(q, "radius_km")
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	views, err := h.queries.ByRadius(r.Context(), lat, lng, radius, optionalBool(q, "only_active", true))
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) ReportsNearRoute(w http.ResponseWriter, r *http.Request) {
	var req domain.RouteQueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	views, err := h.queries.NearRoute(r.Context(), req.Points, req.RadiusKm, req.OnlyActive)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) SearchReports(w http.ResponseWriter, r *http.Request) {
	var criteria domain.SearchCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := validator.ValidateStruct(&criteria); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	views, err := h.queries.WithFilters(r.Context(), criteria)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) Statistics(w http.ResponseWriter, r *http.Request) {
	dateRange, err := optionalDateRange(r.URL.Query())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	stats, err := h.queries.Statistics(r.Context(), dateRange)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.queries.ListTypes(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, types)
}
