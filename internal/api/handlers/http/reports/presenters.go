package reports

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
)

func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, e.ErrNotFound), errors.Is(err, e.ErrTypeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, e.ErrInvalidCoordinates),
		errors.Is(err, e.ErrInvalidQuery),
		errors.Is(err, e.ErrInvalidInput):
		status = http.StatusBadRequest
	default:
		status = http.StatusInternalServerError
	}

	if status >= http.StatusInternalServerError {
		h.log(r).Error("request failed", slog.Any("error", err))
	}

	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("json encode failed", slog.Any("error", err))
	}
}

func (h *Handler) log(r *http.Request) *slog.Logger {
	reqID := chimw.GetReqID(r.Context())
	if reqID == "" {
		return h.logger
	}
	return h.logger.With(slog.String("request_id", reqID))
}

func requiredFloat(q url.Values, key string) (float64, error) {
	s := q.Get(key)
	if s == "" {
		return 0, fmt.Errorf("missing %q: %w", key, e.ErrInvalidQuery)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed %q: %w", key, e.ErrInvalidQuery)
	}
	return f, nil
}

func optionalBool(q url.Values, key string, def bool) bool {
	s := q.Get(key)
	if s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return b
}

// optionalDateRange parses from/to as RFC3339. Either both or neither must
// be present.
func optionalDateRange(q url.Values) (*domain.DateRange, error) {
	fromStr, toStr := q.Get("from"), q.Get("to")
	if fromStr == "" && toStr == "" {
		return nil, nil
	}
	if fromStr == "" || toStr == "" {
		return nil, fmt.Errorf("date range needs both from and to: %w", e.ErrInvalidQuery)
	}

	from, err := time.Parse(time.RFC3339, fromStr)
	if err != nil {
		return nil, fmt.Errorf("malformed \"from\": %w", e.ErrInvalidQuery)
	}
	to, err := time.Parse(time.RFC3339, toStr)
	if err != nil {
		return nil, fmt.Errorf("malformed \"to\": %w", e.ErrInvalidQuery)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("date range inverted: %w", e.ErrInvalidQuery)
	}

	return &domain.DateRange{From: from, To: to}, nil
}
