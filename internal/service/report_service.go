package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/e"
	"github.com/YhonJ8a/TrafficBGA/pkg/geo"
)

type reportService struct {
	store    ReportStore
	types    ReportTypeStore
	cache    ActiveReportCache
	sink     EventSink
	logger   *slog.Logger
	now      func() time.Time
	cacheTTL time.Duration
}

func NewReportService(
	store ReportStore,
	types ReportTypeStore,
	cache ActiveReportCache,
	sink EventSink,
	logger *slog.Logger,
	cacheTTL time.Duration,
) ReportService {
	return &reportService{
		store:    store,
		types:    types,
		cache:    cache,
		sink:     sink,
		logger:   logger,
		now:      time.Now,
		cacheTTL: cacheTTL,
	}
}

// NewReportServiceWithClock injects the time source so tests can simulate
// expiration instead of sleeping. Production wiring uses NewReportService.
func NewReportServiceWithClock(
	store ReportStore,
	types ReportTypeStore,
	cache ActiveReportCache,
	sink EventSink,
	logger *slog.Logger,
	cacheTTL time.Duration,
	now func() time.Time,
) ReportService {
	svc := NewReportService(store, types, cache, sink, logger, cacheTTL).(*reportService)
	svc.now = now
	return svc
}

// Submit validates, persists and announces a report. Validation happens
// before any write; the event fires only after the write committed, so a
// notification always refers to a durable report.
func (s *reportService) Submit(ctx context.Context, req domain.SubmitReportRequest) (*domain.Report, error) {
	const op = "service.Report.Submit"

	if !geo.ValidCoordinates(req.Latitude, req.Longitude) {
		s.logger.Warn("invalid coordinates",
			slog.String("op", op),
			slog.Float64("lat", req.Latitude),
			slog.Float64("lng", req.Longitude),
		)
		return nil, e.ErrInvalidCoordinates
	}

	typeID, err := uuid.Parse(req.TypeID)
	if err != nil {
		return nil, e.Wrap(op, e.ErrTypeNotFound)
	}

	reportType, err := s.types.GetType(ctx, typeID)
	if err != nil {
		return nil, err
	}
	if !reportType.Active || reportType.LifetimeMinutes <= 0 {
		return nil, e.Wrap(op, e.ErrTypeNotFound)
	}

	now := s.now().UTC()
	report := &domain.Report{
		ID:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Latitude:    geo.Round5(req.Latitude),
		Longitude:   geo.Round5(req.Longitude),
		TypeID:      reportType.ID,
		Type:        reportType,
		ReportedAt:  now,
		// fixed here, never recomputed
		ExpiresAt: now.Add(time.Duration(reportType.LifetimeMinutes) * time.Minute),
		Expired:   false,
		Visible:   true,
		State:     domain.ReportActive,
		CreatedAt: now,
	}

	if err := s.store.Create(ctx, report); err != nil {
		return nil, err
	}

	s.logger.Info("report submitted",
		slog.String("op", op),
		slog.String("id", report.ID.String()),
		slog.String("type", reportType.Title),
		slog.Time("expires_at", report.ExpiresAt),
	)

	s.refreshActiveCache(ctx)
	s.sink.ReportCreated(ctx, report)

	return report, nil
}

// SweepExpired hides every report whose window closed before now and
// returns the transitioned ids. A failed tick just returns the error; the
// next tick retries naturally because the store call is idempotent.
func (s *reportService) SweepExpired(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	const op = "service.Report.SweepExpired"

	ids, err := s.store.BulkMarkExpired(ctx, now)
	if err != nil {
		s.logger.Error("sweep failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}

	if len(ids) == 0 {
		return ids, nil
	}

	s.logger.Info("reports expired", slog.String("op", op), slog.Int("count", len(ids)))

	s.refreshActiveCache(ctx)
	s.sink.ReportsExpired(ctx, ids)

	return ids, nil
}

// refreshActiveCache is best-effort: a cold or stale cache only costs the
// socket layer a store round-trip.
func (s *reportService) refreshActiveCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	active, err := s.store.ListActive(ctx, s.now().UTC())
	if err != nil {
		s.logger.Error("active snapshot load failed", slog.Any("error", err))
		return
	}
	if err := s.cache.SetActive(ctx, active, s.cacheTTL); err != nil {
		s.logger.Error("active snapshot cache set failed", slog.Any("error", err))
	}
}
