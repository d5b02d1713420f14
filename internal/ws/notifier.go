package ws

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
	"github.com/YhonJ8a/TrafficBGA/pkg/geo"
)

// Emitter is what the notifier needs from the hub. Split out so tests can
// capture deliveries without real sockets.
type Emitter interface {
	EmitTo(connID uuid.UUID, event string, data any)
	Broadcast(event string, data any)
}

type newReportPayload struct {
	Report     domain.ReportView `json:"report"`
	DistanceKm float64           `json:"distance_km"`
	Message    string            `json:"message"`
}

type reportsExpiredPayload struct {
	IDs []uuid.UUID `json:"ids"`
}

// Notifier is the fanout side of the lifecycle events. It implements
// service.EventSink: a created report goes to every subscription within its
// radius, an expiration batch goes to everyone so clients can prune
// locally. The per-report scan is O(connections), fine while connections
// stay orders of magnitude below report volume.
type Notifier struct {
	emitter  Emitter
	registry *Registry
	logger   *slog.Logger
}

func NewNotifier(emitter Emitter, registry *Registry, logger *slog.Logger) *Notifier {
	return &Notifier{
		emitter:  emitter,
		registry: registry,
		logger:   logger,
	}
}

func (n *Notifier) ReportCreated(ctx context.Context, report *domain.Report) {
	subs := n.registry.Snapshot()

	delivered := 0
	for _, sub := range subs {
		distance := geo.DistanceKm(sub.Latitude, sub.Longitude, report.Latitude, report.Longitude)
		if distance > sub.RadiusKm {
			continue
		}

		dist := distance
		payload := newReportPayload{
			Report: domain.ReportView{
				Report:           *report,
				IsActive:         true,
				MinutesRemaining: report.MinutesRemainingAt(report.ReportedAt),
				DistanceKm:       &dist,
			},
			DistanceKm: distance,
			Message:    fmt.Sprintf("New report %.2fkm from your location", distance),
		}
		n.emitter.EmitTo(sub.ConnID, "new-report", payload)
		delivered++
	}

	n.logger.Debug("report fanout done",
		slog.String("report_id", report.ID.String()),
		slog.Int("subscriptions", len(subs)),
		slog.Int("in_range", delivered),
	)
}

func (n *Notifier) ReportsExpired(ctx context.Context, ids []uuid.UUID) {
	if len(ids) == 0 {
		return
	}
	n.emitter.Broadcast("reports-expired", reportsExpiredPayload{IDs: ids})
	n.logger.Debug("expiration broadcast done", slog.Int("ids", len(ids)))
}
