package ws

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
)

type capturedEmit struct {
	connID uuid.UUID
	event  string
	data   any
}

// captureEmitter records deliveries instead of writing to sockets.
type captureEmitter struct {
	emits      []capturedEmit
	broadcasts []capturedEmit
}

func (c *captureEmitter) EmitTo(connID uuid.UUID, event string, data any) {
	c.emits = append(c.emits, capturedEmit{connID: connID, event: event, data: data})
}

func (c *captureEmitter) Broadcast(event string, data any) {
	c.broadcasts = append(c.broadcasts, capturedEmit{event: event, data: data})
}

func testReport(lat, lng float64) *domain.Report {
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	return &domain.Report{
		ID:         uuid.New(),
		Title:      "Trancón en la 80",
		Latitude:   lat,
		Longitude:  lng,
		ReportedAt: now,
		ExpiresAt:  now.Add(30 * time.Minute),
		Visible:    true,
		State:      domain.ReportActive,
	}
}

func TestNotifier_ReportCreated_OnlySubscribersInRange(t *testing.T) {
	registry := NewRegistry()
	emitter := &captureEmitter{}
	notifier := NewNotifier(emitter, registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	nearID := uuid.New()
	farID := uuid.New()
	registry.Upsert(nearID, 4.711, -74.073, 2.0) // ~0.15km from the report
	registry.Upsert(farID, 4.9, -74.9, 2.0)      // ~95km away

	notifier.ReportCreated(context.Background(), testReport(4.710, -74.072))

	require.Len(t, emitter.emits, 1)
	assert.Empty(t, emitter.broadcasts)

	got := emitter.emits[0]
	assert.Equal(t, nearID, got.connID)
	assert.Equal(t, "new-report", got.event)

	payload, ok := got.data.(newReportPayload)
	require.True(t, ok, "payload type %T", got.data)
	assert.InDelta(t, 0.15, payload.DistanceKm, 0.05)
	assert.Equal(t, fmt.Sprintf("New report %.2fkm from your location", payload.DistanceKm), payload.Message)
	require.NotNil(t, payload.Report.DistanceKm)
	assert.Equal(t, payload.DistanceKm, *payload.Report.DistanceKm)
	assert.True(t, payload.Report.IsActive)
	assert.Equal(t, 30, payload.Report.MinutesRemaining)
}

func TestNotifier_ReportCreated_RespectsPerClientRadius(t *testing.T) {
	registry := NewRegistry()
	emitter := &captureEmitter{}
	notifier := NewNotifier(emitter, registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	tightID := uuid.New()
	wideID := uuid.New()
	// the report sits ~1.1km north of both clients
	registry.Upsert(tightID, 4.700, -74.072, 0.5)
	registry.Upsert(wideID, 4.700, -74.072, 5.0)

	notifier.ReportCreated(context.Background(), testReport(4.710, -74.072))

	require.Len(t, emitter.emits, 1)
	assert.Equal(t, wideID, emitter.emits[0].connID)
}

func TestNotifier_ReportCreated_NoSubscribers(t *testing.T) {
	registry := NewRegistry()
	emitter := &captureEmitter{}
	notifier := NewNotifier(emitter, registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	notifier.ReportCreated(context.Background(), testReport(4.710, -74.072))

	assert.Empty(t, emitter.emits)
	assert.Empty(t, emitter.broadcasts)
}

func TestNotifier_ReportsExpired_BroadcastsToAll(t *testing.T) {
	registry := NewRegistry()
	emitter := &captureEmitter{}
	notifier := NewNotifier(emitter, registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	notifier.ReportsExpired(context.Background(), ids)

	require.Len(t, emitter.broadcasts, 1)
	assert.Equal(t, "reports-expired", emitter.broadcasts[0].event)

	payload, ok := emitter.broadcasts[0].data.(reportsExpiredPayload)
	require.True(t, ok, "payload type %T", emitter.broadcasts[0].data)
	assert.Equal(t, ids, payload.IDs)
}

func TestNotifier_ReportsExpired_EmptyBatchIsSilent(t *testing.T) {
	registry := NewRegistry()
	emitter := &captureEmitter{}
	notifier := NewNotifier(emitter, registry, slog.New(slog.NewTextHandler(io.Discard, nil)))

	notifier.ReportsExpired(context.Background(), nil)

	assert.Empty(t, emitter.broadcasts)
}
