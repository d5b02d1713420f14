package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/YhonJ8a/TrafficBGA/internal/domain"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin filtering is the reverse proxy's job here
	},
}

// Envelope is the wire format in both directions: {"event": ..., "data": ...}.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type locationUpdate struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	RadiusKm  *float64 `json:"radius_km,omitempty"`
}

type nearbyReportsPayload struct {
	Reports  []domain.ReportView `json:"reports"`
	Total    int                 `json:"total"`
	Center   domain.RoutePoint   `json:"center"`
	RadiusKm float64             `json:"radius_km"`
}

// NearbyProvider is the slice of the query service the hub needs for
// initial snapshots.
type NearbyProvider interface {
	NearbyActive(ctx context.Context, lat, lng, radiusKm float64) ([]domain.ReportView, error)
}

type client struct {
	id   uuid.UUID
	conn *websocket.Conn
	mu   sync.Mutex // serializes writes; gorilla allows one concurrent writer
}

func (c *client) write(event string, data any, timeout time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	msg, err := json.Marshal(Envelope{Event: event, Data: payload})
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(timeout))
	return c.conn.WriteMessage(websocket.TextMessage, msg)
}

// Hub owns the websocket connections and the subscription registry. The
// read loop handles inbound location-update and disconnect; outbound
// delivery goes through EmitTo/Broadcast with a short write deadline so a
// stalled client cannot block an event.
type Hub struct {
	logger          *slog.Logger
	registry        *Registry
	nearby          NearbyProvider
	defaultRadiusKm float64
	writeTimeout    time.Duration
	queryTimeout    time.Duration

	mu      sync.RWMutex
	clients map[uuid.UUID]*client
}

func NewHub(logger *slog.Logger, registry *Registry, nearby NearbyProvider, defaultRadiusKm float64, writeTimeout, queryTimeout time.Duration) *Hub {
	if defaultRadiusKm <= 0 {
		defaultRadiusKm = 2.0
	}
	if writeTimeout <= 0 {
		writeTimeout = 5 * time.Second
	}
	if queryTimeout <= 0 {
		queryTimeout = 5 * time.Second
	}
	return &Hub{
		logger:          logger,
		registry:        registry,
		nearby:          nearby,
		defaultRadiusKm: defaultRadiusKm,
		writeTimeout:    writeTimeout,
		queryTimeout:    queryTimeout,
		clients:         make(map[uuid.UUID]*client),
	}
}

func (h *Hub) Registry() *Registry { return h.registry }

// HandleConnection upgrades the request and runs the read loop until the
// client goes away.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", slog.Any("error", err))
		return
	}

	c := &client{id: uuid.New(), conn: conn}

	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()

	h.logger.Info("client connected", slog.String("conn_id", c.id.String()))

	// the connection is hijacked; the request context dies with ServeHTTP,
	// so the read loop runs on its own context
	h.readLoop(context.Background(), c)
}

func (h *Hub) readLoop(ctx context.Context, c *client) {
	defer h.drop(c)

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("websocket read failed",
					slog.String("conn_id", c.id.String()),
					slog.Any("error", err),
				)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			h.logger.Warn("malformed socket message", slog.String("conn_id", c.id.String()))
			continue
		}

		switch env.Event {
		case "location-update":
			h.handleLocationUpdate(ctx, c, env.Data)
		default:
			h.logger.Debug("unknown socket event",
				slog.String("conn_id", c.id.String()),
				slog.String("event", env.Event),
			)
		}
	}
}

// handleLocationUpdate records the client's position and answers with the
// active reports inside its radius.
func (h *Hub) handleLocationUpdate(ctx context.Context, c *client, data json.RawMessage) {
	var upd locationUpdate
	if err := json.Unmarshal(data, &upd); err != nil {
		h.logger.Warn("malformed location update", slog.String("conn_id", c.id.String()))
		return
	}

	radius := h.defaultRadiusKm
	if upd.RadiusKm != nil && *upd.RadiusKm > 0 {
		radius = *upd.RadiusKm
	}

	h.registry.Upsert(c.id, upd.Latitude, upd.Longitude, radius)

	// the read loop context never expires, so each snapshot query gets its
	// own deadline: a slow store must not wedge the connection
	queryCtx, cancel := context.WithTimeout(ctx, h.queryTimeout)
	defer cancel()

	reports, err := h.nearby.NearbyActive(queryCtx, upd.Latitude, upd.Longitude, radius)
	if err != nil {
		h.logger.Error("nearby snapshot failed",
			slog.String("conn_id", c.id.String()),
			slog.Any("error", err),
		)
		return
	}

	payload := nearbyReportsPayload{
		Reports:  reports,
		Total:    len(reports),
		Center:   domain.RoutePoint{Latitude: upd.Latitude, Longitude: upd.Longitude},
		RadiusKm: radius,
	}
	if err := c.write("nearby-reports", payload, h.writeTimeout); err != nil {
		h.logger.Warn("nearby snapshot delivery failed",
			slog.String("conn_id", c.id.String()),
			slog.Any("error", err),
		)
	}
}

func (h *Hub) drop(c *client) {
	c.conn.Close()

	h.mu.Lock()
	delete(h.clients, c.id)
	h.mu.Unlock()

	h.registry.Remove(c.id)
	h.logger.Info("client disconnected", slog.String("conn_id", c.id.String()))
}

// EmitTo delivers one event to one connection. Failures are logged and
// swallowed; a dead connection is cleaned up by its own read loop.
func (h *Hub) EmitTo(connID uuid.UUID, event string, data any) {
	h.mu.RLock()
	c, ok := h.clients[connID]
	h.mu.RUnlock()
	if !ok {
		return
	}

	if err := c.write(event, data, h.writeTimeout); err != nil {
		h.logger.Warn("event delivery failed",
			slog.String("conn_id", connID.String()),
			slog.String("event", event),
			slog.Any("error", err),
		)
	}
}

// Broadcast sends the event to every connection; one failing write never
// affects the rest.
func (h *Hub) Broadcast(event string, data any) {
	h.mu.RLock()
	clients := make([]*client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(event, data, h.writeTimeout); err != nil {
			h.logger.Warn("broadcast delivery failed",
				slog.String("conn_id", c.id.String()),
				slog.String("event", event),
				slog.Any("error", err),
			)
		}
	}
}
