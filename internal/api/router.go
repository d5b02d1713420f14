package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/YhonJ8a/TrafficBGA/internal/api/handlers/http/criticalpoints"
	"github.com/YhonJ8a/TrafficBGA/internal/api/handlers/http/reports"
	"github.com/YhonJ8a/TrafficBGA/internal/api/handlers/http/system"
	"github.com/YhonJ8a/TrafficBGA/internal/config"
	"github.com/YhonJ8a/TrafficBGA/internal/middleware"
	"github.com/YhonJ8a/TrafficBGA/internal/service"
	"github.com/YhonJ8a/TrafficBGA/internal/ws"
)

type Server struct {
	logger *slog.Logger
	router *chi.Mux
	cfg    config.Config
}

func NewServer(cfg *config.Config, logger *slog.Logger, svc *service.Service, hub *ws.Hub) *Server {
	reportsHandler := reports.NewHandler(logger, svc.ReportService, svc.QueryService)
	criticalHandler := criticalpoints.NewHandler(logger, svc.CriticalPoints)
	systemHandler := system.NewHandler(logger)

	r := InitRouter(reportsHandler, criticalHandler, systemHandler, hub, logger)

	return &Server{
		logger: logger,
		router: r,
		cfg:    *cfg,
	}
}

func InitRouter(reportsHandler *reports.Handler, criticalHandler *criticalpoints.Handler, systemHandler *system.Handler, hub *ws.Hub, logger *slog.Logger) *chi.Mux {
	r := chi.NewMux()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Logger)

	r.Route("/api/v1", func(api chi.Router) {
		api.Route("/reports", func(rr chi.Router) {
			rr.With(middleware.Limit(10, 20, 5*time.Minute, logger)).
				Post("/", reportsHandler.SubmitReport)

			rr.Get("/", reportsHandler.ListReports)
			rr.Get("/active", reportsHandler.ListActiveReports)
			rr.Get("/area", reportsHandler.ReportsByArea)
			rr.Get("/radius", reportsHandler.ReportsByRadius)
			rr.Post("/route", reportsHandler.ReportsNearRoute)
			rr.Post("/search", reportsHandler.SearchReports)
			rr.Get("/statistics", reportsHandler.Statistics)
			rr.Get("/{id}", reportsHandler.GetReport)
		})

		api.Route("/critical-points", func(cp chi.Router) {
			cp.Get("/", criticalHandler.ListCriticalPoints)
			cp.Get("/area", criticalHandler.CriticalPointsByArea)
			cp.Get("/radius", criticalHandler.CriticalPointsByRadius)
			cp.Get("/statistics", criticalHandler.Statistics)
		})

		api.Get("/types", reportsHandler.ListTypes)
		api.Get("/health", systemHandler.SystemHealth)
	})

	r.Get("/ws", hub.HandleConnection)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	port := s.cfg.Http.Port
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Http.ReadTimeout,
		WriteTimeout: s.cfg.Http.WriteTimeout,
		IdleTimeout:  30 * time.Second,
	}

	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("Starting HTTP server",
			slog.String("addr", srv.Addr),
			slog.Duration("read_timeout", s.cfg.Http.ReadTimeout),
			slog.Duration("write_timeout", s.cfg.Http.WriteTimeout),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("ListenAndServe error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("Shutting down HTTP server", slog.String("reason", ctx.Err().Error()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Http.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server shutdown failed", slog.Any("error", err))
			return err
		}
		return nil

	case err := <-errChan:
		return err
	}
}
