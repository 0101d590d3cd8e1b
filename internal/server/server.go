package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Roma7-7-7/fuel-stations/internal/schedule"
	"github.com/Roma7-7-7/fuel-stations/internal/service"
)

//go:generate mockgen -package mocks -destination mocks/stations.go . StationsService

const shutdownTimeout = 10 * time.Second

type (
	StationsService interface {
		List(ctx context.Context, f service.Filter) (service.Listing, error)
		Get(ctx context.Context, id string) (service.StationView, bool, error)
	}

	Server struct {
		addr      string
		stations  StationsService
		evaluator *schedule.Evaluator
		log       *slog.Logger
	}
)

func New(addr string, stations StationsService, clock schedule.Clock, log *slog.Logger) *Server {
	return &Server{
		addr:      addr,
		stations:  stations,
		evaluator: schedule.NewEvaluator(clock),
		log:       log.With("component", "server"),
	}
}

// Handler builds the router. Exposed separately from Start for tests.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.logRequests, observeRequests)
	// mux skips Use middleware when no route matches.
	r.NotFoundHandler = observeRequests(s.logRequests(http.NotFoundHandler()))
	r.MethodNotAllowedHandler = observeRequests(s.logRequests(http.HandlerFunc(methodNotAllowed)))

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/stations", s.listStations).Methods(http.MethodGet)
	api.HandleFunc("/stations/{id}", s.getStation).Methods(http.MethodGet)
	api.HandleFunc("/schedule", s.evaluateSchedule).Methods(http.MethodGet)

	return r
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd // header read timeout
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.InfoContext(ctx, "Starting HTTP server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen and serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	s.log.InfoContext(ctx, "Stopping HTTP server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte("ok"))
}
