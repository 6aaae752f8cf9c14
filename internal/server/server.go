// Package server exposes the dashboard over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/nifty-predictor/internal/service"
)

// Options tunes the server
type Options struct {
	MetricsEnabled bool
	LevelLookback  int
	NearThreshold  float64
	MaxBodyBytes   int64
}

// Server routes dashboard requests
type Server struct {
	dashboard *service.Dashboard
	opts      Options
	router    *mux.Router
	logger    zerolog.Logger
}

// New builds the router and registers every route
func New(dashboard *service.Dashboard, opts Options) *Server {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 4 << 20
	}

	s := &Server{
		dashboard: dashboard,
		opts:      opts,
		router:    mux.NewRouter(),
		logger:    log.With().Str("component", "http_server").Logger(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(metricsMiddleware)

	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	if s.opts.MetricsEnabled {
		r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	}

	// routes stay on the root router so method mismatches reach MethodNotAllowedHandler
	r.HandleFunc("/api/nifty50", s.handleNifty50).Methods(http.MethodGet)
	r.HandleFunc("/api/giftnifty", s.handleGiftNifty).Methods(http.MethodGet)
	r.HandleFunc("/api/optionchain", s.handleOptionChain).Methods(http.MethodGet)
	r.HandleFunc("/api/commodities", s.handleCommodities).Methods(http.MethodGet)
	r.HandleFunc("/api/fiidii", s.handleFIIDII).Methods(http.MethodGet)

	r.HandleFunc("/api/levels", s.handleLevels).Methods(http.MethodGet)
	r.HandleFunc("/api/setup", s.handleSetup).Methods(http.MethodGet)
	r.HandleFunc("/api/prediction", s.handlePrediction).Methods(http.MethodGet)

	r.HandleFunc("/api/analyze/levels", s.handleAnalyzeLevels).Methods(http.MethodPost)
	r.HandleFunc("/api/analyze/setup", s.handleAnalyzeSetup).Methods(http.MethodPost)
	r.HandleFunc("/api/analyze/prediction", s.handleAnalyzePrediction).Methods(http.MethodPost)
	r.HandleFunc("/api/analyze/optionchain", s.handleAnalyzeOptionChain).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, r, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
	})
}

// Handler returns the router wrapped in the middleware chain
func (s *Server) Handler() http.Handler {
	return ChainMiddleware(
		RequestIDMiddleware(s.logger),
		RecoveryMiddleware(),
		LoggingMiddleware(),
		CORSMiddleware(),
	)(s.router)
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight requests
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}
