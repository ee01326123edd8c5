// Package server serves both charts over HTTP: a host page, the chart images with
// per-request toggles, the dataset as JSON, Prometheus metrics and a health probe.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/lutogin/listingcharts/src/config"
	"github.com/lutogin/listingcharts/src/logging"
)

const shutdownGrace = 5 * time.Second

type ctxKey int

const (
	requestIDKey ctxKey = iota
	routeKey
)

// Server is the chart HTTP server. Handlers keep no per-user state; every request builds
// its own view.
type Server struct {
	cfg     config.Config
	router  *mux.Router
	handler http.Handler
	metrics *Metrics
	server  *http.Server
}

// New wires routes and middleware for cfg.
func New(cfg config.Config) *Server {
	s := &Server{
		cfg:     cfg,
		router:  mux.NewRouter(),
		metrics: NewMetrics(),
	}
	s.setupRoutes()
	// wrapped outside the router so unmatched and 405 requests are covered too
	s.handler = s.requestIDMiddleware(s.requestLoggingMiddleware(s.router))
	s.server = &http.Server{
		Addr:         cfg.Listen,
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(routeMiddleware)

	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/charts/{chart:price-change|land-price}.{format:svg|png}", s.handleChart).Methods(http.MethodGet)
	s.router.HandleFunc("/api/listings", s.handleListings).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
	s.router.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)
}

// Handler returns the router with request ID and access logging applied, as served.
func (s *Server) Handler() http.Handler { return s.handler }

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Run serves on the configured address until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		logging.Infof("[server] listening on http://%s", ln.Addr())
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Infof("[server] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.New().String()[:8]
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) requestLoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWrapper{ResponseWriter: w, statusCode: http.StatusOK}
		ri := &routeInfo{template: "unmatched"}
		next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), routeKey, ri)))

		dur := time.Since(start)
		s.metrics.Requests.WithLabelValues(ri.template, strconv.Itoa(rw.statusCode)).Inc()
		logging.Logger().Info().
			Str("request_id", requestID(r)).
			Str("method", r.Method).
			Str("path", r.URL.RequestURI()).
			Str("route", ri.template).
			Int("status", rw.statusCode).
			Dur("duration", dur).
			Msg("http request")
	})
}

// routeInfo carries the matched route template back out of the router.
type routeInfo struct {
	template string
}

// routeMiddleware runs inside the router, where the matched route is known.
func routeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ri, ok := r.Context().Value(routeKey).(*routeInfo); ok {
			if cur := mux.CurrentRoute(r); cur != nil {
				if tpl, err := cur.GetPathTemplate(); err == nil {
					ri.template = tpl
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

func requestID(r *http.Request) string {
	if id, ok := r.Context().Value(requestIDKey).(string); ok {
		return id
	}
	return "unknown"
}

// responseWrapper captures the status code for logging and metrics.
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
