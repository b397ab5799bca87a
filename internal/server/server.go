// Package server exposes analysis sessions over HTTP for the interactive
// viewer.
//
// Routes (all JSON):
//
//	POST   /api/sessions                                   create from tables
//	DELETE /api/sessions/{id}
//	GET    /api/sessions/{id}/subnetworks                  ranking
//	GET    /api/sessions/{id}/subnetworks/{name}           viewer payload
//	GET    /api/sessions/{id}/subnetworks/{name}/layout
//	GET    /api/sessions/{id}/subnetworks/{name}/paths
//	GET    /api/sessions/{id}/subnetworks/{name}/communities
//	POST   /api/sessions/{id}/subnetworks/{name}/modules
//	POST   /api/sessions/{id}/subnetworks/{name}/exclude
//	GET    /api/sessions/{id}/communities                  assignment artifact
//	POST   /api/sessions/{id}/filters/correlation
//	POST   /api/sessions/{id}/filters/topology
//	POST   /api/sessions/{id}/mcs
//
// Errors are returned as {"code": ..., "message": ...}.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MASHUOA/MetaboAnalystR/pkg/pipeline"
	"github.com/MASHUOA/MetaboAnalystR/pkg/session"
)

// Defaults for [Config].
const (
	DefaultAddr            = ":8080"
	DefaultMaxBodyBytes    = 64 << 20
	DefaultCleanupInterval = 5 * time.Minute
	DefaultRequestTimeout  = 2 * time.Minute
)

// Config configures a [Server].
type Config struct {
	Addr            string        `toml:"addr"`
	SessionTTL      time.Duration `toml:"session_ttl"`
	MaxBodyBytes    int64         `toml:"max_body_bytes"`
	CleanupInterval time.Duration `toml:"cleanup_interval"`
	RequestTimeout  time.Duration `toml:"request_timeout"`
}

// SetDefaults fills zero fields.
func (c *Config) SetDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = session.DefaultTTL
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = DefaultRequestTimeout
	}
}

// Server serves sessions held in a [session.Store].
type Server struct {
	cfg      Config
	store    session.Store
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
	router   chi.Router
}

// New creates a server. defaults seed the options of every request; request
// bodies and query parameters override them.
func New(cfg Config, store session.Store, runner *pipeline.Runner, defaults pipeline.Options, logger *log.Logger) *Server {
	cfg.SetDefaults()
	if logger == nil {
		logger = log.Default()
	}
	if runner == nil {
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	s := &Server{
		cfg:      cfg,
		store:    store,
		runner:   runner,
		defaults: defaults,
		logger:   logger,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)
		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteSession)
			r.Get("/subnetworks", s.handleSubnetworks)
			r.Get("/communities", s.handleAssignments)
			r.Post("/filters/correlation", s.handleFilterCorrelation)
			r.Post("/filters/topology", s.handleFilterTopology)
			r.Post("/mcs", s.handleMinimalConnected)
			r.Route("/subnetworks/{name}", func(r chi.Router) {
				r.Use(s.validName)
				r.Get("/", s.handlePayload)
				r.Get("/layout", s.handleLayout)
				r.Get("/paths", s.handlePaths)
				r.Get("/communities", s.handleCommunities)
				r.Post("/modules", s.handleModule)
				r.Post("/exclude", s.handleExclude)
			})
		})
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. Expired
// sessions are swept every CleanupInterval.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweep(ctx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) sweep(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.store.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
