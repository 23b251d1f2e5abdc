package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/notesentry/notesentry/internal/audit"
	"github.com/notesentry/notesentry/internal/cache"
	"github.com/notesentry/notesentry/internal/config"
	"github.com/notesentry/notesentry/internal/logger"
	"github.com/notesentry/notesentry/internal/scrub"
	"github.com/notesentry/notesentry/internal/websocket"
)

// Server exposes the redaction engine over HTTP.
type Server struct {
	config  *config.Config
	logger  *logger.Logger
	engine  *scrub.Engine
	router  *mux.Router
	server  *http.Server
	wsHub   *websocket.Hub
	cache   *cache.Cache
	audit   *audit.Store
	limiter *rateLimiter
}

// New creates a new server instance. The cache and audit store are optional
// collaborators; when disabled in config they stay nil and the handler path
// simply skips them.
func New(cfg *config.Config, log *logger.Logger) (*Server, error) {
	engine, err := scrub.New(scrub.Config{
		Names:        cfg.Scrubber.Names,
		Keywords:     cfg.Scrubber.Keywords,
		MRNMinLength: cfg.Scrubber.MRNMinLength,
		MRNMaxLength: cfg.Scrubber.MRNMaxLength,
	}, log.WithComponent("scrub").Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create scrub engine: %w", err)
	}

	wsHub := websocket.NewHub(&websocket.HubConfig{
		BroadcastRedactions:  cfg.WebSocket.Events.BroadcastRedactions,
		BroadcastRequests:    cfg.WebSocket.Events.BroadcastRequests,
		BroadcastConnections: cfg.WebSocket.Events.BroadcastConnections,
		ReadBufferSize:       cfg.WebSocket.ReadBufferSize,
		WriteBufferSize:      cfg.WebSocket.WriteBufferSize,
		AllowedOrigins:       cfg.WebSocket.AllowedOrigins,
	}, log.WithComponent("websocket").Logger)

	s := &Server{
		config: cfg,
		logger: log.WithComponent("server"),
		engine: engine,
		router: mux.NewRouter(),
		wsHub:  wsHub,
	}

	if cfg.Cache.Enabled {
		resultCache, err := cache.New(&cfg.Cache, log.WithComponent("cache").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create result cache: %w", err)
		}
		s.cache = resultCache
	}

	if cfg.Audit.Enabled {
		store, err := audit.NewStore(&cfg.Audit, log.WithComponent("audit").Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create audit store: %w", err)
		}
		s.audit = store
	}

	if cfg.Server.RateLimit.Enabled {
		s.limiter = newRateLimiter(cfg.Server.RateLimit)
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth).Methods("GET")
	s.router.HandleFunc("/info", s.handleInfo).Methods("GET")

	if s.config.WebSocket.Enabled {
		s.router.HandleFunc(s.config.WebSocket.Path, s.handleWebSocket).Methods("GET")
	}

	api := s.router.PathPrefix("/v1").Subrouter()
	api.Use(s.loggingMiddleware)
	api.Use(s.rateLimitMiddleware)
	api.HandleFunc("/redact", s.handleRedact).Methods("POST")
	api.HandleFunc("/audit/recent", s.handleAuditRecent).Methods("GET")
	api.HandleFunc("/audit/totals", s.handleAuditTotals).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting NoteSentry server",
		zap.Int("port", s.config.Server.Port),
		zap.Bool("cache_enabled", s.cache != nil),
		zap.Bool("audit_enabled", s.audit != nil),
	)

	if s.config.WebSocket.Enabled {
		go s.wsHub.Run()
	}
	if s.limiter != nil {
		s.limiter.startCleanup()
	}

	return s.server.ListenAndServe()
}

// Stop gracefully stops the HTTP server and its collaborators
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping NoteSentry server")

	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			s.logger.Error("Failed to close result cache", zap.Error(err))
		}
	}
	if s.audit != nil {
		if err := s.audit.Close(); err != nil {
			s.logger.Error("Failed to close audit store", zap.Error(err))
		}
	}
	if s.limiter != nil {
		s.limiter.stop()
	}

	return s.server.Shutdown(ctx)
}

// handleWebSocket hands the connection to the hub
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	s.wsHub.HandleWebSocket(w, r)
}
