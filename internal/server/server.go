// Package server exposes the analysis pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/alexanderramin/archsage/internal/config"
	"github.com/alexanderramin/archsage/internal/intelligence"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/alexanderramin/archsage/internal/metrics"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/retrieval"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the services the HTTP layer delegates to. Metrics may be nil.
// A nil Retrieval is built over Store.
type Deps struct {
	Analysis  intelligence.AnalysisService
	Personas  *persona.Registry
	Store     *knowledge.Store
	Retrieval *retrieval.Engine
	Gateway   llm.Gateway
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	Version   string
}

// Server wraps a gin router and its http.Server.
type Server struct {
	cfg    config.ServerConfig
	router *gin.Engine
	logger *zap.Logger
}

// New builds the router with every route and middleware registered.
func New(cfg config.ServerConfig, deps Deps) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	router := gin.New()
	router.Use(requestID(), accessLog(deps.Logger), gin.Recovery())
	if deps.Metrics != nil {
		router.Use(instrument(deps.Metrics))
	}
	if cfg.MaxBodyBytes > 0 {
		router.Use(limitBody(cfg.MaxBodyBytes))
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", requestIDHeader}
	corsConfig.ExposeHeaders = []string{requestIDHeader}
	router.Use(cors.New(corsConfig))

	if deps.Retrieval == nil {
		deps.Retrieval = retrieval.NewEngine(deps.Store)
	}

	h := &handlers{
		analysis:  deps.Analysis,
		personas:  deps.Personas,
		store:     deps.Store,
		retrieval: deps.Retrieval,
		gateway:   deps.Gateway,
		version:   deps.Version,
		logger:    deps.Logger,
	}

	router.GET("/health", h.health)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/analyze", h.analyze)
		apiV1.POST("/analyze/batch", h.analyzeBatch)
		apiV1.POST("/prompt/preview", h.previewPrompt)
		apiV1.GET("/personas", h.listPersonas)
		apiV1.GET("/knowledge", h.listKnowledge)
		apiV1.GET("/knowledge/:domain", h.domainKnowledge)
		apiV1.GET("/knowledge/:domain/:id", h.knowledgeEntry)
	}

	return &Server{cfg: cfg, router: router, logger: deps.Logger}
}

// Handler returns the router for use with httptest or a custom server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
