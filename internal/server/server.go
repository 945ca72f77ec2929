package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartchef/backend/config"
	"github.com/pageza/smartchef/backend/internal/api"
	"github.com/pageza/smartchef/backend/internal/logging"
	"github.com/pageza/smartchef/backend/internal/middleware"
)

const (
	readHeaderTimeout = 10 * time.Second
	maxUploadMemory   = 8 << 20
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
}

// New builds the router with every route and middleware.
func New(cfg *config.Config, services api.Services) *Server {
	gin.SetMode(cfg.Env.GinMode())

	router := gin.New()
	router.MaxMultipartMemory = maxUploadMemory
	router.Use(middleware.RequestLogger(), middleware.ErrorHandler(), middleware.CORS(cfg.CORSOrigins))
	if cfg.MediaRoot != "" && cfg.S3Bucket == "" {
		router.Static("/media", cfg.MediaRoot)
	}

	api.RegisterRoutes(router, services)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

// Handler returns the router, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a graceful
// shutdown.
func (s *Server) Start() error {
	logging.For("server").WithField("addr", s.http.Addr).Info("Starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
